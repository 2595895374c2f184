package database

import (
	"fmt"
	"slidis/aof"
	"slidis/config"
	"slidis/interface/database"
	"slidis/utils/logs"
	"sync/atomic"
)

func NewPerSister(db database.DBEngine, filename string, load bool, fsync string) (*aof.PerSister, error) {
	return aof.NewPerSister(db, filename, load, fsync, func() database.DBEngine {
		return MakeAuxiliaryServer()
	})
}

// MakeAuxiliaryServer builds the scratch engine the AOF rewrite replays
// into, plain maps, no hub, no persistence.
func MakeAuxiliaryServer() *Server {
	mdb := &Server{}
	mdb.dbSet = make([]*atomic.Value, config.Properties.Databases)
	for i := range mdb.dbSet {
		db := makeBasicDB()
		db.index = i
		holder := &atomic.Value{}
		holder.Store(db)
		mdb.dbSet[i] = holder
	}
	mdb.hub = nil
	return mdb
}

func (server *Server) bindPerSister(aofHandler *aof.PerSister) {
	server.perSister = aofHandler
	for _, holder := range server.dbSet {
		singleDB := holder.Load().(*DB)
		logs.LOG.Info.Println(fmt.Sprintf("database %d listening for aof", singleDB.index))
		singleDB.addAof = func(line CmdLine) {
			if config.Properties.AppendOnly {
				server.perSister.SaveCmdLine(singleDB.index, line)
			}
		}
	}
}
