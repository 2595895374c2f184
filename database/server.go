package database

import (
	"fmt"
	"os"
	"slidis/aof"
	"slidis/config"
	"slidis/interface/database"
	"slidis/interface/redis"
	"slidis/pubsub"
	"slidis/redis/protocol"
	"slidis/utils"
	"slidis/utils/logs"
	"strings"
	"sync/atomic"
	"time"
)

// Server is the full multi-keyspace engine behind one listener.
type Server struct {
	dbSet     []*atomic.Value // *DB
	hub       *pubsub.Hub
	perSister *aof.PerSister
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

func NewStandaloneServer() *Server {
	server := &Server{}
	if config.Properties.Databases == 0 {
		config.Properties.Databases = 16
	}
	err := os.MkdirAll(config.GetTmpDir(), os.ModePerm)
	if err != nil {
		panic(fmt.Sprintf("create tmp dir failed: %v", err))
	}
	server.dbSet = make([]*atomic.Value, config.Properties.Databases)
	for i := range server.dbSet {
		db := makeDB()
		db.index = i
		holder := &atomic.Value{}
		holder.Store(db)
		server.dbSet[i] = holder
	}
	server.hub = pubsub.MakeHub()
	server.bindNotify()
	if config.Properties.AppendOnly {
		load := fileExists(config.Properties.AppendFilename)
		aofHandler, err := NewPerSister(server,
			config.Properties.AppendFilename, load, config.Properties.AppendFsync)
		if err != nil {
			panic(err)
		}
		server.bindPerSister(aofHandler)
	}
	return server
}

// bindNotify points every keyspace at the shared pubsub hub for
// keyspace event notifications.
func (server *Server) bindNotify() {
	for _, holder := range server.dbSet {
		db := holder.Load().(*DB)
		index := db.index
		db.notify = func(event string, key string) {
			pubsub.NotifyKeyspaceEvent(server.hub, index, event, key)
		}
	}
}

func (server *Server) Exec(c redis.Connection, cmdLine [][]byte) (result redis.Reply) {
	defer func() {
		if err := recover(); err != nil {
			logs.LOG.Error.Println(err)
			result = protocol.MakeErrReply("ERR server internal error")
		}
	}()
	cmdName := strings.ToLower(string(cmdLine[0]))
	logs.LOG.Debug.Println(utils.Yellow(fmt.Sprintf("client: %s command: %s", c.Name(), cmdName)))
	if !isAuthenticated(c, cmdName) {
		return protocol.MakeErrReply("NOAUTH Authentication required")
	}
	if sysCmd, ok := systemTable[cmdName]; ok {
		exec := sysCmd.executor
		return exec(c, cmdLine[1:])
	}
	if p, ok := pubSubTable[cmdName]; ok {
		exec := p.executor
		return exec(server.hub, c, cmdLine[1:])
	}
	index := c.GetDBIndex()
	db, errReply := server.selectDB(index)
	if errReply != nil {
		return errReply
	}
	return db.Exec(c, cmdLine)
}

func (server *Server) selectDB(dbIndex int) (*DB, *protocol.StandardErrReply) {
	if dbIndex >= len(server.dbSet) || dbIndex < 0 {
		return nil, protocol.MakeErrReply("ERR DB index is out of range")
	}
	return server.dbSet[dbIndex].Load().(*DB), nil
}

func isAuthenticated(c redis.Connection, cmdName string) bool {
	if config.Properties.Password == "" || cmdName == "auth" {
		return true
	}
	return c.GetPassword() == config.Properties.Password
}

func (server *Server) AfterClientClose(c redis.Connection) {
	pubsub.UnsubscribeAll(server.hub, c)
}

func (server *Server) Close() {
	if server.perSister != nil {
		server.perSister.Close()
	}
}

func (server *Server) mustSelectDB(dbIndex int) *DB {
	selectedDB, err := server.selectDB(dbIndex)
	if err != nil {
		panic(err)
	}
	return selectedDB
}

func (server *Server) GetDBSize(dbIndex int) (int, int) {
	db := server.mustSelectDB(dbIndex)
	return db.data.Len(), db.ttlMap.Len()
}

func (server *Server) ForEach(dbIndex int, cb func(key string, data *database.DataEntity, expiration *time.Time) bool) {
	server.mustSelectDB(dbIndex).ForEach(cb)
}
