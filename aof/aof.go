package aof

import (
	"context"
	"io"
	"os"
	"slidis/config"
	SortedList "slidis/datastruct/sortedlist"
	"slidis/interface/database"
	"slidis/redis/connection"
	"slidis/redis/parser"
	"slidis/redis/protocol"
	"slidis/utils"
	"slidis/utils/logs"
	"strconv"
	"sync"
	"time"
)

const (
	aofQueueSize = 1 << 16

	FsyncAlways   = "always"
	FsyncEverySec = "everysec"
	FsyncNo       = "no"
)

type CmdLine = [][]byte

type payload struct {
	cmdLine CmdLine
	dbIndex int
}

// PerSister appends every write command to the AOF file and replays the
// file on boot.
type PerSister struct {
	ctx         context.Context
	cancel      context.CancelFunc
	db          database.DBEngine
	tmpDBMaker  func() database.DBEngine
	aofChan     chan *payload
	aofFile     *os.File
	aofFilename string
	aofFsync    string
	aofFinished chan struct{}
	pausingAof  sync.Mutex
	currentDB   int
}

func NewPerSister(db database.DBEngine, filename string, load bool, fsync string, tmpDBMaker func() database.DBEngine) (*PerSister, error) {
	p := &PerSister{
		db:          db,
		tmpDBMaker:  tmpDBMaker,
		aofFilename: filename,
		aofFsync:    fsync,
		// force a SELECT in front of the first command
		currentDB: -1,
	}
	if load {
		p.LoadAof(0)
	}
	aofFile, err := os.OpenFile(p.aofFilename, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}
	p.aofFile = aofFile
	p.aofChan = make(chan *payload, aofQueueSize)
	p.aofFinished = make(chan struct{})
	p.ctx, p.cancel = context.WithCancel(context.Background())
	go p.listenCmd()
	if p.aofFsync == FsyncEverySec {
		go p.fsyncEverySecond()
	}
	return p, nil
}

// SaveCmdLine enqueues one executed command for the writer goroutine.
// With fsync always the write happens inline so the command is durable
// before the reply goes out.
func (p *PerSister) SaveCmdLine(dbIndex int, cmdLine CmdLine) {
	if p.aofChan == nil {
		return
	}
	if p.aofFsync == FsyncAlways {
		p.writeAof(&payload{cmdLine: cmdLine, dbIndex: dbIndex})
		return
	}
	p.aofChan <- &payload{cmdLine: cmdLine, dbIndex: dbIndex}
}

func (p *PerSister) listenCmd() {
	for pl := range p.aofChan {
		p.writeAof(pl)
	}
	p.aofFinished <- struct{}{}
}

func (p *PerSister) writeAof(pl *payload) {
	if len(pl.cmdLine) == 0 {
		return
	}
	p.pausingAof.Lock()
	defer p.pausingAof.Unlock()
	if pl.dbIndex != p.currentDB {
		selectCmd := utils.ToCmdLine("select", strconv.Itoa(pl.dbIndex))
		if _, err := p.aofFile.Write(protocol.MakeMultiBulkReply(selectCmd).ToBytes()); err != nil {
			logs.LOG.Warn.Println(err)
			return
		}
		p.currentDB = pl.dbIndex
	}
	if _, err := p.aofFile.Write(protocol.MakeMultiBulkReply(pl.cmdLine).ToBytes()); err != nil {
		logs.LOG.Warn.Println(err)
		return
	}
	if p.aofFsync == FsyncAlways {
		_ = p.aofFile.Sync()
	}
}

// LoadAof replays the file into the bound engine, maxBytes 0 means the
// whole file.
func (p *PerSister) LoadAof(maxBytes int) {
	file, err := os.Open(p.aofFilename)
	if err != nil {
		if !os.IsNotExist(err) {
			logs.LOG.Warn.Println(err)
		}
		return
	}
	defer file.Close()
	var reader io.Reader = file
	if maxBytes > 0 {
		reader = io.LimitReader(file, int64(maxBytes))
	}
	ch := parser.ParseStream(reader)
	fakeConn := connection.NewFakeConn()
	for pl := range ch {
		if pl.Err != nil {
			if pl.Err == io.EOF {
				break
			}
			logs.LOG.Warn.Println("parse aof error:", pl.Err)
			continue
		}
		if pl.Data == nil {
			continue
		}
		r, ok := pl.Data.(*protocol.MultiBulkReply)
		if !ok {
			continue
		}
		reply := p.db.Exec(fakeConn, r.Args)
		if protocol.IsErrorReply(reply.ToBytes()) {
			logs.LOG.Warn.Println("replay aof command failed:", string(reply.ToBytes()))
		}
	}
}

func (p *PerSister) Fsync() {
	p.pausingAof.Lock()
	defer p.pausingAof.Unlock()
	if err := p.aofFile.Sync(); err != nil {
		logs.LOG.Warn.Println(err)
	}
}

func (p *PerSister) fsyncEverySecond() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.Fsync()
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *PerSister) Close() {
	if p.aofFile != nil {
		close(p.aofChan)
		<-p.aofFinished
		if err := p.aofFile.Close(); err != nil {
			logs.LOG.Warn.Println(err)
		}
	}
	p.cancel()
}

// Rewrite compacts the AOF: the current file is replayed into a scratch
// engine, the scratch state is serialized into a temp file and the temp
// file replaces the old log. Writes pause for the duration.
func (p *PerSister) Rewrite() error {
	p.pausingAof.Lock()
	defer p.pausingAof.Unlock()

	if err := p.aofFile.Sync(); err != nil {
		return err
	}
	fileInfo, err := os.Stat(p.aofFilename)
	if err != nil {
		return err
	}

	scratch := &PerSister{
		db:          p.tmpDBMaker(),
		aofFilename: p.aofFilename,
		currentDB:   -1,
	}
	scratch.LoadAof(int(fileInfo.Size()))

	tmpFile, err := os.CreateTemp(config.GetTmpDir(), "*.aof")
	if err != nil {
		return err
	}
	for i := 0; i < config.Properties.Databases; i++ {
		written := false
		var werr error
		scratch.db.ForEach(i, func(key string, entity *database.DataEntity, expiration *time.Time) bool {
			if !written {
				selectCmd := utils.ToCmdLine("select", strconv.Itoa(i))
				if _, werr = tmpFile.Write(protocol.MakeMultiBulkReply(selectCmd).ToBytes()); werr != nil {
					return false
				}
				written = true
			}
			for _, cmd := range entityToCmd(key, entity) {
				if _, werr = tmpFile.Write(protocol.MakeMultiBulkReply(cmd).ToBytes()); werr != nil {
					return false
				}
			}
			if expiration != nil {
				expireCmd := utils.ToCmdLine("pexpireat", key,
					strconv.FormatInt(expiration.UnixNano()/1e6, 10))
				if _, werr = tmpFile.Write(protocol.MakeMultiBulkReply(expireCmd).ToBytes()); werr != nil {
					return false
				}
			}
			return true
		})
		if werr != nil {
			_ = tmpFile.Close()
			return werr
		}
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := p.aofFile.Close(); err != nil {
		logs.LOG.Warn.Println(err)
	}
	if err := os.Rename(tmpFile.Name(), p.aofFilename); err != nil {
		return err
	}
	aofFile, err := os.OpenFile(p.aofFilename, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		panic(err)
	}
	p.aofFile = aofFile
	// the rewritten file ends on an unknown SELECT, force a fresh one
	p.currentDB = -1
	return nil
}

// entityToCmd serializes one keyspace entry back into command lines.
func entityToCmd(key string, entity *database.DataEntity) []CmdLine {
	if entity == nil {
		return nil
	}
	switch data := entity.Data.(type) {
	case []byte:
		return []CmdLine{utils.ToCmdLine2("set", key, string(data))}
	case *SortedList.SortedList:
		cmds := make([]CmdLine, 0, data.Len())
		data.ForEach(func(n *SortedList.Node) bool {
			cmds = append(cmds, utils.ToCmdLine("sladd", key, n.Score.String(), n.Member.String()))
			return true
		})
		return cmds
	}
	return nil
}
