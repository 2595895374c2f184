package database

import (
	"slidis/datastruct/dict"
	"slidis/interface/database"
	"slidis/interface/redis"
	"slidis/redis/protocol"
	"strings"
	"sync"
	"time"
)

const (
	dataDictSize = 1 << 16
	ttlDictSize  = 1 << 10
)

// DB is one numbered keyspace of the server.
type DB struct {
	index  int
	data   dict.Dict
	ttlMap dict.Dict
	addAof func(CmdLine)
	notify func(event string, key string)
	// mu serializes command execution on this keyspace
	mu sync.Mutex
}

type ExecFunc func(db *DB, args [][]byte) redis.Reply

type SysExecFunc func(db redis.Connection, args [][]byte) redis.Reply

type PreFunc func(args [][]byte) ([]string, []string)

type CmdLine = [][]byte

func makeDB() *DB {
	return &DB{
		index:  0,
		data:   dict.MakeConcurrent(dataDictSize),
		ttlMap: dict.MakeConcurrent(ttlDictSize),
		addAof: func(line CmdLine) {},
		notify: func(event string, key string) {},
	}
}

// makeBasicDB backs the throwaway engine the AOF rewrite replays into.
func makeBasicDB() *DB {
	return &DB{
		index:  0,
		data:   dict.MakeInstanceDict(),
		ttlMap: dict.MakeInstanceDict(),
		addAof: func(line CmdLine) {},
		notify: func(event string, key string) {},
	}
}

func (db *DB) GetEntity(key string) (*database.DataEntity, bool) {
	row, exists := db.data.Get(key)
	if !exists {
		return nil, false
	}
	if db.IsExpired(key) {
		return nil, false
	}
	entity := row.(*database.DataEntity)
	return entity, true
}

func (db *DB) PutEntity(key string, entity *database.DataEntity) int {
	return db.data.Put(key, entity)
}

func (db *DB) PutIfExists(key string, entity *database.DataEntity) int {
	return db.data.PutIfExists(key, entity)
}

func (db *DB) PutIfAbsent(key string, entity *database.DataEntity) int {
	return db.data.PutIfAbsent(key, entity)
}

func (db *DB) IsExpired(key string) bool {
	val, exists := db.ttlMap.Get(key)
	if !exists {
		return false
	}
	t := val.(time.Time)
	after := time.Now().After(t)
	if after {
		db.Remove(key)
	}
	return after
}

func (db *DB) Expire(key string, expireTime time.Time) {
	db.ttlMap.Put(key, expireTime)
}

func (db *DB) Persist(key string) {
	db.ttlMap.Remove(key)
}

func (db *DB) GetExpiredTime(key string) time.Time {
	val, exists := db.ttlMap.Get(key)
	if !exists {
		return time.Time{}
	}
	return val.(time.Time)
}

func (db *DB) Remove(key string) {
	db.data.Remove(key)
	db.ttlMap.Remove(key)
}

func (db *DB) Removes(keys ...string) int {
	deleted := 0
	for _, key := range keys {
		if _, exists := db.data.Get(key); exists {
			db.Remove(key)
			deleted++
		}
	}
	return deleted
}

func (db *DB) AfterClientClose(c redis.Connection) {
}

func (db *DB) Close() {
}

// Exec runs one normal command against this keyspace.
func (db *DB) Exec(c redis.Connection, cmdLine [][]byte) redis.Reply {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.execNormalCommand(cmdLine)
}

func (db *DB) execNormalCommand(cmdLine [][]byte) redis.Reply {
	cmdName := strings.ToLower(string(cmdLine[0]))
	cmd, ok := cmdTable[cmdName]
	if !ok {
		return protocol.MakeErrReply("ERR unknown command '" + cmdName + "'")
	}
	if !validateArity(cmd.arity, cmdLine) {
		return protocol.MakeArgNumErrReply(cmdName)
	}
	return cmd.executor(db, cmdLine[1:])
}

// validateArity checks the full command line length, negative arity
// means at least -arity arguments.
func validateArity(arity int, cmdArgs [][]byte) bool {
	argNum := len(cmdArgs)
	if arity >= 0 {
		return argNum == arity
	}
	return argNum >= -arity
}

func (db *DB) ForEach(cb func(key string, data *database.DataEntity, expiration *time.Time) bool) {
	db.data.ForEach(func(key string, raw any) bool {
		entity, _ := raw.(*database.DataEntity)
		if entity == nil {
			return true
		}
		var expiration *time.Time
		if v, ok := db.ttlMap.Get(key); ok {
			t := v.(time.Time)
			expiration = &t
		}
		return cb(key, entity, expiration)
	})
}
