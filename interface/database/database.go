package database

import (
	"slidis/interface/redis"
	"time"
)

type CmdLine = [][]byte

// DataEntity wraps any value stored in the keyspace ([]byte,
// *sortedlist.SortedList, ...).
type DataEntity struct {
	Data any
}

// DB is the command execution engine seen by the protocol layer.
type DB interface {
	Exec(client redis.Connection, cmdLine [][]byte) redis.Reply
	AfterClientClose(c redis.Connection)
	Close()
}

// DBEngine adds the inspection hooks persistence needs.
type DBEngine interface {
	DB
	ForEach(dbIndex int, cb func(key string, data *DataEntity, expiration *time.Time) bool)
}
