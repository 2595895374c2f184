package database

import (
	SortedList "slidis/datastruct/sortedlist"
	"slidis/interface/redis"
	"slidis/redis/protocol"
	"slidis/utils"
	"slidis/utils/wildcard"
	"strconv"
	"time"
)

func execDel(db *DB, args [][]byte) redis.Reply {
	keys, _ := writeAllKeys(args)
	deleted := db.Removes(keys...)
	if deleted > 0 {
		db.addAof(utils.ToCmdLine3("del", args...))
		for _, key := range keys {
			db.notify("del", key)
		}
	}
	return protocol.MakeIntReply(int64(deleted))
}

func execExists(db *DB, args [][]byte) redis.Reply {
	count := int64(0)
	for _, arg := range args {
		if _, exists := db.GetEntity(string(arg)); exists {
			count++
		}
	}
	return protocol.MakeIntReply(count)
}

func execType(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	entity, exists := db.GetEntity(key)
	if !exists {
		return protocol.MakeStatusReply("none")
	}
	switch entity.Data.(type) {
	case []byte:
		return protocol.MakeStatusReply("string")
	case *SortedList.SortedList:
		return protocol.MakeStatusReply("slist")
	}
	return protocol.MakeErrReply("ERR unknown type")
}

func execKeys(db *DB, args [][]byte) redis.Reply {
	pattern, err := wildcard.CompilePattern(string(args[0]))
	if err != nil {
		return protocol.MakeErrReply("ERR illegal wildcard")
	}
	keys := make([][]byte, 0)
	db.data.ForEach(func(key string, val any) bool {
		if pattern.IsMatch(key) && !db.IsExpired(key) {
			keys = append(keys, []byte(key))
		}
		return true
	})
	return protocol.MakeMultiBulkReply(keys)
}

func execTTL(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	if _, exists := db.GetEntity(key); !exists {
		return protocol.MakeIntReply(-2)
	}
	val, exists := db.ttlMap.Get(key)
	if !exists {
		return protocol.MakeIntReply(-1)
	}
	t := val.(time.Time)
	ttl := time.Until(t)
	return protocol.MakeIntReply(int64(ttl / time.Second))
}

func execExpire(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	num, err := strconv.ParseInt(string(args[1]), 10, 64)
	if err != nil {
		return protocol.MakeErrReply("ERR value is not an integer or out of range")
	}
	if _, exists := db.GetEntity(key); !exists {
		return protocol.MakeIntReply(0)
	}
	expireAt := time.Now().Add(time.Duration(num) * time.Second)
	db.Expire(key, expireAt)
	db.addAof(utils.ToCmdLine("pexpireat", key,
		strconv.FormatInt(expireAt.UnixNano()/1e6, 10)))
	return protocol.MakeIntReply(1)
}

func execPExpireAt(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	num, err := strconv.ParseInt(string(args[1]), 10, 64)
	if err != nil {
		return protocol.MakeErrReply("ERR value is not an integer or out of range")
	}
	if _, exists := db.GetEntity(key); !exists {
		return protocol.MakeIntReply(0)
	}
	expireAt := time.Unix(0, num*1e6)
	db.Expire(key, expireAt)
	db.addAof(utils.ToCmdLine3("pexpireat", args...))
	return protocol.MakeIntReply(1)
}

func execPersist(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	if _, exists := db.GetEntity(key); !exists {
		return protocol.MakeIntReply(0)
	}
	if _, exists := db.ttlMap.Get(key); !exists {
		return protocol.MakeIntReply(0)
	}
	db.Persist(key)
	db.addAof(utils.ToCmdLine("persist", key))
	return protocol.MakeIntReply(1)
}

func init() {
	RegisterCommand("DEL", execDel, writeAllKeys, -2, flagWrite)
	RegisterCommand("EXISTS", execExists, readAllKeys, -2, flagReadOnly)
	RegisterCommand("TYPE", execType, readFirstKey, 2, flagReadOnly)
	RegisterCommand("KEYS", execKeys, noPrepare, 2, flagReadOnly)
	RegisterCommand("TTL", execTTL, readFirstKey, 2, flagReadOnly)
	RegisterCommand("EXPIRE", execExpire, writeFirstKey, 3, flagWrite)
	RegisterCommand("PEXPIREAT", execPExpireAt, writeFirstKey, 3, flagWrite)
	RegisterCommand("PERSIST", execPersist, writeFirstKey, 2, flagWrite)
}
