package database

import (
	"slidis/config"
	"slidis/interface/redis"
	"slidis/redis/protocol"
	"strconv"
)

func Ping(c redis.Connection, args [][]byte) redis.Reply {
	if len(args) == 0 {
		return protocol.MakePongReply()
	} else if len(args) == 1 {
		return protocol.MakeStatusReply(string(args[0]))
	}
	return protocol.MakeArgNumErrReply("ping")
}

func Auth(c redis.Connection, args [][]byte) redis.Reply {
	if len(args) != 1 {
		return protocol.MakeArgNumErrReply("auth")
	}
	if config.Properties.Password == "" {
		return protocol.MakeErrReply("ERR Client sent AUTH, but no password is set")
	}
	password := string(args[0])
	c.SetPassword(password)
	if config.Properties.Password != password {
		return protocol.MakeErrReply("ERR invalid password")
	}
	return protocol.MakeOkReply()
}

func Select(c redis.Connection, args [][]byte) redis.Reply {
	if len(args) != 1 {
		return protocol.MakeArgNumErrReply("select")
	}
	dbIndex, err := strconv.Atoi(string(args[0]))
	if err != nil {
		return protocol.MakeErrReply("ERR value is not an integer or out of range")
	}
	if dbIndex < 0 || dbIndex >= config.Properties.Databases {
		return protocol.MakeErrReply("ERR DB index is out of range")
	}
	c.SelectDB(dbIndex)
	return protocol.MakeOkReply()
}

func init() {
	RegisterSystemCommand("PING", Ping)
	RegisterSystemCommand("AUTH", Auth)
	RegisterSystemCommand("SELECT", Select)
}
