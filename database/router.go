package database

import (
	"slidis/interface/redis"
	"slidis/pubsub"
	"strings"
)

const (
	flagWrite    = 0
	flagReadOnly = 1
)

type systemCommand struct {
	executor SysExecFunc
	flag     int
}

type pubSubCommand struct {
	executor func(hub *pubsub.Hub, c redis.Connection, args [][]byte) redis.Reply
	flag     int
}

type command struct {
	executor ExecFunc
	prepare  PreFunc // read/write key extraction
	arity    int     // arity < 0 means len(args) >= -arity
	flags    int     // read only or not
}

var (
	systemTable = make(map[string]*systemCommand)
	pubSubTable = make(map[string]*pubSubCommand)
	cmdTable    = make(map[string]*command)
)

func RegisterSystemCommand(name string, executor SysExecFunc) {
	name = strings.ToLower(name)
	systemTable[name] = &systemCommand{
		executor: executor,
	}
}

func RegisterPubSubCommand(name string, executor func(hub *pubsub.Hub, c redis.Connection, args [][]byte) redis.Reply, flags int) {
	name = strings.ToLower(name)
	pubSubTable[name] = &pubSubCommand{
		executor: executor,
		flag:     flags,
	}
}

func RegisterCommand(name string, executor ExecFunc, prepare PreFunc, arity int, flags int) {
	name = strings.ToLower(name)
	cmdTable[name] = &command{
		executor: executor,
		prepare:  prepare,
		arity:    arity,
		flags:    flags,
	}
}

func writeFirstKey(args [][]byte) ([]string, []string) {
	key := string(args[0])
	return []string{key}, nil
}

func writeAllKeys(args [][]byte) ([]string, []string) {
	keys := make([]string, len(args))
	for i, v := range args {
		keys[i] = string(v)
	}
	return keys, nil
}

func readFirstKey(args [][]byte) ([]string, []string) {
	key := string(args[0])
	return nil, []string{key}
}

func readAllKeys(args [][]byte) ([]string, []string) {
	keys := make([]string, len(args))
	for i, v := range args {
		keys[i] = string(v)
	}
	return nil, keys
}

func noPrepare(args [][]byte) ([]string, []string) {
	return nil, nil
}
