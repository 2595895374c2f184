package pubsub

import (
	List "slidis/datastruct/list"
	"slidis/interface/redis"
	"slidis/redis/protocol"
	"slidis/utils"
	"strconv"
)

var (
	_subscribe         = "subscribe"
	_unsubscribe       = "unsubscribe"
	messageBytes       = []byte("message")
	unSubscribeNothing = []byte("*3\r\n$11\r\nunsubscribe\r\n$-1\r\n:0\r\n")
)

func makeMsg(t string, channel string, code int64) []byte {
	return []byte("*3\r\n$" + strconv.FormatInt(int64(len(t)), 10) + protocol.CRLF + t + protocol.CRLF +
		"$" + strconv.FormatInt(int64(len(channel)), 10) + protocol.CRLF + channel + protocol.CRLF +
		":" + strconv.FormatInt(code, 10) + protocol.CRLF)
}

func subscribe0(hub *Hub, channel string, client redis.Connection) bool {
	client.Subscribe(channel)
	var subscribers *List.LinkedList
	val, exists := hub.subs.Get(channel)
	if exists {
		subscribers = val.(*List.LinkedList)
	} else {
		subscribers = List.MakeLinked()
		hub.subs.Put(channel, subscribers)
	}
	if subscribers.Contains(func(actual any) bool {
		return actual == client
	}) {
		return false
	}
	subscribers.Add(client)
	return true
}

func unsubscribe0(hub *Hub, channel string, client redis.Connection) bool {
	client.Unsubscribe(channel)
	val, exists := hub.subs.Get(channel)
	if !exists {
		return false
	}
	subscribers := val.(*List.LinkedList)
	removed := subscribers.RemoveAllByVal(func(actual any) bool {
		return utils.Equals(actual, client)
	})
	if subscribers.Len() == 0 {
		hub.subs.Remove(channel)
	}
	return removed > 0
}

// Subscribe adds the client to every named channel and acks each one.
func Subscribe(hub *Hub, c redis.Connection, args [][]byte) redis.Reply {
	if len(args) < 1 {
		return protocol.MakeArgNumErrReply("subscribe")
	}
	channels := make([]string, len(args))
	for i, b := range args {
		channels[i] = string(b)
	}
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for _, channel := range channels {
		if subscribe0(hub, channel, c) {
			_, _ = c.Write(makeMsg(_subscribe, channel, int64(c.SubsCount())))
		}
	}
	return protocol.MakeNoReply()
}

// UnSubscribe removes the client from the named channels, all of its
// channels when none are given.
func UnSubscribe(hub *Hub, c redis.Connection, args [][]byte) redis.Reply {
	var channels []string
	if len(args) > 0 {
		channels = make([]string, len(args))
		for i, b := range args {
			channels[i] = string(b)
		}
	} else {
		channels = c.GetChannels()
	}
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if len(channels) == 0 {
		_, _ = c.Write(unSubscribeNothing)
		return protocol.MakeNoReply()
	}
	for _, channel := range channels {
		if unsubscribe0(hub, channel, c) {
			_, _ = c.Write(makeMsg(_unsubscribe, channel, int64(c.SubsCount())))
		}
	}
	return protocol.MakeNoReply()
}

// UnsubscribeAll drops every subscription of a closing client.
func UnsubscribeAll(hub *Hub, c redis.Connection) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for _, channel := range c.GetChannels() {
		unsubscribe0(hub, channel, c)
	}
}

// Publish sends the message to every subscriber of the channel and
// replies with the receiver count.
func Publish(hub *Hub, c redis.Connection, args [][]byte) redis.Reply {
	if len(args) != 2 {
		return protocol.MakeArgNumErrReply("publish")
	}
	channel := string(args[0])
	message := args[1]
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return protocol.MakeIntReply(publish0(hub, channel, message))
}

func publish0(hub *Hub, channel string, message []byte) int64 {
	val, exists := hub.subs.Get(channel)
	if !exists {
		return 0
	}
	subscribers := val.(*List.LinkedList)
	sent := int64(0)
	subscribers.ForEach(func(i int, v any) bool {
		client, ok := v.(redis.Connection)
		if !ok {
			return true
		}
		reply := protocol.MakeMultiBulkReply([][]byte{
			messageBytes,
			[]byte(channel),
			message,
		})
		if _, err := client.Write(reply.ToBytes()); err == nil {
			sent++
		}
		return true
	})
	return sent
}

// NotifyKeyspaceEvent publishes the two conventional notification
// messages for a mutation: the event on the key channel and the key on
// the event channel.
func NotifyKeyspaceEvent(hub *Hub, dbIndex int, event string, key string) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	idx := strconv.Itoa(dbIndex)
	publish0(hub, "__keyspace@"+idx+"__:"+key, []byte(event))
	publish0(hub, "__keyevent@"+idx+"__:"+event, []byte(key))
}
