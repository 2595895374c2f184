package pubsub

import (
	Dict "slidis/datastruct/dict"
	"sync"
)

// Hub maps channel name -> *list.LinkedList of subscribed connections.
type Hub struct {
	subs Dict.Dict
	mu   sync.Mutex
}

func MakeHub() *Hub {
	return &Hub{
		subs: Dict.MakeConcurrent(3),
	}
}
