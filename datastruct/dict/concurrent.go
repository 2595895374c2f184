package dict

import (
	"math"
	"sync"
	"sync/atomic"
)

const prime32 = uint32(16777619)

// ConcurrentDict shards keys over RW-locked maps so concurrent clients
// touching different keys do not contend.
type ConcurrentDict struct {
	table      []*shard
	count      int32 // key count
	shardCount int   // table count
}

type shard struct {
	m     map[string]any
	mutex sync.RWMutex
}

func computeCapacity(param int) (size int) {
	if param <= 16 {
		return 16
	}
	n := param - 1
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	if n < 0 {
		return math.MaxInt32
	}
	return n + 1
}

// GetHashCode32 return hashCode
func GetHashCode32(key string) uint32 {
	hash := uint32(2166136261)
	for i := 0; i < len(key); i++ {
		hash *= prime32
		hash ^= uint32(key[i])
	}
	return hash
}

// return index
func (dict *ConcurrentDict) spread(hashCode uint32) uint32 {
	if dict == nil {
		panic("dict is nil")
	}
	tableSize := uint32(len(dict.table))
	return (tableSize - 1) & hashCode
}

// return *shard table
func (dict *ConcurrentDict) getShard(index uint32) *shard {
	if dict == nil {
		panic("dict is nil")
	}
	return dict.table[index]
}

func MakeConcurrent(shardCount int) *ConcurrentDict {
	shardCount = computeCapacity(shardCount)
	tables := make([]*shard, shardCount)
	for i := 0; i < shardCount; i++ {
		tables[i] = &shard{
			m: make(map[string]any),
		}
	}
	return &ConcurrentDict{
		shardCount: shardCount,
		count:      0,
		table:      tables,
	}
}

func (dict *ConcurrentDict) Get(key string) (val any, exists bool) {
	s := dict.getShard(dict.spread(GetHashCode32(key)))
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	val, exists = s.m[key]
	return
}

func (dict *ConcurrentDict) Len() int {
	if dict == nil {
		panic("dict is nil")
	}
	return int(atomic.LoadInt32(&dict.count))
}

func (dict *ConcurrentDict) Put(key string, val any) (result int) {
	s := dict.getShard(dict.spread(GetHashCode32(key)))
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.m[key]; ok {
		s.m[key] = val
		return 0
	}
	s.m[key] = val
	atomic.AddInt32(&dict.count, 1)
	return 1
}

func (dict *ConcurrentDict) PutIfAbsent(key string, val any) (result int) {
	s := dict.getShard(dict.spread(GetHashCode32(key)))
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.m[key]; ok {
		return 0
	}
	s.m[key] = val
	atomic.AddInt32(&dict.count, 1)
	return 1
}

func (dict *ConcurrentDict) PutIfExists(key string, val any) (result int) {
	s := dict.getShard(dict.spread(GetHashCode32(key)))
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.m[key]; ok {
		s.m[key] = val
		return 1
	}
	return 0
}

func (dict *ConcurrentDict) Remove(key string) (result int) {
	s := dict.getShard(dict.spread(GetHashCode32(key)))
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.m[key]; ok {
		delete(s.m, key)
		atomic.AddInt32(&dict.count, -1)
		return 1
	}
	return 0
}

func (dict *ConcurrentDict) ForEach(consumer Consumer) {
	if dict == nil {
		panic("dict is nil")
	}
	for _, s := range dict.table {
		s.mutex.RLock()
		stop := func() bool {
			defer s.mutex.RUnlock()
			for key, value := range s.m {
				if !consumer(key, value) {
					return true
				}
			}
			return false
		}()
		if stop {
			break
		}
	}
}

func (dict *ConcurrentDict) Keys() []string {
	keys := make([]string, 0, dict.Len())
	dict.ForEach(func(key string, val any) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
