package database

import (
	SortedList "slidis/datastruct/sortedlist"
	"slidis/interface/database"
	"slidis/interface/redis"
	"slidis/redis/protocol"
	"slidis/utils"
)

func (db *DB) getAsSortedList(key string) (*SortedList.SortedList, redis.ErrorReply) {
	entity, exists := db.GetEntity(key)
	if !exists {
		return nil, nil
	}
	list, ok := entity.Data.(*SortedList.SortedList)
	if !ok {
		return nil, &protocol.WrongTypeErrReply{}
	}
	return list, nil
}

func (db *DB) getOrInitSortedList(key string) (*SortedList.SortedList, bool, redis.ErrorReply) {
	list, err := db.getAsSortedList(key)
	if err != nil {
		return nil, false, err
	}
	isNew := false
	if list == nil {
		list = SortedList.Make()
		db.PutEntity(key, &database.DataEntity{Data: list})
		isNew = true
	}
	return list, isNew, nil
}

// execSLAdd inserts score/member pairs, replacing pairs that already
// exist, and replies with the net number of new entries.
func execSLAdd(db *DB, args [][]byte) redis.Reply {
	if len(args)%2 != 1 {
		return protocol.MakeSyntaxErrReply()
	}
	key := string(args[0])
	list, _, errReply := db.getOrInitSortedList(key)
	if errReply != nil {
		return errReply
	}
	added := 0
	numElements := (len(args) - 1) / 2
	for j := 0; j < numElements; j++ {
		score := SortedList.TryEncode(args[1+j*2])
		member := SortedList.TryEncode(args[2+j*2])
		// replace on duplicate: the removal keeps the count net-new
		if list.Remove(score, member) {
			added--
		}
		list.Add(score, member)
		added++
	}
	if added != 0 {
		db.addAof(utils.ToCmdLine3("sladd", args...))
		db.notify("sladd", key)
	}
	return protocol.MakeIntReply(int64(added))
}

// execSLRem removes every entry carrying one of the given scores and
// drops the key once the list empties.
func execSLRem(db *DB, args [][]byte) redis.Reply {
	if len(args)%2 != 0 {
		return protocol.MakeSyntaxErrReply()
	}
	key := string(args[0])
	list, errReply := db.getAsSortedList(key)
	if errReply != nil {
		return errReply
	}
	if list == nil {
		return protocol.MakeIntReply(0)
	}
	deleted := 0
	keyRemoved := false
	for _, raw := range args[1:] {
		deleted += list.RemoveScore(SortedList.TryEncode(raw))
		if list.Len() == 0 {
			db.Remove(key)
			keyRemoved = true
			break
		}
	}
	if deleted > 0 {
		db.addAof(utils.ToCmdLine3("slrem", args...))
		db.notify("slrem", key)
		if keyRemoved {
			db.notify("del", key)
		}
	}
	return protocol.MakeIntReply(int64(deleted))
}

// execSLAll replies with every score/member pair in order.
func execSLAll(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	list, errReply := db.getAsSortedList(key)
	if errReply != nil {
		return errReply
	}
	if list == nil {
		return protocol.MakeEmptyMultiBulkReply()
	}
	result := make([][]byte, 0, list.Len()*2)
	list.ForEach(func(n *SortedList.Node) bool {
		result = append(result, n.Score.Bytes(), n.Member.Bytes())
		return true
	})
	return protocol.MakeMultiBulkReply(result)
}

// execSLRange replies with the pairs whose score falls into the
// requested interval.
func execSLRange(db *DB, args [][]byte) redis.Reply {
	spec, err := SortedList.ParseRange(
		SortedList.NewToken(args[1]),
		SortedList.NewToken(args[2]))
	if err != nil {
		return protocol.MakeErrReply(err.Error())
	}
	key := string(args[0])
	list, errReply := db.getAsSortedList(key)
	if errReply != nil {
		return errReply
	}
	if list == nil {
		return protocol.MakeEmptyMultiBulkReply()
	}

	low := list.RangeLowEnd(spec)
	high := list.RangeHighEnd(spec)
	// the high-end candidate may overshoot when the maximum does not
	// occur in the list, clamp it back inside the bound
	for high != nil && SortedList.Compare(high.Score, spec.Max) > 0 {
		high = high.Prev()
	}
	// exclusive bounds may collapse the interval to nothing
	if low == nil || high == nil || SortedList.Compare(low.Score, high.Score) > 0 {
		return protocol.MakeEmptyMultiBulkReply()
	}

	result := make([][]byte, 0, 16)
	for n := low; n != nil; n = n.Next() {
		result = append(result, n.Score.Bytes(), n.Member.Bytes())
		if n == high {
			break
		}
	}
	return protocol.MakeMultiBulkReply(result)
}

// execSLSearch replies with every pair carrying exactly the given score.
func execSLSearch(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	score := SortedList.TryEncode(args[1])
	list, errReply := db.getAsSortedList(key)
	if errReply != nil {
		return errReply
	}
	if list == nil {
		return protocol.MakeEmptyMultiBulkReply()
	}
	n := list.Search(score)
	if n == nil {
		return protocol.MakeEmptyMultiBulkReply()
	}
	result := make([][]byte, 0, 8)
	for ; n != nil && SortedList.Compare(n.Score, score) == 0; n = n.Next() {
		result = append(result, n.Score.Bytes(), n.Member.Bytes())
	}
	return protocol.MakeMultiBulkReply(result)
}

// execSLCard replies with the number of entries, zero when the key is
// absent or holds another type.
func execSLCard(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	list, errReply := db.getAsSortedList(key)
	if errReply != nil {
		return protocol.MakeIntReply(0)
	}
	if list == nil {
		return protocol.MakeIntReply(0)
	}
	return protocol.MakeIntReply(list.Len())
}

func init() {
	RegisterCommand("SLADD", execSLAdd, writeFirstKey, -4, flagWrite)
	RegisterCommand("SLREM", execSLRem, writeFirstKey, -3, flagWrite)
	RegisterCommand("SLALL", execSLAll, readFirstKey, 2, flagReadOnly)
	RegisterCommand("SLRANGE", execSLRange, readFirstKey, 4, flagReadOnly)
	RegisterCommand("SLSEARCH", execSLSearch, readFirstKey, 3, flagReadOnly)
	RegisterCommand("SLCARD", execSLCard, readFirstKey, 2, flagReadOnly)
}
