package sortedlist

// SortedList is an ordered multi-map over (score, member) token pairs.
// Equal scores are allowed and ordered by member. All calls assume
// exclusive access, the command layer serializes per key.
type SortedList struct {
	skiplist *skiplist
}

func Make() *SortedList {
	return &SortedList{
		skiplist: makeSkiplist(),
	}
}

// Add inserts the pair without replacing duplicates. Callers wanting
// replace semantics call Remove first.
func (list *SortedList) Add(score *Token, member *Token) *Node {
	return list.skiplist.insert(score, member)
}

// Remove deletes the entry matching the exact (score, member) pair.
func (list *SortedList) Remove(score *Token, member *Token) bool {
	return list.skiplist.remove(score, member)
}

// RemoveScore deletes every entry with the given score and returns how
// many were removed.
func (list *SortedList) RemoveScore(score *Token) int {
	return list.skiplist.removeScore(score)
}

// Search returns the leftmost node whose score equals the argument, or
// nil. Walking Next() while the score stays equal visits the whole run.
func (list *SortedList) Search(score *Token) *Node {
	return list.skiplist.searchSmallest(score)
}

// RangeLowEnd returns the first node qualifying for the range, or nil.
func (list *SortedList) RangeLowEnd(spec *RangeSpec) *Node {
	if list.skiplist.length == 0 {
		return nil
	}
	return list.skiplist.rangeLowEnd(spec)
}

// RangeHighEnd returns the last candidate for the range, or nil. When
// the maximum does not occur in the list the candidate may sit one past
// the bound, callers clamp against the spec before iterating.
func (list *SortedList) RangeHighEnd(spec *RangeSpec) *Node {
	if list.skiplist.length == 0 {
		return nil
	}
	return list.skiplist.rangeHighEnd(spec)
}

// First returns the head of the layer-0 chain, or nil when empty.
func (list *SortedList) First() *Node {
	return list.skiplist.header.forward[0]
}

// ForEach walks the layer-0 chain in order while the consumer returns
// true.
func (list *SortedList) ForEach(consumer func(node *Node) bool) {
	for n := list.skiplist.header.forward[0]; n != nil; n = n.forward[0] {
		if !consumer(n) {
			break
		}
	}
}

func (list *SortedList) Len() int64 {
	return list.skiplist.length
}
