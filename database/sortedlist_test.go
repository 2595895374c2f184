package database

import (
	"fmt"
	"slidis/redis/protocol"
	"slidis/utils"
	"testing"
)

func asInt(t *testing.T, r interface{ ToBytes() []byte }) int64 {
	t.Helper()
	intReply, ok := r.(*protocol.IntReply)
	if !ok {
		t.Fatalf("expected int reply, got %s", r.ToBytes())
	}
	return intReply.Code
}

func asMultiBulk(t *testing.T, r interface{ ToBytes() []byte }) []string {
	t.Helper()
	switch reply := r.(type) {
	case *protocol.EmptyMultiBulkReply:
		return nil
	case *protocol.MultiBulkReply:
		out := make([]string, len(reply.Args))
		for i, arg := range reply.Args {
			out[i] = string(arg)
		}
		return out
	}
	t.Fatalf("expected multi bulk reply, got %s", r.ToBytes())
	return nil
}

func assertStrings(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSLAddAndCard(t *testing.T) {
	db := makeDB()
	args := utils.ToCmdLine("k",
		"score1", "v1", "score2", "v2", "score3", "v3", "score4", "v4")
	if n := asInt(t, execSLAdd(db, args)); n != 4 {
		t.Fatalf("expected 4 added, got %d", n)
	}
	if n := asInt(t, execSLCard(db, utils.ToCmdLine("k"))); n != 4 {
		t.Fatalf("expected card 4, got %d", n)
	}
	// replaying the same pairs is a net zero
	if n := asInt(t, execSLAdd(db, args)); n != 0 {
		t.Fatalf("expected 0 added on replay, got %d", n)
	}
	if n := asInt(t, execSLCard(db, utils.ToCmdLine("k"))); n != 4 {
		t.Fatalf("expected card 4 after replay, got %d", n)
	}
}

func TestSLAddParity(t *testing.T) {
	db := makeDB()
	r := execSLAdd(db, utils.ToCmdLine("k", "score1", "v1", "score2"))
	if _, ok := r.(*protocol.SyntaxErrReply); !ok {
		t.Fatalf("expected syntax error, got %s", r.ToBytes())
	}
	if n := asInt(t, execSLCard(db, utils.ToCmdLine("k"))); n != 0 {
		t.Fatalf("rejected command must not write, card %d", n)
	}
}

func TestSLAddWrongType(t *testing.T) {
	db := makeDB()
	execSet(db, utils.ToCmdLine("k", "v"))
	r := execSLAdd(db, utils.ToCmdLine("k", "score1", "v1"))
	if _, ok := r.(*protocol.WrongTypeErrReply); !ok {
		t.Fatalf("expected wrong type error, got %s", r.ToBytes())
	}
	// the error reply must not be followed by a write
	if s := asMultiBulk(t, execSLAll(db, utils.ToCmdLine("nosuch"))); s != nil {
		t.Fatalf("expected empty, got %v", s)
	}
	got, err := db.getAsString("k")
	if err != nil || string(got) != "v" {
		t.Fatalf("string value clobbered: %q %v", got, err)
	}
}

func TestSLRemDuplicateScores(t *testing.T) {
	db := makeDB()
	execSLAdd(db, utils.ToCmdLine("k",
		"score1", "v1", "score2", "v2", "score2", "v22", "score2", "v222", "score3", "v3"))
	assertStrings(t, asMultiBulk(t, execSLAll(db, utils.ToCmdLine("k"))),
		"score1", "v1", "score2", "v2", "score2", "v22", "score2", "v222", "score3", "v3")

	if n := asInt(t, execSLRem(db, utils.ToCmdLine("k", "score2"))); n != 3 {
		t.Fatalf("expected 3 removed, got %d", n)
	}
	assertStrings(t, asMultiBulk(t, execSLAll(db, utils.ToCmdLine("k"))),
		"score1", "v1", "score3", "v3")
}

func TestSLRemDropsEmptyKey(t *testing.T) {
	db := makeDB()
	execSLAdd(db, utils.ToCmdLine("k", "score1", "v1"))
	if n := asInt(t, execSLRem(db, utils.ToCmdLine("k", "score1"))); n != 1 {
		t.Fatalf("expected 1 removed, got %d", n)
	}
	if n := asInt(t, execExists(db, utils.ToCmdLine("k"))); n != 0 {
		t.Fatalf("emptied key must be dropped")
	}
	// removing from a missing key is a no-op
	if n := asInt(t, execSLRem(db, utils.ToCmdLine("k", "score1"))); n != 0 {
		t.Fatalf("expected 0 removed, got %d", n)
	}
}

func TestSLRemParity(t *testing.T) {
	db := makeDB()
	execSLAdd(db, utils.ToCmdLine("k", "score1", "v1", "score2", "v2"))
	r := execSLRem(db, utils.ToCmdLine("k", "score1", "score2"))
	if _, ok := r.(*protocol.SyntaxErrReply); !ok {
		t.Fatalf("expected syntax error, got %s", r.ToBytes())
	}
	if n := asInt(t, execSLCard(db, utils.ToCmdLine("k"))); n != 2 {
		t.Fatalf("rejected command must not write, card %d", n)
	}
}

func TestSLRange(t *testing.T) {
	db := makeDB()
	for i := 1; i <= 6; i++ {
		execSLAdd(db, utils.ToCmdLine("k", fmt.Sprintf("score%d", i), fmt.Sprintf("v%d", i)))
	}

	assertStrings(t, asMultiBulk(t, execSLRange(db, utils.ToCmdLine("k", "[score2", "[score4"))),
		"score2", "v2", "score3", "v3", "score4", "v4")
	assertStrings(t, asMultiBulk(t, execSLRange(db, utils.ToCmdLine("k", "(score1", "(score3"))),
		"score2", "v2")
	assertStrings(t, asMultiBulk(t, execSLRange(db, utils.ToCmdLine("k", "r1", "score1"))),
		"score1", "v1")
	assertStrings(t, asMultiBulk(t, execSLRange(db, utils.ToCmdLine("k", "t1", "t2"))))
	assertStrings(t, asMultiBulk(t, execSLRange(db, utils.ToCmdLine("k", "-", "+"))),
		"score1", "v1", "score2", "v2", "score3", "v3", "score4", "v4", "score5", "v5", "score6", "v6")
}

func TestSLRangeMemberOrderInsideScore(t *testing.T) {
	db := makeDB()
	execSLAdd(db, utils.ToCmdLine("k",
		"score1", "v1", "score1", "v2", "score1", "v3", "score1", "v4", "score1", "v5",
		"score2", "v6"))
	assertStrings(t, asMultiBulk(t, execSLRange(db, utils.ToCmdLine("k", "score1", "score2"))),
		"score1", "v1", "score1", "v2", "score1", "v3", "score1", "v4", "score1", "v5",
		"score2", "v6")
}

func TestSLRangeSingleValueBounds(t *testing.T) {
	db := makeDB()
	execSLAdd(db, utils.ToCmdLine("k", "a", "v"))
	assertStrings(t, asMultiBulk(t, execSLRange(db, utils.ToCmdLine("k", "[a", "[a"))),
		"a", "v")
	assertStrings(t, asMultiBulk(t, execSLRange(db, utils.ToCmdLine("k", "(a", "(a"))))
}

func TestSLRangeInvalidBounds(t *testing.T) {
	db := makeDB()
	execSLAdd(db, utils.ToCmdLine("k", "a", "v"))
	r := execSLRange(db, utils.ToCmdLine("k", "+oops", "a"))
	errReply, ok := r.(*protocol.StandardErrReply)
	if !ok {
		t.Fatalf("expected error reply, got %s", r.ToBytes())
	}
	if errReply.Status != "min or max is not valid" {
		t.Fatalf("unexpected error text %q", errReply.Status)
	}
}

func TestSLSearch(t *testing.T) {
	db := makeDB()
	const n = 5000
	for i := 0; i < n; i += 100 {
		args := make([]string, 0, 201)
		args = append(args, "k")
		for j := i; j < i+100; j++ {
			args = append(args, fmt.Sprintf("score_%05d", j), fmt.Sprintf("%d", j))
		}
		execSLAdd(db, utils.ToCmdLine(args...))
	}
	if card := asInt(t, execSLCard(db, utils.ToCmdLine("k"))); card != n {
		t.Fatalf("expected card %d, got %d", n, card)
	}
	for _, i := range []int{0, 17, 999, 2500, 4999} {
		assertStrings(t,
			asMultiBulk(t, execSLSearch(db, utils.ToCmdLine("k", fmt.Sprintf("score_%05d", i)))),
			fmt.Sprintf("score_%05d", i), fmt.Sprintf("%d", i))
	}
	assertStrings(t, asMultiBulk(t, execSLSearch(db, utils.ToCmdLine("k", "score_99999"))))
}

func TestSLSearchDuplicates(t *testing.T) {
	db := makeDB()
	execSLAdd(db, utils.ToCmdLine("k",
		"score1", "v1", "score2", "v2", "score2", "v22", "score3", "v3"))
	assertStrings(t, asMultiBulk(t, execSLSearch(db, utils.ToCmdLine("k", "score2"))),
		"score2", "v2", "score2", "v22")
}

func TestSLCardMissingAndWrongType(t *testing.T) {
	db := makeDB()
	if n := asInt(t, execSLCard(db, utils.ToCmdLine("nosuch"))); n != 0 {
		t.Fatalf("expected 0 for missing key, got %d", n)
	}
	execSet(db, utils.ToCmdLine("s", "v"))
	if n := asInt(t, execSLCard(db, utils.ToCmdLine("s"))); n != 0 {
		t.Fatalf("expected 0 for wrong type, got %d", n)
	}
}

func TestTypeReportsSortedList(t *testing.T) {
	db := makeDB()
	execSLAdd(db, utils.ToCmdLine("k", "score1", "v1"))
	r := execType(db, utils.ToCmdLine("k"))
	status, ok := r.(*protocol.StandardStatusReply)
	if !ok || status.Status != "slist" {
		t.Fatalf("expected slist, got %s", r.ToBytes())
	}
}
