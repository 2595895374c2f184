package sortedlist

import "testing"

func TestCompareRules(t *testing.T) {
	tests := []struct {
		name string
		a, b *Token
		want int
	}{
		{"both nil", nil, nil, 0},
		{"nil greater left", nil, tok("a"), 1},
		{"nil greater right", tok("a"), nil, -1},
		{"int fast path", TryEncode([]byte("2")), TryEncode([]byte("10")), -1},
		{"int equal", TryEncode([]byte("7")), TryEncode([]byte("7")), 0},
		{"negative int", TryEncode([]byte("-3")), TryEncode([]byte("2")), -1},
		{"mixed falls back to bytes", TryEncode([]byte("2")), NewToken([]byte("10")), 1},
		{"bytewise", tok("abc"), tok("abd"), -1},
		{"bytewise prefix", tok("ab"), tok("abc"), -1},
		{"equal strings", tok("abc"), tok("abc"), 0},
	}
	for _, tt := range tests {
		got := Compare(tt.a, tt.b)
		if sign(got) != tt.want {
			t.Errorf("%s: Compare = %d, want sign %d", tt.name, got, tt.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func TestSentinels(t *testing.T) {
	others := []*Token{tok("a"), tok(""), tok("zzzz"), TryEncode([]byte("123")),
		NewToken([]byte("minstring")), NewToken([]byte("maxstring"))}
	for _, o := range others {
		if Compare(MinString, o) >= 0 {
			t.Errorf("MinString not below %q", o)
		}
		if Compare(o, MinString) <= 0 {
			t.Errorf("%q not above MinString", o)
		}
		if Compare(MaxString, o) <= 0 {
			t.Errorf("MaxString not above %q", o)
		}
		if Compare(o, MaxString) >= 0 {
			t.Errorf("%q not below MaxString", o)
		}
	}
	if Compare(MinString, MinString) != 0 || Compare(MaxString, MaxString) != 0 {
		t.Errorf("sentinel not equal to itself")
	}
	if Compare(MinString, MaxString) >= 0 {
		t.Errorf("MinString not below MaxString")
	}
}

func TestTryEncode(t *testing.T) {
	ints := []string{"0", "7", "-3", "123456789", "-9223372036854775808", "9223372036854775807"}
	for _, s := range ints {
		if !TryEncode([]byte(s)).IsInt() {
			t.Errorf("%q should take the integer fast path", s)
		}
	}
	raws := []string{"", "a", "1a", "007", "-", "--1", " 1", "1 ", "99999999999999999999999"}
	for _, s := range raws {
		if TryEncode([]byte(s)).IsInt() {
			t.Errorf("%q should stay string encoded", s)
		}
	}
}

func TestMemberCompareIsBytewise(t *testing.T) {
	// even two integer-encoded members order by their string form
	a := TryEncode([]byte("2"))
	b := TryEncode([]byte("10"))
	if CompareBytes(a, b) <= 0 {
		t.Errorf("member compare must be bytewise: %q before %q", "2", "10")
	}
	if Compare(a, b) >= 0 {
		t.Errorf("score compare must be numeric: 2 below 10")
	}
}
