package sortedlist

import "testing"

func TestParseRangeTokens(t *testing.T) {
	tests := []struct {
		min, max     string
		wantMin      string
		wantMax      string
		minEx, maxEx bool
	}{
		{"[foo", "[bar", "foo", "bar", false, false},
		{"(foo", "(bar", "foo", "bar", true, true},
		{"foo", "bar", "foo", "bar", false, false},
		{"(foo", "[bar", "foo", "bar", true, false},
	}
	for _, tt := range tests {
		spec, err := ParseRange(NewToken([]byte(tt.min)), NewToken([]byte(tt.max)))
		if err != nil {
			t.Fatalf("parse %q %q: %v", tt.min, tt.max, err)
		}
		if spec.Min.String() != tt.wantMin || spec.MinEx != tt.minEx {
			t.Errorf("min %q: got %q exclusive=%v", tt.min, spec.Min, spec.MinEx)
		}
		if spec.Max.String() != tt.wantMax || spec.MaxEx != tt.maxEx {
			t.Errorf("max %q: got %q exclusive=%v", tt.max, spec.Max, spec.MaxEx)
		}
	}
}

func TestParseRangeSentinels(t *testing.T) {
	spec, err := ParseRange(NewToken([]byte("-")), NewToken([]byte("+")))
	if err != nil {
		t.Fatalf("parse - +: %v", err)
	}
	if spec.Min != MinString || spec.Max != MaxString {
		t.Fatalf("sentinel bounds not the shared singletons")
	}
	if spec.MinEx || spec.MaxEx {
		t.Fatalf("sentinel bounds must be inclusive")
	}
}

func TestParseRangeErrors(t *testing.T) {
	bad := [][2]string{
		{"+x", "a"},
		{"-x", "a"},
		{"a", "+x"},
		{"a", "-more"},
		{"", "a"},
	}
	for _, tt := range bad {
		if _, err := ParseRange(NewToken([]byte(tt[0])), NewToken([]byte(tt[1]))); err == nil {
			t.Errorf("parse %q %q should fail", tt[0], tt[1])
		}
	}
	// integer-encoded bounds are rejected outright
	if _, err := ParseRange(TryEncode([]byte("15")), NewToken([]byte("a"))); err == nil {
		t.Errorf("integer-encoded min should fail")
	}
	if _, err := ParseRange(NewToken([]byte("a")), TryEncode([]byte("15"))); err == nil {
		t.Errorf("integer-encoded max should fail")
	}
}
