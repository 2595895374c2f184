package sortedlist

import "errors"

// ErrInvalidRange is returned when a range bound token cannot be parsed.
var ErrInvalidRange = errors.New("min or max is not valid")

// RangeSpec describes a score interval. Min and Max may be the shared
// sentinels for unbounded ends; MinEx/MaxEx mark exclusive bounds.
type RangeSpec struct {
	Min   *Token
	Max   *Token
	MinEx bool
	MaxEx bool
}

// parseRangeToken interprets a single bound:
//
//	(foo  foo, open
//	[foo  foo, closed
//	-     the minimum string possible
//	+     the maximum string possible
//	foo   foo, closed
//
// The sentinel forms must be exactly one byte long.
func parseRangeToken(item *Token) (*Token, bool, error) {
	b := item.Raw
	if len(b) == 0 {
		return nil, false, ErrInvalidRange
	}
	switch b[0] {
	case '+':
		if len(b) != 1 {
			return nil, false, ErrInvalidRange
		}
		return MaxString, false, nil
	case '-':
		if len(b) != 1 {
			return nil, false, ErrInvalidRange
		}
		return MinString, false, nil
	case '(':
		return NewToken(b[1:]), true, nil
	case '[':
		return NewToken(b[1:]), false, nil
	default:
		return NewToken(b), false, nil
	}
}

// ParseRange builds a RangeSpec from the two bound tokens. Both bounds
// must be string encoded, the sentinel bytes have no meaning on the
// integer fast path.
func ParseRange(min *Token, max *Token) (*RangeSpec, error) {
	if min.IsInt() || max.IsInt() {
		return nil, ErrInvalidRange
	}
	spec := &RangeSpec{}
	var err error
	if spec.Min, spec.MinEx, err = parseRangeToken(min); err != nil {
		return nil, err
	}
	if spec.Max, spec.MaxEx, err = parseRangeToken(max); err != nil {
		return nil, err
	}
	return spec, nil
}
