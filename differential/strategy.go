package differential

import (
	"errors"
	"fmt"
	"strings"

	"github.com/on-the-ground/delta_uniform_go/boolfn"
	"github.com/on-the-ground/delta_uniform_go/gf2n"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy selects how Run searches for the uniformity.
type Strategy int

const (
	// Naive counts every (a, b) cell separately: O(2^(3n)) evaluations.
	Naive Strategy = iota
	// Lookup builds one histogram per row: O(2^(2n)) evaluations.
	Lookup
)

func (s Strategy) String() string {
	switch s {
	case Naive:
		return "naive"
	case Lookup:
		return "lookup"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "naive":
		return Naive, nil
	case "lookup":
		return Lookup, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

func (s Strategy) MarshalText() ([]byte, error) {
	if s != Naive && s != Lookup {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Run computes the differential uniformity with the given strategy.
//
// All rows of the inverse map have the same multiset of counts, so for
// Inverse (also behind a cache) only the row a = 1 is searched.
func (e *Engine[F]) Run(s Strategy) (uint64, error) {
	_, inverse := boolfn.RuleOf(e.f).(boolfn.Inverse)
	switch s {
	case Naive:
		if inverse {
			return e.RowMaxDelta(gf2n.Elem(1)), nil
		}
		return e.Uniformity(), nil
	case Lookup:
		if inverse {
			return e.RowMaxDeltaLookup(gf2n.Elem(1)), nil
		}
		return e.UniformityLookup(), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
	}
}
