package tree

import (
	"strings"

	"github.com/matzehuels/primetree/pkg/errors"
)

// RootPolicy maps a requested start value to the actual root value.
type RootPolicy int

const (
	// Zero keeps the start value as the root.
	Zero RootPolicy = iota
	// Odd forces the root to the first odd value >= start.
	Odd
	// Even forces the root to the first even value >= start.
	Even
)

// Policies lists every valid policy in display order.
var Policies = []RootPolicy{Zero, Odd, Even}

func (p RootPolicy) String() string {
	switch p {
	case Zero:
		return "zero"
	case Odd:
		return "odd"
	case Even:
		return "even"
	default:
		return "unknown"
	}
}

// Valid reports whether p is one of the declared policies.
func (p RootPolicy) Valid() bool {
	return p >= Zero && p <= Even
}

// ParsePolicy parses a policy name, ignoring case and surrounding space.
func ParsePolicy(s string) (RootPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zero":
		return Zero, nil
	case "odd":
		return Odd, nil
	case "even":
		return Even, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidPolicy, "unknown root policy %q (must be one of: zero, odd, even)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p RootPolicy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidPolicy, "unknown root policy %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so policies can be
// read straight from config files and query strings.
func (p *RootPolicy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ComputeRoot returns the root value for start under policy.
func ComputeRoot(start int, policy RootPolicy) (int, error) {
	even := start%2 == 0
	switch policy {
	case Zero:
		return start, nil
	case Odd:
		if !even {
			return start, nil
		}
	case Even:
		if even {
			return start, nil
		}
	default:
		return 0, errors.New(errors.ErrCodeInvalidPolicy, "unknown root policy %d", int(policy))
	}
	if start == maxInt {
		return 0, errors.New(errors.ErrCodeInvalidRange, "no %s root at or after %d", policy, start)
	}
	return start + 1, nil
}

const maxInt = int(^uint(0) >> 1)
