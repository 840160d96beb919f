package prime

import (
	"fmt"
	"strings"
	"sync"
)

// Factor is one prime power in a factorization.
type Factor struct {
	Base     int `json:"base"`
	Exponent int `json:"exponent"`
}

// String renders the factor as "base^exponent".
func (f Factor) String() string {
	return fmt.Sprintf("%d^%d", f.Base, f.Exponent)
}

// IsPrime reports whether n is prime by trial division.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i <= n/i; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// Factorize returns the prime factorization of n in ascending base order.
// See the package documentation for the 0, 1 and negative cases.
func Factorize(n int) []Factor {
	switch {
	case n < 0:
		return nil
	case n == 0:
		return []Factor{{Base: 0, Exponent: 1}}
	case n == 1:
		return []Factor{{Base: 1, Exponent: 1}}
	}

	var factors []Factor

	twos := 0
	for n%2 == 0 {
		twos++
		n /= 2
	}
	if twos > 0 {
		factors = append(factors, Factor{Base: 2, Exponent: twos})
	}

	for i := 3; i <= n/i; i += 2 {
		exp := 0
		for n%i == 0 {
			exp++
			n /= i
		}
		if exp > 0 {
			factors = append(factors, Factor{Base: i, Exponent: exp})
		}
	}

	if n > 2 {
		factors = append(factors, Factor{Base: n, Exponent: 1})
	}
	return factors
}

// Product multiplies the factors back together.
func Product(factors []Factor) int {
	p := 1
	for _, f := range factors {
		for i := 0; i < f.Exponent; i++ {
			p *= f.Base
		}
	}
	return p
}

// Format renders the tooltip text for n, e.g. "12 = 2^2 × 3^1".
func Format(n int, factors []Factor) string {
	if len(factors) == 0 {
		return fmt.Sprintf("%d", n)
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%d = %s", n, strings.Join(parts, " × "))
}

// Oracle memoizes primality answers. The zero value is ready to use and
// safe for concurrent use.
type Oracle struct {
	mu    sync.RWMutex
	cache map[int]bool
}

// NewOracle returns an empty oracle.
func NewOracle() *Oracle {
	return &Oracle{cache: make(map[int]bool)}
}

// IsPrime answers from the memo, computing and storing on a miss.
func (o *Oracle) IsPrime(n int) bool {
	o.mu.RLock()
	v, ok := o.cache[n]
	o.mu.RUnlock()
	if ok {
		return v
	}

	v = IsPrime(n)
	o.mu.Lock()
	if o.cache == nil {
		o.cache = make(map[int]bool)
	}
	o.cache[n] = v
	o.mu.Unlock()
	return v
}

// Precompute fills the memo for every value in [start, end].
func (o *Oracle) Precompute(start, end int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cache == nil {
		o.cache = make(map[int]bool, end-start+1)
	}
	for i := start; i <= end; i++ {
		if _, ok := o.cache[i]; !ok {
			o.cache[i] = IsPrime(i)
		}
	}
}

// Len reports how many values are memoized.
func (o *Oracle) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.cache)
}
