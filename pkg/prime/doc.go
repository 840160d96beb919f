// Package prime decides primality and factors integers into prime powers.
//
// The functions are pure; [Oracle] adds a memo over [IsPrime] so that a
// range rendered over and over (every frame of the explorer, every request
// of the server) is only trial-divided once.
//
// # Conventions
//
// [IsPrime] reports true only for n >= 2 with no divisor up to sqrt(n). In
// particular 1 is not prime.
//
// [Factorize] keeps two sentinel answers that are not real factorizations:
//
//	Factorize(0) // [{0 1}]
//	Factorize(1) // [{1 1}]
//
// Negative inputs have no factorization and yield nil.
package prime
