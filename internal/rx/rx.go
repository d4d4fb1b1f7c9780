// Package rx wraps the regular expression engine behind a small interface
// so the matcher core does not depend on a concrete implementation.
//
// The engine is RE2 (via wasilibs/go-re2), which guarantees linear-time
// matching. Compiled patterns built from user-supplied fragments can
// therefore be matched against untrusted input without ReDoS concerns.
package rx

import (
	re2 "github.com/wasilibs/go-re2"
)

// Matcher is the subset of the engine API the matcher core relies on:
// compile-time group introspection and leftmost submatch capture.
type Matcher interface {
	MatchString(s string) bool
	FindStringSubmatchIndex(s string) []int
	SubexpNames() []string
	String() string
}

// Compile compiles the expression in the underlying engine.
func Compile(expr string) (Matcher, error) {
	return re2.Compile(expr)
}

// MustCompile is like Compile but panics on error.
// Intended for package-level expressions known to be valid.
func MustCompile(expr string) Matcher {
	return re2.MustCompile(expr)
}
