package grok

import (
	"errors"
	"fmt"
)

// ErrRecursionTooDeep is returned by Compile when pattern expansion has not
// reached a fixed point after the maximum number of passes. This is the
// only guard against cyclic definitions (e.g. A -> %{B}, B -> %{A}).
var ErrRecursionTooDeep = errors.New("pattern expansion exceeded the recursion limit")

// EmptyPatternError is returned by Compile when the fully expanded pattern
// is the empty string.
type EmptyPatternError struct {
	// Pattern is the original, unexpanded pattern.
	Pattern string
}

func (e *EmptyPatternError) Error() string {
	return fmt.Sprintf("pattern %q expanded into an empty regular expression", e.Pattern)
}

// DefinitionNotFoundError is returned by Compile when a placeholder
// references a name that is not present in the registry.
type DefinitionNotFoundError struct {
	// Name is the missing definition name.
	Name string
}

func (e *DefinitionNotFoundError) Error() string {
	return fmt.Sprintf("pattern definition %q not found in the registry", e.Name)
}

// RegexCompileError is returned when the underlying engine rejects the
// fully expanded expression.
type RegexCompileError struct {
	// Expr is the expression the engine rejected.
	Expr string
	// Err is the engine's error, if any.
	Err error
}

func (e *RegexCompileError) Error() string {
	return fmt.Sprintf("expression %q failed to compile in the regex engine: %v", e.Expr, e.Err)
}

// Unwrap returns the engine error, enabling errors.Is and errors.As.
func (e *RegexCompileError) Unwrap() error {
	return e.Err
}

// CompileError reports an internal invariant break during expansion.
// It should not occur in practice.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("unexpected failure during pattern compilation: %s", e.Message)
}
