// Package grok matches semi-structured text, typically log lines, against
// composite patterns built from named, reusable definitions.
//
// A definition is a raw regular-expression fragment registered under a name.
// Patterns reference definitions through placeholders:
//
//	%{NAME}            expand the definition registered as NAME
//	%{NAME:alias}      expand NAME, expose the capture under "alias"
//	%{NAME=\d+}        register NAME inline, then expand it
//	%{NAME:alias=\d+}  inline registration with an alias
//
// Definitions may reference other definitions; expansion is recursive with a
// fixed depth bound, so cyclic references fail with [ErrRecursionTooDeep]
// instead of looping forever.
//
// # Basic Usage
//
//	g := grok.New()
//	g.InsertDefinition("USERNAME", `[a-zA-Z0-9._-]+`)
//
//	p, err := g.Compile("%{USERNAME:user} logged in", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if m, ok := p.Match("root logged in"); ok {
//	    user, _ := m.Get("user")
//	    fmt.Println(user) // "root"
//	}
//
// Use [NewComplete] to start from the bundled pattern sets in the
// [github.com/groklib/grok-go/pkg/grok/patterns] package instead of an
// empty registry.
//
// # Concurrency
//
// A [Grok] context is not safe for concurrent use: Compile mutates the
// registry (inline definitions become permanent entries). A compiled
// [Pattern] is immutable and safe for concurrent matching. A [Matches]
// value borrows the pattern and the matched text and should not outlive
// either.
package grok
