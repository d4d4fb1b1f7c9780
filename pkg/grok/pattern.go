package grok

import (
	"sort"

	"github.com/groklib/grok-go/internal/rx"
)

// Pattern is a compiled composite pattern: the engine's compiled regex plus
// the alias map from user-visible names to internal capture-group names.
//
// A Pattern is immutable and safe for concurrent use.
type Pattern struct {
	re      rx.Matcher
	expr    string
	aliases map[string]string
	groups  map[string]int // internal capture name -> submatch index
}

func newPattern(expr string, aliases map[string]string) (*Pattern, error) {
	re, err := rx.Compile(expr)
	if err != nil {
		return nil, &RegexCompileError{Expr: expr, Err: err}
	}

	groups := make(map[string]int)
	for i, name := range re.SubexpNames() {
		if name != "" {
			groups[name] = i
		}
	}

	return &Pattern{
		re:      re,
		expr:    expr,
		aliases: aliases,
		groups:  groups,
	}, nil
}

// Match runs the pattern against text and reports whether it matched.
// The returned Matches borrows text and the pattern; it should not outlive
// either.
func (p *Pattern) Match(text string) (*Matches, bool) {
	loc := p.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, false
	}
	return &Matches{pattern: p, text: text, loc: loc}, true
}

// MatchString reports whether the pattern matches text, without building
// a Matches value.
func (p *Pattern) MatchString(text string) bool {
	return p.re.MatchString(text)
}

// Parse matches text and returns a map from user-visible field names to the
// captured substrings. It returns nil when the pattern does not match.
// Fields whose groups did not participate in the match are left out.
func (p *Pattern) Parse(text string) map[string]string {
	m, ok := p.Match(text)
	if !ok {
		return nil
	}
	return m.Map()
}

// Names returns the user-visible field names of this pattern, sorted.
func (p *Pattern) Names() []string {
	names := make([]string, 0, len(p.aliases))
	for name := range p.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String returns the fully expanded regular expression.
func (p *Pattern) String() string {
	return p.expr
}
