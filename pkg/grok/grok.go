package grok

import (
	"fmt"
	"strings"

	"github.com/groklib/grok-go/pkg/grok/patterns"
)

// maxRecursion bounds the number of expansion passes Compile performs.
// Each pass peels one layer of placeholders; cyclic definitions exhaust
// the budget and fail with ErrRecursionTooDeep.
const maxRecursion = 1024

// Grok holds the definition registry and compiles patterns against it.
//
// A Grok value is not safe for concurrent use: Compile may insert inline
// definitions into the registry. Compiled Patterns are independent of the
// Grok that produced them and are safe to share.
type Grok struct {
	definitions map[string]string
}

// New returns a Grok with an empty registry.
func New() *Grok {
	return &Grok{definitions: make(map[string]string)}
}

// NewWithPatterns returns a Grok seeded with the given definition sets,
// applied in order (later sets overwrite earlier entries).
func NewWithPatterns(sets ...map[string]string) *Grok {
	g := New()
	for _, set := range sets {
		g.AddPatterns(set)
	}
	return g
}

// NewComplete returns a Grok seeded with all bundled pattern sets from the
// patterns package, plus any additional sets given.
func NewComplete(additional ...map[string]string) *Grok {
	sets := append([]map[string]string{
		patterns.Core,
		patterns.Network,
		patterns.Time,
		patterns.Log,
	}, additional...)
	return NewWithPatterns(sets...)
}

// InsertDefinition registers a regex fragment under the given name,
// overwriting any prior entry. Inserting the same pair twice is a no-op.
func (g *Grok) InsertDefinition(name, fragment string) {
	g.definitions[name] = fragment
}

// AddPatterns registers every entry of the given set, overwriting prior
// entries under the same names.
func (g *Grok) AddPatterns(set map[string]string) {
	for name, fragment := range set {
		g.definitions[name] = fragment
	}
}

// Compile expands the pattern against the registry and compiles the result
// in the regex engine.
//
// Every placeholder occurrence is rewritten into a uniquely numbered named
// capture group. With namedCapturesOnly set, occurrences without an alias
// become non-capturing groups instead, so only aliased fields show up in
// match results.
//
// Inline definitions (%{NAME=def}) become permanent registry entries.
// When two placeholders share a user-visible name, the last occurrence
// wins; earlier captures are unreachable through Matches.Get.
func (g *Grok) Compile(pattern string, namedCapturesOnly bool) (*Pattern, error) {
	expanded := pattern
	aliases := make(map[string]string)
	index := 0

	for left := maxRecursion; ; left-- {
		if left <= 0 {
			return nil, ErrRecursionTooDeep
		}

		ph, ok := findPlaceholder(expanded)
		if !ok {
			break
		}
		if ph.defName == "" {
			return nil, &CompileError{Message: "placeholder carries no definition name"}
		}

		key := ph.name
		if ph.hasDef {
			g.InsertDefinition(ph.defName, ph.definition)
			key = key + "=" + ph.definition
		}

		// The same textual placeholder can occur more than once, and each
		// occurrence needs its own group index or the engine rejects the
		// expression for duplicate group names. Count first, then replace
		// one occurrence at a time.
		token := "%{" + key + "}"
		for n := strings.Count(expanded, token); n > 0; n-- {
			body, found := g.definitions[ph.defName]
			if !found {
				return nil, &DefinitionNotFoundError{Name: ph.defName}
			}

			var replacement string
			if namedCapturesOnly && !ph.hasAlias {
				replacement = "(?:" + body + ")"
			} else {
				replacement = fmt.Sprintf("(?P<name%d>%s)", index, body)
			}

			userKey := key
			if ph.hasAlias {
				userKey = ph.alias
			}
			aliases[userKey] = fmt.Sprintf("name%d", index)

			expanded = strings.Replace(expanded, token, replacement, 1)
			index++
		}
	}

	if expanded == "" {
		return nil, &EmptyPatternError{Pattern: pattern}
	}
	return newPattern(expanded, aliases)
}
