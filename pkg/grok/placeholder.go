package grok

import (
	"github.com/groklib/grok-go/internal/rx"
)

// placeholderExpr recognizes one %{...} placeholder occurrence:
//
//	%{NAME}  %{NAME:alias}  %{NAME=def}  %{NAME:alias=def}
//
// The "name" group spans NAME plus the optional :alias part; it is the
// textual key used for replacement. The inline definition is kept out of
// the name group and appended to the key by the expander when present.
const placeholderExpr = `%\{(?P<name>(?P<pattern>\w+)(?::(?P<alias>[\w:;/\s\.]+))?)(?:=(?P<definition>(?:[^{}]+|\.+)+))?\}`

var (
	placeholderRegex = rx.MustCompile(placeholderExpr)

	// Group indexes within placeholderExpr, resolved once at init.
	phNameIdx, phPatternIdx, phAliasIdx, phDefinitionIdx = placeholderGroups()
)

func placeholderGroups() (name, pattern, alias, definition int) {
	for i, n := range placeholderRegex.SubexpNames() {
		switch n {
		case "name":
			name = i
		case "pattern":
			pattern = i
		case "alias":
			alias = i
		case "definition":
			definition = i
		}
	}
	return
}

// placeholder is one parsed %{...} occurrence.
type placeholder struct {
	name       string // NAME or NAME:alias, as written
	defName    string // NAME alone: the registry key
	alias      string
	hasAlias   bool
	definition string
	hasDef     bool
}

// findPlaceholder returns the leftmost placeholder in s, if any.
func findPlaceholder(s string) (placeholder, bool) {
	loc := placeholderRegex.FindStringSubmatchIndex(s)
	if loc == nil {
		return placeholder{}, false
	}

	group := func(i int) (string, bool) {
		lo, hi := loc[2*i], loc[2*i+1]
		if lo < 0 {
			return "", false
		}
		return s[lo:hi], true
	}

	var ph placeholder
	ph.name, _ = group(phNameIdx)
	ph.defName, _ = group(phPatternIdx)
	ph.alias, ph.hasAlias = group(phAliasIdx)
	ph.definition, ph.hasDef = group(phDefinitionIdx)
	return ph, true
}
