package grok

// Matches is a view over one set of captures produced by Pattern.Match.
// It resolves user-visible names through the pattern's alias map.
type Matches struct {
	pattern *Pattern
	text    string
	loc     []int // submatch index pairs from the engine
}

// Get returns the substring captured under the given user-visible name.
// The second return is false when the name is unknown or its capture group
// did not participate in the match.
func (m *Matches) Get(name string) (string, bool) {
	internal, ok := m.pattern.aliases[name]
	if !ok {
		return "", false
	}
	i, ok := m.pattern.groups[internal]
	if !ok {
		// Suppressed capture: the alias map still carries the entry but
		// the group was rewritten as non-capturing.
		return "", false
	}
	lo, hi := m.loc[2*i], m.loc[2*i+1]
	if lo < 0 {
		return "", false
	}
	return m.text[lo:hi], true
}

// Len returns the number of capture groups in the pattern, excluding the
// implicit whole-match group.
func (m *Matches) Len() int {
	return len(m.loc)/2 - 1
}

// IsEmpty reports whether the pattern has no capture groups.
func (m *Matches) IsEmpty() bool {
	return m.Len() == 0
}

// Map returns the captured fields as a map from user-visible name to
// substring. Names whose groups did not participate are left out.
func (m *Matches) Map() map[string]string {
	fields := make(map[string]string, len(m.pattern.aliases))
	for name := range m.pattern.aliases {
		if v, ok := m.Get(name); ok {
			fields[name] = v
		}
	}
	return fields
}
