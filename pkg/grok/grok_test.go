package grok_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groklib/grok-go/pkg/grok"
	"github.com/groklib/grok-go/pkg/grok/patterns"
)

func insertMACDefinitions(g *grok.Grok) {
	g.InsertDefinition("MAC", `(?:%{CISCOMAC}|%{WINDOWSMAC}|%{COMMONMAC})`)
	g.InsertDefinition("CISCOMAC", `(?:(?:[A-Fa-f0-9]{4}\.){2}[A-Fa-f0-9]{4})`)
	g.InsertDefinition("WINDOWSMAC", `(?:(?:[A-Fa-f0-9]{2}-){5}[A-Fa-f0-9]{2})`)
	g.InsertDefinition("COMMONMAC", `(?:(?:[A-Fa-f0-9]{2}:){5}[A-Fa-f0-9]{2})`)
}

func TestCompile_SimplePattern(t *testing.T) {
	g := grok.New()
	g.InsertDefinition("USERNAME", `[a-zA-Z0-9._-]+`)

	p, err := g.Compile("%{USERNAME}", false)
	require.NoError(t, err)

	m, ok := p.Match("root")
	require.True(t, ok)
	v, ok := m.Get("USERNAME")
	require.True(t, ok)
	assert.Equal(t, "root", v)
	assert.Equal(t, 1, m.Len())
	assert.False(t, m.IsEmpty())

	m, ok = p.Match("john doe")
	require.True(t, ok)
	v, ok = m.Get("USERNAME")
	require.True(t, ok)
	assert.Equal(t, "john", v)
	assert.Equal(t, 1, m.Len())
}

func TestCompile_AliasedPattern(t *testing.T) {
	g := grok.New()
	g.InsertDefinition("USERNAME", `[a-zA-Z0-9._-]+`)

	p, err := g.Compile("%{USERNAME:usr}", false)
	require.NoError(t, err)

	m, ok := p.Match("root")
	require.True(t, ok)
	v, ok := m.Get("usr")
	require.True(t, ok)
	assert.Equal(t, "root", v)
	assert.Equal(t, 1, m.Len())

	// The definition name itself is not a field when an alias is given.
	_, ok = m.Get("USERNAME")
	assert.False(t, ok)
}

func TestCompile_NestedDefinition(t *testing.T) {
	g := grok.New()
	g.InsertDefinition("USERNAME", `[a-zA-Z0-9._-]+`)
	g.InsertDefinition("USER", `%{USERNAME}`)

	p, err := g.Compile("%{USER}", false)
	require.NoError(t, err)

	m, ok := p.Match("root")
	require.True(t, ok)
	v, ok := m.Get("USER")
	require.True(t, ok)
	assert.Equal(t, "root", v)

	p, err = g.Compile("%{USER:usr}", false)
	require.NoError(t, err)

	m, ok = p.Match("john doe")
	require.True(t, ok)
	v, ok = m.Get("usr")
	require.True(t, ok)
	assert.Equal(t, "john", v)
}

func TestCompile_CompositeAlternatives(t *testing.T) {
	g := grok.New()
	insertMACDefinitions(g)

	p, err := g.Compile("%{MAC}", false)
	require.NoError(t, err)

	m, ok := p.Match("5E:FF:56:A2:AF:15")
	require.True(t, ok)
	v, ok := m.Get("MAC")
	require.True(t, ok)
	assert.Equal(t, "5E:FF:56:A2:AF:15", v)
	// Outer group plus the three expanded alternatives.
	assert.Equal(t, 4, m.Len())

	m, ok = p.Match("hello! 5E:FF:56:A2:AF:15 what?")
	require.True(t, ok)
	v, _ = m.Get("MAC")
	assert.Equal(t, "5E:FF:56:A2:AF:15", v)

	_, ok = p.Match("5E:FF")
	assert.False(t, ok)
}

func TestCompile_NamedCapturesOnly(t *testing.T) {
	g := grok.New()
	insertMACDefinitions(g)

	p, err := g.Compile("%{MAC:macaddr}", true)
	require.NoError(t, err)

	m, ok := p.Match("5E:FF:56:A2:AF:15")
	require.True(t, ok)
	v, ok := m.Get("macaddr")
	require.True(t, ok)
	assert.Equal(t, "5E:FF:56:A2:AF:15", v)
	assert.Equal(t, 1, m.Len())

	// The suppressed inner placeholders keep their alias-map entries but
	// resolve to groups that no longer exist.
	_, ok = m.Get("CISCOMAC")
	assert.False(t, ok)

	_, ok = p.Match("5E:FF")
	assert.False(t, ok)
}

func TestCompile_MultiplePlaceholders(t *testing.T) {
	g := grok.New()
	g.InsertDefinition("YEAR", `(\d\d){1,2}`)
	g.InsertDefinition("MONTH", `\b(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\b`)
	g.InsertDefinition("DAY", `(?:Mon(?:day)?|Tue(?:sday)?|Wed(?:nesday)?|Thu(?:rsday)?|Fri(?:day)?|Sat(?:urday)?|Sun(?:day)?)`)

	p, err := g.Compile("%{DAY} %{MONTH} %{YEAR}", false)
	require.NoError(t, err)

	m, ok := p.Match("Monday March 2012")
	require.True(t, ok)

	day, ok := m.Get("DAY")
	require.True(t, ok)
	assert.Equal(t, "Monday", day)
	month, ok := m.Get("MONTH")
	require.True(t, ok)
	assert.Equal(t, "March", month)
	year, ok := m.Get("YEAR")
	require.True(t, ok)
	assert.Equal(t, "2012", year)

	_, ok = m.Get("unknown")
	assert.False(t, ok)
}

func TestCompile_RepeatedPlaceholder(t *testing.T) {
	g := grok.New()
	g.InsertDefinition("NUM", `\d+`)

	p, err := g.Compile("%{NUM} %{NUM}", false)
	require.NoError(t, err)

	m, ok := p.Match("12 34")
	require.True(t, ok)
	assert.Equal(t, 2, m.Len())

	// Both occurrences share the user-visible key; the last binding wins.
	v, ok := m.Get("NUM")
	require.True(t, ok)
	assert.Equal(t, "34", v)
}

func TestCompile_InlineDefinition(t *testing.T) {
	g := grok.New()

	p, err := g.Compile(`%{SEAT=\d+}`, false)
	require.NoError(t, err)

	m, ok := p.Match("seat 42")
	require.True(t, ok)
	v, ok := m.Get(`SEAT=\d+`)
	require.True(t, ok)
	assert.Equal(t, "42", v)

	// The inline definition is a permanent registry entry.
	p, err = g.Compile("%{SEAT}", false)
	require.NoError(t, err)
	m, ok = p.Match("seat 42")
	require.True(t, ok)
	v, ok = m.Get("SEAT")
	require.True(t, ok)
	assert.Equal(t, "42", v)
}

func TestCompile_InlineDefinitionWithAlias(t *testing.T) {
	g := grok.New()

	p, err := g.Compile(`won %{AMOUNT:amount=\d+} chips`, false)
	require.NoError(t, err)

	m, ok := p.Match("player won 500 chips")
	require.True(t, ok)
	v, ok := m.Get("amount")
	require.True(t, ok)
	assert.Equal(t, "500", v)
}

func TestCompile_InlineDefinitionOverwrites(t *testing.T) {
	g := grok.New()
	g.InsertDefinition("ID", `[a-z]+`)

	_, err := g.Compile(`%{ID=\d+}`, false)
	require.NoError(t, err)

	p, err := g.Compile("%{ID}", false)
	require.NoError(t, err)
	assert.True(t, p.MatchString("123"))
	assert.False(t, p.MatchString("abc"))
}

func TestCompile_RecursionLimit(t *testing.T) {
	g := grok.New()
	g.InsertDefinition("A", "%{B}")
	g.InsertDefinition("B", "%{A}")

	_, err := g.Compile("%{A}", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, grok.ErrRecursionTooDeep)
}

func TestCompile_DefinitionNotFound(t *testing.T) {
	g := grok.New()

	_, err := g.Compile("%{UNKNOWN}", false)
	require.Error(t, err)

	var notFound *grok.DefinitionNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "UNKNOWN", notFound.Name)
}

func TestCompile_EmptyPattern(t *testing.T) {
	g := grok.New()

	_, err := g.Compile("", false)
	require.Error(t, err)

	var empty *grok.EmptyPatternError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "", empty.Pattern)
}

func TestCompile_EngineRejectsExpansion(t *testing.T) {
	g := grok.New()
	g.InsertDefinition("BROKEN", `[`)

	_, err := g.Compile("%{BROKEN}", false)
	require.Error(t, err)

	var rce *grok.RegexCompileError
	require.True(t, errors.As(err, &rce))
	assert.Contains(t, rce.Expr, "[")
}

func TestCompile_SubstitutionCompleteness(t *testing.T) {
	g := grok.NewComplete()

	p, err := g.Compile("%{COMBINEDAPACHELOG}", false)
	require.NoError(t, err)
	assert.NotContains(t, p.String(), "%{")
}

func TestCompile_CaptureDistinctness(t *testing.T) {
	g := grok.New()
	g.InsertDefinition("NUM", `\d+`)

	p, err := g.Compile("%{NUM} %{NUM} %{NUM:third}", false)
	require.NoError(t, err)

	groupName := regexp.MustCompile(`\(\?P<(name\d+)>`)
	seen := make(map[string]bool)
	for _, m := range groupName.FindAllStringSubmatch(p.String(), -1) {
		assert.False(t, seen[m[1]], "duplicate capture group %s", m[1])
		seen[m[1]] = true
	}
	assert.Len(t, seen, 3)
}

func TestInsertDefinition_Idempotent(t *testing.T) {
	g := grok.New()
	g.InsertDefinition("WORD", `\w+`)
	g.InsertDefinition("WORD", `\w+`)

	p, err := g.Compile("%{WORD}", false)
	require.NoError(t, err)

	m, ok := p.Match("hello")
	require.True(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestNewWithPatterns(t *testing.T) {
	g := grok.NewWithPatterns(patterns.Core, patterns.Network)

	p, err := g.Compile("%{IPV4:addr}", false)
	require.NoError(t, err)

	fields := p.Parse("10.0.0.1")
	require.NotNil(t, fields)
	assert.Equal(t, "10.0.0.1", fields["addr"])
}

func TestBundledSetsCompile(t *testing.T) {
	sets := map[string]map[string]string{
		"Core":    patterns.Core,
		"Network": patterns.Network,
		"Time":    patterns.Time,
		"Log":     patterns.Log,
	}

	for setName, set := range sets {
		t.Run(setName, func(t *testing.T) {
			g := grok.NewComplete()
			for name := range set {
				_, err := g.Compile("%{"+name+"}", true)
				assert.NoError(t, err, "bundled pattern %s", name)
			}
		})
	}
}

func TestCompile_BundledSyslogLine(t *testing.T) {
	g := grok.NewComplete()

	p, err := g.Compile("%{SYSLOGBASE} %{GREEDYDATA:message}", false)
	require.NoError(t, err)

	fields := p.Parse("Mar  1 10:05:33 web01 sshd[4321]: Accepted publickey for deploy")
	require.NotNil(t, fields)
	assert.Equal(t, "web01", fields["logsource"])
	assert.Equal(t, "sshd", fields["program"])
	assert.Equal(t, "4321", fields["pid"])
	assert.Equal(t, "Accepted publickey for deploy", fields["message"])
}
