package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Match is one matched input line with its extracted fields.
type Match struct {
	// Line is the raw input line; populated only with --raw.
	Line string `json:"line,omitempty"`

	// Fields maps user-visible field names to captured substrings.
	Fields map[string]string `json:"fields"`
}

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

// OutputMatch writes a match in the specified format to the writer.
func OutputMatch(format string, m Match, out io.Writer) error {
	switch format {
	case "jsonl":
		return OutputJSON(m, out)
	case "pretty":
		return OutputPretty(m, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputJSON writes a match as JSON Lines format.
func OutputJSON(m Match, out io.Writer) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// OutputPretty writes a match as sorted key=value pairs.
func OutputPretty(m Match, out io.Writer) error {
	var err error
	if m.Line != "" {
		_, err = fmt.Fprintf(out, "%s\n  %s\n", m.Line, formatFields(m.Fields))
	} else {
		_, err = fmt.Fprintln(out, formatFields(m.Fields))
	}
	return err
}

// formatFields formats a field map as sorted key=value pairs.
// Values are quoted if they contain spaces, equals signs, quotes, or
// control characters.
func formatFields(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(fields))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", quoteIfNeeded(k), quoteIfNeeded(fields[k])))
	}
	return strings.Join(parts, " ")
}

// quoteIfNeeded quotes a value if it contains special characters or control
// characters. Returns the value unchanged if no quoting is needed.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}

	needsQuote := false
	for _, c := range v {
		if c == ' ' || c == '=' || c == '"' || c == '\\' || c < 0x20 || c == 0x7F {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return v
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range v {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c == 0x7F:
			sb.WriteString(fmt.Sprintf(`\x%02x`, c))
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
