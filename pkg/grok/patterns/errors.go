package patterns

import "fmt"

// ValidationError represents a file-level validation error, such as an
// unsupported version or an empty file.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// DefinitionError represents an error in a single definition entry.
type DefinitionError struct {
	Line    int    // 1-based line number; 0 when not applicable (YAML files)
	Name    string // definition name, may be empty if the name is the problem
	Message string
}

func (e *DefinitionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("definition %q (line %d): %s", e.Name, e.Line, e.Message)
	}
	return fmt.Sprintf("definition %q: %s", e.Name, e.Message)
}
