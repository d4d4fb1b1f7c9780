package patterns

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

const (
	// MaxFileSize is the maximum allowed size for a pattern file (1MB).
	// Keeps a hostile or corrupt file from exhausting memory.
	MaxFileSize = 1 * 1024 * 1024

	// MaxFragmentLength is the maximum allowed length of a single regex
	// fragment. The bundled IPV6 fragment is the yardstick; anything far
	// beyond it is almost certainly a mistake.
	MaxFragmentLength = 4096

	// MaxDefinitionCount is the maximum number of definitions per file.
	MaxDefinitionCount = 1000
)

// sanitizePathError strips the path from os.PathError so error messages do
// not leak file system layout.
func sanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

// Load reads a pattern file and returns its definitions.
//
// Files ending in .yaml or .yml are parsed as YAML set files (see File).
// Everything else is parsed as the line-oriented format: one definition per
// line as NAME followed by whitespace and the regex fragment; blank lines
// and lines starting with '#' are ignored.
func Load(path string) (map[string]string, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAMLBytes(data)
	default:
		return LoadBytes(data)
	}
}

// LoadBytes parses the line-oriented pattern format.
func LoadBytes(data []byte) (map[string]string, error) {
	if len(data) == 0 {
		return nil, errors.New("pattern file is empty")
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("pattern file too large: %d bytes (max %d)", len(data), MaxFileSize)
	}

	defs := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), MaxFileSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sep := strings.IndexFunc(line, unicode.IsSpace)
		if sep < 0 {
			return nil, &DefinitionError{
				Line:    lineNo,
				Name:    line,
				Message: "missing regex fragment (expected NAME<whitespace>FRAGMENT)",
			}
		}
		name := line[:sep]
		fragment := strings.TrimSpace(line[sep:])
		if err := validateDefinition(lineNo, name, fragment); err != nil {
			return nil, err
		}
		if len(defs) >= MaxDefinitionCount {
			return nil, &ValidationError{
				Field:   "definitions",
				Message: fmt.Sprintf("too many definitions, maximum allowed is %d", MaxDefinitionCount),
			}
		}
		// Later entries overwrite earlier ones, same as the registry.
		defs[name] = fragment
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan pattern file: %w", err)
	}

	if len(defs) == 0 {
		return nil, errors.New("pattern file contains no definitions")
	}
	return defs, nil
}

// LoadDir loads every regular file in the directory, merging the results.
// Entries from later files (lexical order) overwrite earlier ones.
// Dotfiles are skipped.
func LoadDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern directory: %w", sanitizePathError(err))
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, errors.New("pattern directory contains no files")
	}

	merged := make(map[string]string)
	for _, name := range names {
		defs, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for k, v := range defs {
			merged[k] = v
		}
	}
	return merged, nil
}

// readFile opens and reads a pattern file with the size and file-type
// checks applied to the file descriptor, not the path, to avoid TOCTOU.
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pattern file: %w", sanitizePathError(err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat pattern file: %w", sanitizePathError(err))
	}
	if !info.Mode().IsRegular() {
		return nil, errors.New("pattern file must be a regular file")
	}
	if info.Size() == 0 {
		return nil, errors.New("pattern file is empty")
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("pattern file too large: %d bytes (max %d)", info.Size(), MaxFileSize)
	}

	// Read one byte past the limit to detect a file growing under us.
	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", sanitizePathError(err))
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("pattern file too large: %d bytes (max %d)", len(data), MaxFileSize)
	}
	return data, nil
}

// validateDefinition checks one (name, fragment) entry.
// Names follow the placeholder NAME class: letters, digits, underscore.
func validateDefinition(line int, name, fragment string) error {
	if !validName(name) {
		return &DefinitionError{
			Line:    line,
			Name:    name,
			Message: "invalid name (only letters, digits, and underscore are allowed)",
		}
	}
	if fragment == "" {
		return &DefinitionError{Line: line, Name: name, Message: "fragment is empty"}
	}
	if len(fragment) > MaxFragmentLength {
		return &DefinitionError{
			Line:    line,
			Name:    name,
			Message: fmt.Sprintf("fragment too long: %d bytes (max %d)", len(fragment), MaxFragmentLength),
		}
	}
	return nil
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
