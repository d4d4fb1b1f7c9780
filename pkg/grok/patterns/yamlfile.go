package patterns

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SupportedVersion is the currently supported YAML set file format version.
const SupportedVersion = 1

// File represents the structure of a YAML pattern set file.
//
// Example:
//
//	version: 1
//	definitions:
//	  NGINXERR: '%{TIMESTAMP_ISO8601} \[%{LOGLEVEL:level}\] %{GREEDYDATA:msg}'
//	  REQID: '[0-9a-f]{16}'
type File struct {
	// Version is the file format version. Currently only version 1 is
	// supported.
	Version int `yaml:"version"`

	// Definitions maps definition names to regex fragments.
	Definitions map[string]string `yaml:"definitions"`
}

// LoadYAML reads and parses a YAML pattern set file.
func LoadYAML(path string) (map[string]string, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return LoadYAMLBytes(data)
}

// LoadYAMLBytes parses a YAML pattern set file from a byte slice.
func LoadYAMLBytes(data []byte) (map[string]string, error) {
	if len(data) == 0 {
		return nil, errors.New("pattern file is empty")
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("pattern file too large: %d bytes (max %d)", len(data), MaxFileSize)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f.Definitions, nil
}

// Validate performs schema-level validation of the set file: supported
// version, at least one definition, valid names, and fragment limits.
func (f *File) Validate() error {
	if f.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", f.Version, SupportedVersion),
		}
	}
	if len(f.Definitions) == 0 {
		return &ValidationError{
			Field:   "definitions",
			Message: "at least one definition is required",
		}
	}
	if len(f.Definitions) > MaxDefinitionCount {
		return &ValidationError{
			Field:   "definitions",
			Message: fmt.Sprintf("too many definitions (%d), maximum allowed is %d", len(f.Definitions), MaxDefinitionCount),
		}
	}
	for name, fragment := range f.Definitions {
		if err := validateDefinition(0, name, fragment); err != nil {
			return err
		}
	}
	return nil
}
