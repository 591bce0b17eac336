package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read by Load, relative to the working directory.
const DefaultPath = "config_file"

const (
	sectionModule1 = "module_1"
	sectionModule2 = "module_2"
	sectionLogging = "logging"
)

var (
	// ErrMissingKey is matched by every MissingKeyError.
	ErrMissingKey = errors.New("missing config key")
	// ErrInvalidNumber is returned when a numeric config value cannot be parsed.
	ErrInvalidNumber = errors.New("invalid numeric config value")
)

// MissingKeyError reports a section or key absent from the config file.
// Key is empty when the whole section is missing.
type MissingKeyError struct {
	Section string
	Key     string
}

func (e *MissingKeyError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: section [%s]", ErrMissingKey, e.Section)
	}
	return fmt.Sprintf("%s: [%s] %s", ErrMissingKey, e.Section, e.Key)
}

// Is reports whether target is ErrMissingKey.
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// Params holds the parameters read from the config file.
// LoggerCount and LoggerSize stay raw; the logging package coerces them.
type Params struct {
	Config1         string
	Config2         string
	VarDefaultValue *int

	LoggerFile  string
	LoggerCount string
	LoggerSize  string
	// LoggerLevel is nil when no level was configured at all.
	LoggerLevel *string
}

// Overrides holds command-line values that take precedence over the config file.
// A nil or empty field means the flag was not given.
type Overrides struct {
	LogOutput *string
	LogLevel  *string
}

// sections mirrors the file layout: section name -> key -> raw value.
type sections map[string]map[string]string

// Load reads DefaultPath.
func Load() (Params, error) {
	return LoadFile(DefaultPath)
}

// LoadFile reads and parses the config file at path.
func LoadFile(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("read config file: %w", err)
	}

	params, err := Parse(data)
	if err != nil {
		return Params{}, fmt.Errorf("load %s: %w", path, err)
	}
	return params, nil
}

// Parse extracts Params from raw config file contents.
func Parse(data []byte) (Params, error) {
	var raw sections
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Params{}, fmt.Errorf("parse YAML: %w", err)
	}

	var (
		params Params
		err    error
	)

	if params.Config1, err = raw.get(sectionModule1, "config_1"); err != nil {
		return Params{}, err
	}

	if params.Config2, err = raw.get(sectionModule2, "config_2"); err != nil {
		return Params{}, err
	}
	defaultValue, err := raw.get(sectionModule2, "var_default_value")
	if err != nil {
		return Params{}, err
	}
	if defaultValue != "" {
		value, err := strconv.Atoi(defaultValue)
		if err != nil {
			return Params{}, fmt.Errorf("%w: [%s] var_default_value: %v", ErrInvalidNumber, sectionModule2, err)
		}
		params.VarDefaultValue = &value
	}

	if params.LoggerFile, err = raw.get(sectionLogging, "log_file"); err != nil {
		return Params{}, err
	}
	if params.LoggerCount, err = raw.get(sectionLogging, "log_file_count"); err != nil {
		return Params{}, err
	}
	if params.LoggerSize, err = raw.get(sectionLogging, "log_file_size"); err != nil {
		return Params{}, err
	}
	if level, ok := raw[sectionLogging]["log_level"]; ok {
		params.LoggerLevel = &level
	}

	return params, nil
}

// Apply returns params with the command-line overrides applied.
func Apply(params Params, overrides *Overrides) Params {
	if overrides == nil {
		return params
	}

	if overrides.LogOutput != nil && *overrides.LogOutput != "" {
		params.LoggerFile = *overrides.LogOutput
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		level := *overrides.LogLevel
		params.LoggerLevel = &level
	}

	return params
}

func (s sections) get(section, key string) (string, error) {
	values, ok := s[section]
	if !ok {
		return "", &MissingKeyError{Section: section}
	}
	value, ok := values[key]
	if !ok {
		return "", &MissingKeyError{Section: section, Key: key}
	}
	return value, nil
}
