// Package config reads the tool's fixed-path YAML config file into Params and
// merges command-line overrides on top of it. Precedence: CLI flags > config
// file. Required keys that are absent are reported as MissingKeyError.
package config
