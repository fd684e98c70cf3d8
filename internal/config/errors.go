package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a configuration value the tools cannot use.
var ErrInvalidConfig = errors.New("invalid configuration")

// ParseError describes a TOML syntax failure in a config file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
