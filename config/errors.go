package config

import "errors"

// ErrInvalidConfig is returned from Load when the YAML document is
// malformed or fails struct-tag validation.
var ErrInvalidConfig = errors.New("config: invalid config")
