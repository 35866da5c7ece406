package config

import "errors"

// ErrInvalidConfig is returned by Verify.
var ErrInvalidConfig = errors.New("config: invalid configuration")
