package logger

import "errors"

// ErrInvalidConfig is returned by New for a configuration it cannot honour.
var ErrInvalidConfig = errors.New("logger: invalid config")
