package redact

import "errors"

// ErrInvalidPolicy is returned by ParsePolicy when the raw configuration does
// not have the {"global": {...}, "<flow>": {"<state>": {...}}} shape.
var ErrInvalidPolicy = errors.New("redact: invalid policy")
