package confloader

import "errors"

// ErrReadBytesNotSupported is returned when ReadBytes is called on a map provider.
var ErrReadBytesNotSupported = errors.New("confloader: map provider does not support ReadBytes")

// ErrNotWatching is returned by Start when no file has been added.
var ErrNotWatching = errors.New("confloader: no file is being watched")
