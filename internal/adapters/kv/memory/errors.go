package memory

import "errors"

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("memory store is closed")
