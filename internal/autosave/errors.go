package autosave

import "errors"

// ErrClosed is returned by Edit after Close.
var ErrClosed = errors.New("autosave: session closed")
