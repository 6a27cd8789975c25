package source

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrFetch = errors.New("fetch failed")
)
