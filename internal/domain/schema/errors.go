package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMismatch is the sentinel kind for header resolution failures; callers
// can errors.Is against it without depending on *MismatchError.
var ErrMismatch = errors.New("schema mismatch")

// MismatchError reports that neither resolution strategy could locate the
// required columns. It carries the observed headers to aid debugging.
type MismatchError struct {
	Headers []string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("could not resolve columns; found headers: [%s]", strings.Join(e.Headers, ", "))
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}
