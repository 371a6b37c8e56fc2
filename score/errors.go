package score

import (
	"errors"
	"fmt"
)

// ErrEmptyReference is returned when the reference normalizes to nothing, so
// there are no reference units to divide by.
var ErrEmptyReference = errors.New("empty reference")

// DomainError reports input that cannot be scored. It is a usage error:
// retrying with the same text always fails the same way.
type DomainError struct {
	Metric string // "wer" or "cer"
	Err    error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %v", e.Metric, e.Err)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// IsDomainError reports whether err is, or wraps, a *DomainError
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
