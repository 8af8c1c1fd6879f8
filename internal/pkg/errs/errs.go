package errs

import (
	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark attaches markErr so errors.Is(err, markErr) holds while keeping the
// original cause as the message and as part of the chain for logging.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &marked{cause: err, mark: markErr}
}

// marked exposes both the cause and the mark through multi-unwrap so plain
// errors.Is matching works against either one.
type marked struct {
	cause error
	mark  error
}

func (m *marked) Error() string {
	return m.cause.Error()
}

func (m *marked) Unwrap() []error {
	return []error{m.cause, m.mark}
}
