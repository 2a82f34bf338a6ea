package fault

import (
	"errors"
	"fmt"
)

// Kind separates errors the caller caused from errors the system caused.
// The HTTP layer maps ClientError to 400 and everything else to 500.
type Kind int

const (
	ClientError Kind = iota
	InternalError
)

// Fault carries a user-presentable message alongside the underlying error.
type Fault struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Message, f.Err)
	}
	return f.Message
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (f *Fault) Unwrap() error {
	return f.Err
}

// NewClient marks an error as caused by invalid input.
func NewClient(msg string, err error) error {
	return &Fault{Kind: ClientError, Message: msg, Err: err}
}

// NewInternal marks an error as a server-side failure.
func NewInternal(msg string, err error) error {
	return &Fault{Kind: InternalError, Message: msg, Err: err}
}

// IsClient reports whether err was caused by invalid input.
func IsClient(err error) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind == ClientError
	}
	return false
}

// Message returns the user-presentable part of err. For wrapped faults this
// hides the cause, which may contain infrastructure detail.
func Message(err error) string {
	var f *Fault
	if errors.As(err, &f) {
		return f.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
