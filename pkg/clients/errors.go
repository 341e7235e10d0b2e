// Package clients holds the error taxonomy shared by the outbound API clients.
package clients

import (
	"errors"
	"fmt"
	"net/url"
)

// Kind classifies a failed outbound call
type Kind string

const (
	// KindUnreachable covers transport errors and timeouts
	KindUnreachable Kind = "unreachable"
	// KindRejected covers API-level failures reported by the remote side
	KindRejected Kind = "rejected"
)

var (
	ErrUnreachable = &Error{Kind: KindUnreachable}
	ErrRejected    = &Error{Kind: KindRejected}
)

// Error is a failed call to a downstream channel
type Error struct {
	Channel string
	Kind    Kind
	Detail  string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Channel, e.Kind, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s %s: %s", e.Channel, e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches by kind so callers can use errors.Is(err, ErrRejected)
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Unreachable wraps a transport error. The request URL is stripped from
// *url.Error causes since it may carry credentials.
func Unreachable(channel string, cause error) *Error {
	var uerr *url.Error
	if errors.As(cause, &uerr) {
		cause = uerr.Err
	}
	return &Error{Channel: channel, Kind: KindUnreachable, Detail: cause.Error(), Cause: cause}
}

// Rejected reports an API-level failure with the remote side's description
func Rejected(channel, detail string) *Error {
	return &Error{Channel: channel, Kind: KindRejected, Detail: detail}
}
