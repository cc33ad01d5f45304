// Package rpcerr restores sentinel errors on the calling side of a
// request-reply service. Replies carry only the error text, so the caller
// matches that text against the sentinels it knows about.
package rpcerr

import (
	"strings"
)

// Error is a remote failure matched to a known sentinel.
type Error struct {
	kind error
	msg  string
}

// Error returns the remote message starting at the sentinel text.
func (e *Error) Error() string {
	return e.msg
}

// Unwrap exposes the matched sentinel to errors.Is.
func (e *Error) Unwrap() error {
	return e.kind
}

// Translate returns an *Error wrapping the first sentinel in known whose text
// appears in err. Unmatched errors are returned unchanged.
func Translate(err error, known ...error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, k := range known {
		if i := strings.Index(msg, k.Error()); i >= 0 {
			return &Error{kind: k, msg: msg[i:]}
		}
	}
	return err
}
