/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package perror is the structured error type returned across the plugin's
// request boundary.
//
// An *Error carries a code (what failed), an optional reason (where it
// failed), a human message, a small details map and an optional cause.
// Transports never inspect messages: they resolve the code and reason through
// a mapper and project details into gRPC/HTTP error payloads.
package perror

import (
	"context"
	"errors"
	"fmt"

	"dirpx.dev/logplugin/code"
	"dirpx.dev/logplugin/reason"
)

// Well-known detail keys understood by the transport adapters.
const (
	// DetailField names the request field or parameter the error is about.
	DetailField = "field"
	// DetailValue carries the offending raw value.
	DetailValue = "value"
)

// Error is the canonical request-scoped error.
//
// All mutation helpers (WithX) return a shallow copy, so Error values can be
// shared between goroutines.
type Error struct {
	// Code is the primary classification, e.g. "invalid_parameter".
	Code code.Code

	// Reason refines Code, e.g. "params.min_count.syntax". May be empty.
	Reason reason.Reason

	// Message is the human-readable explanation sent to the caller.
	Message string

	// Details is a shallow, immutable map of extra fields.
	Details map[string]any

	// Cause is the wrapped underlying error, if any.
	Cause error
}

// E constructs a new Error and applies opts in order.
//
//	return perror.E(code.InvalidParameter, "min_count must be an integer",
//	    perror.WithReasonOption(reasonSyntax),
//	    perror.WithDetailOption(perror.DetailField, "min_count"),
//	)
func E(c code.Code, msg string, opts ...Option) *Error {
	e := &Error{Code: c, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error formats as "<code>: <message>" or "<code>:<reason>: <message>".
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s:%s: %s", e.Code, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same code (and reason, when
// the target sets one). This makes errors.Is(err, perror.E(code.X, "")) work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Field returns the DetailField value, or "" when absent.
func (e *Error) Field() string {
	if e == nil {
		return ""
	}
	s, _ := e.Details[DetailField].(string)
	return s
}

// WithReason returns a copy of e with Reason set.
func (e *Error) WithReason(r reason.Reason) *Error {
	cp := *e
	cp.Reason = r
	return &cp
}

// WithDetail returns a copy of e with one extra key/value in Details.
// The map is always copied.
func (e *Error) WithDetail(k string, v any) *Error {
	cp := *e
	m := make(map[string]any, len(cp.Details)+1)
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	m[k] = v
	cp.Details = m
	return &cp
}

// WithCause returns a copy of e wrapping err. A nil err returns e unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// FromContext converts a context error into an *Error.
// It returns nil for a nil err and an Internal error for anything that is not
// context.Canceled or context.DeadlineExceeded.
func FromContext(err error) *Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return E(code.Timeout, "request deadline exceeded", WithCauseOption(err))
	case errors.Is(err, context.Canceled):
		return E(code.Canceled, "request canceled", WithCauseOption(err))
	default:
		return E(code.Internal, err.Error(), WithCauseOption(err))
	}
}
