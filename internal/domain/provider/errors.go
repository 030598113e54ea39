// Package provider defines the shared failure taxonomy for upstream adapters.
//
// Every adapter failure is one of four kinds. The retry policy retries only
// transient failures; the dispatcher caches nothing on any of them.
package provider

import (
	"errors"
	"fmt"
)

// Kind classifies an upstream failure.
type Kind int

const (
	// KindNotConfigured means a required credential is absent. Permanent
	// until reconfigured; short-circuits before any network call.
	KindNotConfigured Kind = iota
	// KindTransient means a network error, timeout, or retryable upstream
	// status (5xx, 429). Retried up to the configured bound.
	KindTransient
	// KindLogical means the provider answered but reports no usable result
	// (not found, no matches, quota denied). Never retried.
	KindLogical
	// KindMalformed means the response body could not be decoded into the
	// expected shape. Never retried.
	KindMalformed
)

// String returns the taxonomy name for logging.
func (k Kind) String() string {
	switch k {
	case KindNotConfigured:
		return "not_configured"
	case KindTransient:
		return "transient"
	case KindLogical:
		return "upstream_logical"
	case KindMalformed:
		return "malformed"
	}
	return "unknown"
}

// Error is a classified upstream failure. Provider names the failing
// adapter so one provider's outage is attributable in logs without
// affecting the others.
type Error struct {
	Kind     Kind
	Provider string
	Msg      string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Provider, e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// NotConfigured reports a missing credential for the named provider.
func NotConfigured(provider, msg string) *Error {
	return &Error{Kind: KindNotConfigured, Provider: provider, Msg: msg}
}

// Transient reports a retryable network or upstream failure.
func Transient(provider, msg string, err error) *Error {
	return &Error{Kind: KindTransient, Provider: provider, Msg: msg, Err: err}
}

// Logical reports a definitive provider-level answer such as "not found".
func Logical(provider, msg string) *Error {
	return &Error{Kind: KindLogical, Provider: provider, Msg: msg}
}

// Malformed reports an undecodable upstream payload.
func Malformed(provider, msg string, err error) *Error {
	return &Error{Kind: KindMalformed, Provider: provider, Msg: msg, Err: err}
}

// IsRetryable reports whether err is a transient upstream failure. Errors
// outside the taxonomy are not retried: an unknown failure must surface,
// not burn retry budget.
func IsRetryable(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == KindTransient
	}
	return false
}

// KindOf extracts the failure kind, or KindMalformed if err is outside the
// taxonomy.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindMalformed
}
