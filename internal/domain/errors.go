package domain

import (
	"errors"
	"fmt"
)

// Pipeline error classes. Every failure inside a domain pipeline wraps one of
// these so the invocation boundary can label its diagnostics, and tests can
// assert on the class with errors.Is.
var (
	// ErrUpstreamUnavailable marks a network or HTTP failure reaching a provider.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedUpstreamData marks a payload missing a field required to
	// construct a stable identity. Missing optional fields never raise this.
	ErrMalformedUpstreamData = errors.New("malformed upstream data")

	// ErrStoreWriteFailure marks a rejected persistence write.
	ErrStoreWriteFailure = errors.New("store write failure")

	// ErrNotificationDispatchFailure marks a push dispatch that was not accepted.
	ErrNotificationDispatchFailure = errors.New("notification dispatch failure")
)

// UpstreamError wraps a provider failure with its class.
func UpstreamError(provider string, err error) error {
	return fmt.Errorf("%s: %w: %w", provider, ErrUpstreamUnavailable, err)
}

// MalformedError reports a missing identity field.
func MalformedError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedUpstreamData, fmt.Sprintf(format, args...))
}

// StoreError wraps a persistence failure with its class.
func StoreError(path string, err error) error {
	return fmt.Errorf("write %q: %w: %w", path, ErrStoreWriteFailure, err)
}

// DispatchError wraps a notification failure with its class.
func DispatchError(err error) error {
	return fmt.Errorf("%w: %w", ErrNotificationDispatchFailure, err)
}
