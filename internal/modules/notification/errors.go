package notification

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("notification not found")

	// ErrDispatchFailed is returned only when no recipient row could be
	// persisted at all; partial failures are logged and tolerated.
	ErrDispatchFailed = errors.New("dispatch failed for all recipients")
)
