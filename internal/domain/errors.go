package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for the relay's failure paths.
var (
	// ErrMalformedPayload is returned when a webhook body is not JSON at all.
	ErrMalformedPayload = errors.New("webhook payload is not valid JSON")
	// ErrMissingCredentials marks a send that was skipped because no token or phone number id is configured.
	ErrMissingCredentials = errors.New("send credentials are not configured")
	// ErrSendFailed wraps any failure of the external send API.
	ErrSendFailed = errors.New("send API request failed")
)
