package podpointclient

import "fmt"

// APIError is the most generic error returned by the client: unexpected
// statuses on domain calls and undecodable payloads.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// AuthError signals a failed identity exchange: a non-2xx from the identity
// provider, or a 2xx whose body could not be decoded.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("Auth Error (%d) - %s", e.Status, e.Body)
}

// SessionError signals a failed session exchange with the Pod Point backend.
type SessionError struct {
	Status int
	Body   string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("Session Error (%d) - %s", e.Status, e.Body)
}

// ConnectionError signals a timeout or transport-level failure reaching an
// endpoint. It always carries the target URL and the underlying cause.
type ConnectionError struct {
	URL     string
	Cause   error
	Timeout bool
}

func (e *ConnectionError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("Connection Error: timeout error fetching information from %s - %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("Connection Error: error connecting to Pod Point (%s) - %v", e.URL, e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// ChargeOverrideValidationError is raised before any network call when a
// charge override is requested with an invalid duration.
type ChargeOverrideValidationError struct {
	Message string
}

func (e *ChargeOverrideValidationError) Error() string {
	return fmt.Sprintf("Charge Override Validation Error - %s", e.Message)
}
