package social

import "errors"

// Taxonomía de errores de los flujos OAuth y los action endpoints.
// Los errores de flujo se convierten en LastResult en el propio service;
// los de action endpoints se mapean a HTTP en el controller.
var (
	// Flujo OAuth (callback)
	ErrProviderUnknown     = errors.New("social: unknown provider")
	ErrMissingCode         = errors.New("social: missing code parameter")
	ErrInvalidState        = errors.New("social: invalid or missing state")
	ErrMissingVerifier     = errors.New("social: missing pkce code verifier")
	ErrTokenExchangeFailed = errors.New("social: token exchange failed")
	ErrDependentCallFailed = errors.New("social: dependent call failed")

	// Action endpoints
	ErrNotAuthenticated     = errors.New("social: not authenticated with provider")
	ErrResourceNotFound     = errors.New("social: resource not found")
	ErrUpstreamActionFailed = errors.New("social: upstream action failed")
)

// FlowError carries the user-visible message for a failed I/O step.
// Message is the provider's error verbatim when available, otherwise a
// generic fallback chosen at the call site.
type FlowError struct {
	Message string
	Err     error
}

func (e *FlowError) Error() string { return e.Message }
func (e *FlowError) Unwrap() error { return e.Err }
