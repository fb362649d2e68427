package shared

import (
	"errors"
	"fmt"
)

// Discriminator values carried by APIError. Service clients map expected
// failure modes onto these instead of returning bare errors, so handlers
// can decide console output per category.
const (
	KindRateLimited   = "rate_limited"
	KindAuthRequired  = "auth_required"
	KindNoAPIKey      = "no_api_key"
	KindInvalidAPIKey = "invalid_api_key"
	KindUnavailable   = "unavailable"
	KindNotFound      = "not_found"
)

// APIError is the error-marker shape returned by service clients for
// expected failures. RetryAfter is only set for rate_limited responses
// that carried a Retry-After header.
type APIError struct {
	Service    string
	Kind       string
	RetryAfter int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Service, e.Kind)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Service, e.Kind, e.Message)
}

// AsAPIError unwraps err into an *APIError, or returns nil if err is a
// generic failure.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsKind reports whether err is an APIError with the given discriminator.
func IsKind(err error, kind string) bool {
	apiErr := AsAPIError(err)
	return apiErr != nil && apiErr.Kind == kind
}
