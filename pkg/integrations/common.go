package integrations

import (
	"errors"
	"net/http"
	"time"

	"github.com/matzehuels/talentmap/pkg/httputil"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned when the API rejects the credentials (401 or 403).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidResponse is returned when a 200 response body cannot be decoded.
	ErrInvalidResponse = errors.New("invalid upstream response")
)

// NewHTTPClient creates an instrumented HTTP client with the standard
// request timeout.
func NewHTTPClient() *http.Client {
	return httputil.NewClient(httpTimeout)
}
