// Package httputil provides the HTTP plumbing shared by API clients.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff, but only when the
// error is wrapped in [RetryableError]. Clients wrap transient failures
// (connection errors, timeouts, 5xx responses) and return everything else
// as is:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// [RetryWithBackoff] uses 3 attempts starting at one second.
//
// # Instrumentation
//
// [Transport] wraps an [http.RoundTripper] and reports every request to the
// registered [observability.HTTPHooks].
//
// [observability.HTTPHooks]: github.com/matzehuels/talentmap/pkg/observability.HTTPHooks
package httputil
