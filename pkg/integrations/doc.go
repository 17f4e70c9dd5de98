// Package integrations provides HTTP clients for the APIs talentmap reads.
//
// # Overview
//
// The [talentmap] subpackage fetches the aggregated talent-map snapshot.
// It is built on the shared [Client], which handles:
//   - default headers (bearer token, Accept)
//   - retry with exponential backoff for transient failures
//   - response caching through a [cache.Cache] backend
//
// # Errors
//
// Status codes map to sentinels that callers test with errors.Is:
//
//   - 404: [ErrNotFound]
//   - 401, 403: [ErrUnauthorized]
//   - 429, 5xx and connection failures: [ErrNetwork], retried
//   - anything else non-200: [ErrNetwork], not retried
//
// [talentmap]: github.com/matzehuels/talentmap/pkg/integrations/talentmap
// [cache.Cache]: github.com/matzehuels/talentmap/pkg/cache.Cache
package integrations
