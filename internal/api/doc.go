// Package api provides the HTTP client for the wishlist backend.
//
// # Overview
//
// The package has two responsibilities: request/response handling against the
// backend REST API, and normalization of the backend's loosely-populated
// payloads into fully-typed records.
//
// # Endpoints
//
// Reads (the snapshot side of state synchronization):
//
//   - GET /wishlist/{slug}: wishlist metadata
//   - GET /wishlists/{id}/gifts: the full gift collection
//   - GET /stats: landing-page aggregate totals
//
// Writes (request/response only; their effects come back through the push
// channel or the next snapshot refresh, never by local fabrication):
//
//   - POST /gifts/ and PUT /gifts/{id}: create and edit
//   - DELETE /gifts/{id}
//   - POST /gifts/{id}/reserve and /gifts/{id}/contribute
//   - GET /api/parse-url: link metadata for gift prefill
//
// The backend passes write parameters as query strings and reports domain
// failures in an "error" field of a 2xx body; doWrite checks both paths.
//
// # Normalization
//
// Wire structs keep every optional field as a pointer and are converted in a
// single normalize step: absent numbers become zero, absent arrays become
// empty slices, and the derived Progress, Reserved and HasContributions
// fields are recomputed. Downstream code never branches on "maybe absent".
//
// Money fields use decimal.Decimal so the progress invariant is computed with
// exact arithmetic.
//
// # Error Handling
//
// All errors are wrapped with descriptive context using fmt.Errorf. Non-2xx
// responses include the backend's "detail" message when one is present.
package api
