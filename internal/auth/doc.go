// Package auth provides the login orchestration and the request gate.
//
// The login flow composes the directory adapter and the token issuer:
//
//	credentials → directory validation → profile lookup → token issuance
//
// Each login attempt ends in exactly one terminal outcome, expressed as
// a sentinel error (or success). Nothing is retried; the caller may
// resubmit.
//
// The gate side is a set of Fiber middleware constructors protecting
// routes with bearer tokens:
//   - RequireAuthenticated: any valid token
//   - RequireRole: valid token whose role claims intersect a required set
//
// Routes without either middleware are publicly reachable. On ALLOW the
// verified claims are placed in fiber locals for downstream handlers.
package auth
