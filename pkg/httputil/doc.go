// Package httputil provides HTTP utilities for the authorization gate's
// request/response handling.
//
// # Overview
//
// Every JSON endpoint in the gate answers with the same envelope: successful
// responses carry {"success": true, "data": ...} and failures carry
// {"success": false, "error": "...", "code": "..."} where code is a stable
// machine-readable string from the gate's error taxonomy (AUTH_REQUIRED,
// MISSING_ORGANIZATION, INSUFFICIENT_PERMISSIONS, MIDDLEWARE_ERROR, ...).
//
// # Response Helpers
//
//	httputil.WriteData(w, http.StatusOK, payload)
//	httputil.WriteErrorCode(w, http.StatusUnauthorized, httputil.CodeAuthRequired, "Authentication required")
//
// Responses that carry per-user authorization state must never be cached by
// intermediaries:
//
//	httputil.SetNoStore(w)
//	httputil.WriteData(w, http.StatusOK, contextPayload)
//
// # Request Parsing
//
// Token and caller extraction:
//
//	token := httputil.BearerToken(r)
//	addr := httputil.ClientIP(r)
//
// Path and query parameters:
//
//	name, ok := httputil.ParsePathStringOrError(w, r, "name")
//	verbose, err := httputil.ParseQueryBool(r, "verbose", false)
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//		httputil.MaxBytesMiddleware(1024*1024),
//	)
//
// # Related Packages
//
//   - pkg/gateway: edge authentication middleware built on these helpers
//   - pkg/authcontext: handler-level guards that write these envelopes
package httputil
