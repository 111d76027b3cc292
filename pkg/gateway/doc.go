// Package gateway implements the edge authentication middleware that
// resolves caller identity before any handler runs.
//
// # Overview
//
// Every inbound request passes through the gateway exactly once. Public
// routes are matched first and served without authentication. For
// everything else the gateway strips any inbound propagation headers,
// validates the session token against the identity provider under a
// deadline, and on success writes the resolved identity back onto the
// request as trusted propagation headers for pkg/authcontext to read.
//
// Rejections are fail-closed:
//
//   - no or invalid token: 401 AUTH_REQUIRED for API callers, a redirect
//     to the sign-in page for browser navigation
//   - validation timeout: treated as invalid, never as an allow
//   - authenticated but no organization on an org-required route:
//     403 MISSING_ORGANIZATION
//   - panic or provider fault: 500 MIDDLEWARE_ERROR with propagation
//     headers guaranteed unset
//
// Each decision increments the gate decision metric and emits one
// structured log line.
package gateway
