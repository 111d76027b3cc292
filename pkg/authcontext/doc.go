// Package authcontext carries the resolved identity from the edge gateway
// to request handlers and guards protected handlers against missing or
// insufficient context.
//
// # Overview
//
// The gateway is the only writer of the propagation headers; handlers are
// the only readers, through the guards in this package. The headers form a
// trust boundary: the gateway strips any inbound occurrence before
// resolution, so a value read here is always gateway-written.
//
// # Guards
//
// Guards wrap handlers and reject before the handler runs:
//
//	guards.RequireAuth(h)                 // 401 MISSING_AUTH without a user
//	guards.RequireOrganization(h)         // 403 MISSING_ORGANIZATION without a tenant
//	guards.RequirePermission(perm, h)     // 403 INSUFFICIENT_PERMISSIONS
//
// RequireOrganization also rejects suspended organizations with 403
// ORGANIZATION_INACTIVE; pending organizations pass through with the
// status available on the context so handlers can degrade feature by
// feature. Context resolution is all-or-nothing: a handler either sees a
// complete AuthorizationContext or the guard has already answered.
//
// Guard decisions on protected data are recorded through pkg/audit;
// recording is asynchronous and never blocks the request.
package authcontext
