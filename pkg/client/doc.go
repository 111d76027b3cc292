// Package client mirrors the server-resolved organization context for UI
// consumers.
//
// # Overview
//
// The Mirror fetches the caller's context from the gate's context endpoint
// once and caches the snapshot until the session changes. Concurrent
// fetches coalesce into a single HTTP round-trip via singleflight. The
// snapshot dies with its session: SignOut, SwitchOrganization and
// Invalidate all bump a generation counter, and a response arriving for an
// earlier generation is discarded rather than applied.
//
// Derived booleans (IsAdmin, IsOwner, CanManageUsers, HasPermission) are
// computed through pkg/rbac with the mirrored role only and fail closed:
// no snapshot, or a role the engine does not declare, answers false.
// Nothing in this package is an authorization decision. The server
// re-checks every request; the mirror exists so the UI can gate
// instantaneously without a network round-trip.
package client
