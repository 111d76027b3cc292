// Package billing composes subscription and usage alerts for the
// dashboard's notification surface.
//
// # Overview
//
// The composer turns one organization's billing snapshot into a list of
// alerts with deterministic IDs, so a dismissed alert stays dismissed when
// the same condition is recomputed. Thresholds:
//
//   - usage at or above 80% of a metric's limit: warning; at or above
//     100%: critical
//   - trial ending within 3 days: warning; within 1 day: critical
//   - past_due subscription: critical, never dismissible
//   - cancellation scheduled at period end: warning, dismissible
//
// Alert visibility is permission-gated through the resolution engine:
// ComposeForRole answers ErrPermissionDenied for roles without the
// organization billing permission. That check is the only gate; callers
// must not re-check the role themselves.
package billing
