// Package server wires the gate's HTTP endpoints.
//
// # Overview
//
// Three routes are served behind the gateway middleware:
//
//	GET /api/health               public liveness answer
//	GET /api/organization/context caller's resolved context + permissions
//	GET /api/billing/alerts       composed billing alerts, permission-gated
//
// The context endpoint is the single source the client mirror fetches
// from; its responses carry cache-prevention headers because the payload
// differs per caller.
package server
