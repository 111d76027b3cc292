// Package audit records authorization decisions for compliance review.
//
// # Overview
//
// Every guard decision on protected data can be recorded as an audit event:
// who asked, for which organization, with what role, what they tried to do,
// and whether it was allowed. Events flow through an asynchronous Recorder
// that never blocks request handling: when the queue is full the event is
// dropped and counted, and request processing continues. An audit outage
// degrades audit, never availability.
//
// # Usage
//
//	recorder := audit.NewRecorder(sink, logger, metrics, 1024)
//	defer recorder.Close()
//
//	recorder.Record(audit.Event{
//		Action:         "patients.view",
//		Outcome:        audit.OutcomeAllowed,
//		UserID:         authCtx.UserID,
//		OrganizationID: authCtx.OrganizationID,
//		Role:           string(authCtx.OrganizationRole),
//	})
//
// Sinks are pluggable: NewWriterSink streams JSON lines to any io.Writer,
// NewFileSink appends to a file, and NewMultiSink fans out to several.
package audit
