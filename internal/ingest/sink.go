package ingest

import "starscout/internal/models"

// ProgressSink receives one progress event at a time during an ingestion run.
// The pipeline makes no assumption about delivery—websocket, queue, or a test
// collector all satisfy the same contract.
type ProgressSink interface {
	Send(ev models.ProgressEvent) error
}

// SinkFunc adapts a plain function to ProgressSink.
type SinkFunc func(ev models.ProgressEvent) error

// Send calls f(ev).
func (f SinkFunc) Send(ev models.ProgressEvent) error { return f(ev) }

// Discard drops every event. Used by callers that only want the final result.
var Discard ProgressSink = SinkFunc(func(models.ProgressEvent) error { return nil })
