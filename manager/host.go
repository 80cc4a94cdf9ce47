package manager

import "context"

// Host is the narrow interface the tracing subsystem needs from the host
// inference runtime: creating and releasing trace handles, and reporting
// the two identity fields a REQUEST_START header wants to carry. A real
// Triton-style C runtime would implement this through a cgo shim;
// internal/hostsim implements it in-process for tests and cmd/tracedemo.
type Host interface {
	// CreateTrace asks the host to mint a new root trace handle for
	// modelName/modelVersion, with userp as the opaque pointer the host
	// will hand back on every later callback for this trace (and any
	// child sub-traces it creates sharing the handle).
	CreateTrace(ctx context.Context, modelName string, modelVersion int64, userp any) (traceID uint64, err error)

	// ReleaseTrace signals that the host is done with traceID. Called
	// exactly once per trace handle (root or child); the manager decides
	// whether this release corresponds to the root by consulting ParentID
	// before it arrives here.
	ReleaseTrace(traceID uint64, userp any)

	// ParentID returns the parent trace id for traceID, or 0 if traceID
	// is itself a root trace.
	ParentID(traceID uint64) uint64

	// RequestID returns the host's own request identifier for traceID, if
	// it has one to report. ok is false when the host has none (the
	// header fragment's request_id field is then omitted).
	RequestID(traceID uint64) (string, bool)
}
