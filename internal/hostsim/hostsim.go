// Package hostsim is a minimal in-process stand-in for the host inference
// runtime, implementing manager.Host without any real model-serving
// engine behind it. It exists for manager's own tests and for
// cmd/tracedemo, which has no C runtime to attach to.
package hostsim

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Host is a fake host inference runtime. It assigns monotonically
// increasing trace handles and tracks parent/request-id bookkeeping for
// child sub-traces created under the same user-pointer, the way Triton's
// real tracer does for batched/ensemble requests.
type Host struct {
	nextID atomic.Uint64

	mu        sync.Mutex
	parentOf  map[uint64]uint64
	requestOf map[uint64]string
	released  map[uint64]bool
}

// New creates an empty Host.
func New() *Host {
	return &Host{
		parentOf:  make(map[uint64]uint64),
		requestOf: make(map[uint64]string),
		released:  make(map[uint64]bool),
	}
}

// CreateTrace mints a new root trace handle. userp is recorded by the
// caller (manager.TraceManager), not by Host itself — Host only needs the
// id to answer ParentID/RequestID/ReleaseTrace later.
func (h *Host) CreateTrace(ctx context.Context, modelName string, modelVersion int64, userp any) (uint64, error) {
	id := h.nextID.Add(1)

	h.mu.Lock()
	h.parentOf[id] = 0
	h.requestOf[id] = fmt.Sprintf("req-%d", id)
	h.mu.Unlock()

	return id, nil
}

// CreateChildTrace mints a sub-trace handle sharing parentID's request
// identity, the way a Triton ensemble step reports a child trace under
// the same root's user-pointer.
func (h *Host) CreateChildTrace(parentID uint64) uint64 {
	id := h.nextID.Add(1)

	h.mu.Lock()
	h.parentOf[id] = parentID
	h.requestOf[id] = h.requestOf[parentID]
	h.mu.Unlock()

	return id
}

// ReleaseTrace marks traceID released. Safe to call more than once.
func (h *Host) ReleaseTrace(traceID uint64, userp any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.released[traceID] = true
}

// Released reports whether ReleaseTrace has been called for traceID.
func (h *Host) Released(traceID uint64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released[traceID]
}

// ParentID returns the parent trace id for traceID, or 0 if it is a root.
func (h *Host) ParentID(traceID uint64) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.parentOf[traceID]
}

// RequestID returns the synthesized request identifier for traceID.
func (h *Host) RequestID(traceID uint64) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id, ok := h.requestOf[traceID]
	return id, ok
}
