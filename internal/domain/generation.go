// Package domain holds the entity types shared across the engine.
package domain

import "time"

// NodeKind distinguishes intermediate self-correction attempts from the
// attempt a run ultimately accepted.
type NodeKind string

const (
	// NodeDebug marks an intermediate attempt within one agent run.
	NodeDebug NodeKind = "debug"
	// NodeFinal marks the last accepted attempt of a completed run.
	NodeFinal NodeKind = "final"
)

// ThreadStatus is the lifecycle state of a conversation thread.
type ThreadStatus string

const (
	ThreadPending   ThreadStatus = "pending"
	ThreadRunning   ThreadStatus = "running"
	ThreadCompleted ThreadStatus = "completed"
	ThreadFailed    ThreadStatus = "failed"
)

// GenerationNode is one recorded execution attempt: the code that was
// submitted and the image it produced. Nodes are append-only; the only
// permitted mutation is the single debug-to-final retag when a run
// completes.
type GenerationNode struct {
	ID        string
	ThreadID  string
	ParentID  *string // nil marks the root of a thread's forest
	Kind      NodeKind
	Prompt    *string // nil for legacy and root nodes
	Code      string
	PNG       []byte // lossless encoding of the rendered image
	CreatedAt time.Time
}

// Root reports whether the node starts a lineage.
func (n *GenerationNode) Root() bool {
	return n.ParentID == nil
}

// Thread groups a forest of generation nodes belonging to one
// conversation. Threads are soft-deleted: marked, never erased.
type Thread struct {
	ID        string
	Status    ThreadStatus
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
