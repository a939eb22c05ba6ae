// Package lineage records execution attempts as a branching tree. Each
// agent run appends debug nodes chained by parent pointers; when the run
// completes, its most recent node is retagged final. Nodes are
// append-only and a thread's nodes form a forest rooted at nodes with no
// parent.
package lineage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ashureev/sketch-labs/internal/domain"
	"github.com/ashureev/sketch-labs/internal/store"
)

// WriteError reports that the store failed to persist a node. The
// generated image is never dropped on its account: callers receive the
// node (and the image it carries) alongside this error.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("persist generation node: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Tracker owns the lineage store and hands out runs.
type Tracker struct {
	repo store.Repository
}

// New creates a tracker backed by the given repository.
func New(repo store.Repository) *Tracker {
	return &Tracker{repo: repo}
}

// StartRun begins an agent run on a thread. A non-nil parentID continues
// from an existing generation, which may live in any thread; the parent
// must already exist, so the forest can never contain a cycle.
func (t *Tracker) StartRun(ctx context.Context, threadID string, parentID *string) (*Run, error) {
	if parentID != nil {
		parent, err := t.repo.GetNode(ctx, *parentID)
		if err != nil {
			return nil, fmt.Errorf("look up continuation parent: %w", err)
		}
		if parent == nil {
			return nil, fmt.Errorf("continue from unknown generation %s", *parentID)
		}
	}
	if err := t.repo.SetThreadStatus(ctx, threadID, domain.ThreadRunning); err != nil {
		return nil, fmt.Errorf("mark thread running: %w", err)
	}
	return &Run{tracker: t, threadID: threadID, parentID: parentID}, nil
}

// Nodes returns a thread's recorded nodes in the order their executions
// completed.
func (t *Tracker) Nodes(ctx context.Context, threadID string) ([]*domain.GenerationNode, error) {
	return t.repo.ListNodes(ctx, threadID)
}

// DeleteThread soft-deletes a thread. Its nodes stay inspectable.
func (t *Tracker) DeleteThread(ctx context.Context, threadID string) error {
	return t.repo.DeleteThread(ctx, threadID)
}

// Ancestry reconstructs a node's lineage by walking parent pointers back
// to a root, crossing thread boundaries where a run continued from
// another thread's generation. The result is ordered root first.
func (t *Tracker) Ancestry(ctx context.Context, nodeID string) ([]*domain.GenerationNode, error) {
	var chain []*domain.GenerationNode
	seen := make(map[string]bool)
	id := nodeID
	for {
		if seen[id] {
			return nil, fmt.Errorf("lineage cycle at node %s", id)
		}
		seen[id] = true

		node, err := t.repo.GetNode(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("look up node %s: %w", id, err)
		}
		if node == nil {
			return nil, fmt.Errorf("node %s not found", id)
		}
		chain = append(chain, node)
		if node.ParentID == nil {
			break
		}
		id = *node.ParentID
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// Run is the per-agent-run state machine: zero or more recorded debug
// nodes, then exactly one of Complete or Fail. Calls within a run are
// strictly sequential, so Run needs no locking.
type Run struct {
	tracker  *Tracker
	threadID string
	parentID *string
	lastID   string
	finished bool
}

// ThreadID returns the thread this run records into.
func (r *Run) ThreadID() string {
	return r.threadID
}

// LastNodeID returns the id of the most recently recorded node, or ""
// when nothing has been recorded yet.
func (r *Run) LastNodeID() string {
	return r.lastID
}

// Record appends a debug node for one completed execution attempt. Its
// parent is the run's previous node, or the continuation parent for the
// first attempt. On a store failure the node is still returned with the
// image payload intact, wrapped in a WriteError, and the thread is marked
// failed so the caller's view never shows a false completion.
func (r *Run) Record(ctx context.Context, prompt *string, code string, png []byte) (*domain.GenerationNode, error) {
	if r.finished {
		return nil, fmt.Errorf("run already finished")
	}

	node := &domain.GenerationNode{
		ID:        uuid.NewString(),
		ThreadID:  r.threadID,
		ParentID:  r.parentID,
		Kind:      domain.NodeDebug,
		Prompt:    prompt,
		Code:      code,
		PNG:       png,
		CreatedAt: time.Now(),
	}

	if err := r.tracker.repo.CreateNode(ctx, node); err != nil {
		if statusErr := r.tracker.repo.SetThreadStatus(ctx, r.threadID, domain.ThreadFailed); statusErr != nil {
			slog.Warn("failed to mark thread failed after write error", "thread_id", r.threadID, "error", statusErr)
		}
		r.finished = true
		return node, &WriteError{Err: err}
	}

	id := node.ID
	r.parentID = &id
	r.lastID = id
	return node, nil
}

// Complete finishes the run: the most recent debug node is retagged
// final and the thread is marked completed. A run that recorded no nodes
// is completed without a retag.
func (r *Run) Complete(ctx context.Context) error {
	if r.finished {
		return fmt.Errorf("run already finished")
	}
	r.finished = true

	if r.lastID != "" {
		if err := r.tracker.repo.RetagFinal(ctx, r.lastID); err != nil {
			return fmt.Errorf("retag final node: %w", err)
		}
	}
	if err := r.tracker.repo.SetThreadStatus(ctx, r.threadID, domain.ThreadCompleted); err != nil {
		return fmt.Errorf("mark thread completed: %w", err)
	}
	return nil
}

// Fail finishes the run without retagging anything: recorded debug nodes
// stay debug history and the thread is marked failed. Aborting a run at
// a step boundary goes through Fail as well.
func (r *Run) Fail(ctx context.Context) error {
	if r.finished {
		return fmt.Errorf("run already finished")
	}
	r.finished = true

	if err := r.tracker.repo.SetThreadStatus(ctx, r.threadID, domain.ThreadFailed); err != nil {
		return fmt.Errorf("mark thread failed: %w", err)
	}
	return nil
}
