// Package store provides data persistence interfaces and implementations
// for the generation lineage.
package store

import (
	"context"

	"github.com/ashureev/sketch-labs/internal/domain"
)

// Repository defines the interface for persisting threads and generation
// nodes. Lookup methods return (nil, nil) when the record does not exist.
type Repository interface {
	// CreateNode appends a generation node. Nodes are never updated or
	// deleted afterwards except through RetagFinal.
	CreateNode(ctx context.Context, node *domain.GenerationNode) error

	// GetNode retrieves a node by id, regardless of its thread.
	GetNode(ctx context.Context, nodeID string) (*domain.GenerationNode, error)

	// RetagFinal flips a node's kind from debug to final.
	RetagFinal(ctx context.Context, nodeID string) error

	// GetThread retrieves a thread by id.
	GetThread(ctx context.Context, threadID string) (*domain.Thread, error)

	// SetThreadStatus creates the thread if needed and sets its status.
	SetThreadStatus(ctx context.Context, threadID string, status domain.ThreadStatus) error

	// DeleteThread soft-deletes a thread: it is marked, its nodes stay.
	DeleteThread(ctx context.Context, threadID string) error

	// ListNodes returns a thread's nodes in the order they were
	// persisted, which is the order their executions completed.
	ListNodes(ctx context.Context, threadID string) ([]*domain.GenerationNode, error)

	// Ping verifies connectivity and returns an error if the store is
	// unreachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}
