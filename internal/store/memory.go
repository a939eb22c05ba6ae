package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/ashureev/sketch-labs/internal/domain"
)

// MemoryStore is an in-process Repository: a flat arena of nodes keyed by
// id with parent links, plus per-thread insertion order. It backs tests
// and hosts that embed the engine without a database.
type MemoryStore struct {
	mu      sync.Mutex
	nodes   map[string]*domain.GenerationNode
	threads map[string]*domain.Thread
	order   map[string][]string // thread id -> node ids in persisted order
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		nodes:   make(map[string]*domain.GenerationNode),
		threads: make(map[string]*domain.Thread),
		order:   make(map[string][]string),
	}
}

// CreateNode appends a generation node.
func (s *MemoryStore) CreateNode(ctx context.Context, node *domain.GenerationNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nodes[node.ID]; exists {
		return fmt.Errorf("node %s already exists", node.ID)
	}
	copied := *node
	s.nodes[node.ID] = &copied
	s.order[node.ThreadID] = append(s.order[node.ThreadID], node.ID)
	return nil
}

// GetNode retrieves a node by id.
func (s *MemoryStore) GetNode(ctx context.Context, nodeID string) (*domain.GenerationNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[nodeID]
	if !ok {
		return nil, nil
	}
	copied := *node
	return &copied, nil
}

// RetagFinal flips a node's kind from debug to final.
func (s *MemoryStore) RetagFinal(ctx context.Context, nodeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[nodeID]
	if !ok {
		return fmt.Errorf("node %s not found", nodeID)
	}
	node.Kind = domain.NodeFinal
	return nil
}

// GetThread retrieves a thread by id.
func (s *MemoryStore) GetThread(ctx context.Context, threadID string) (*domain.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, ok := s.threads[threadID]
	if !ok {
		return nil, nil
	}
	copied := *thread
	return &copied, nil
}

// SetThreadStatus creates the thread if needed and sets its status.
func (s *MemoryStore) SetThreadStatus(ctx context.Context, threadID string, status domain.ThreadStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, ok := s.threads[threadID]
	if !ok {
		thread = &domain.Thread{ID: threadID}
		s.threads[threadID] = thread
	}
	thread.Status = status
	return nil
}

// DeleteThread soft-deletes a thread; its nodes remain inspectable.
func (s *MemoryStore) DeleteThread(ctx context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, ok := s.threads[threadID]
	if !ok {
		return nil
	}
	thread.Deleted = true
	return nil
}

// ListNodes returns a thread's nodes in persisted order.
func (s *MemoryStore) ListNodes(ctx context.Context, threadID string) ([]*domain.GenerationNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.order[threadID]
	nodes := make([]*domain.GenerationNode, 0, len(ids))
	for _, id := range ids {
		copied := *s.nodes[id]
		nodes = append(nodes, &copied)
	}
	return nodes, nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
