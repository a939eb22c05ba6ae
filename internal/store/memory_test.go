package store

import (
	"context"
	"testing"
	"time"

	"github.com/ashureev/sketch-labs/internal/domain"
)

func TestMemoryStoreCopiesNodes(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	node := &domain.GenerationNode{
		ID: "n1", ThreadID: "t1", Kind: domain.NodeDebug,
		Code: "original", PNG: []byte{1}, CreatedAt: time.Now(),
	}
	if err := repo.CreateNode(ctx, node); err != nil {
		t.Fatalf("CreateNode: %v", err)
	}

	// Mutating what callers hold must not reach the stored record.
	node.Code = "mutated"
	got, _ := repo.GetNode(ctx, "n1")
	if got.Code != "original" {
		t.Errorf("stored node aliased caller's value: %q", got.Code)
	}
	got.Kind = domain.NodeFinal
	again, _ := repo.GetNode(ctx, "n1")
	if again.Kind != domain.NodeDebug {
		t.Errorf("returned node aliased stored value")
	}
}

func TestMemoryStoreRejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()
	node := &domain.GenerationNode{ID: "n1", ThreadID: "t1", Kind: domain.NodeDebug}
	if err := repo.CreateNode(ctx, node); err != nil {
		t.Fatalf("CreateNode: %v", err)
	}
	if err := repo.CreateNode(ctx, node); err == nil {
		t.Errorf("duplicate CreateNode succeeded, want error")
	}
}
