// Package studio wires the execution harness and the lineage tracker
// into the submit-execute-record step the agent loop drives. The loop
// itself, model calls included, lives outside this module.
package studio

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ashureev/sketch-labs/internal/canvas"
	"github.com/ashureev/sketch-labs/internal/domain"
	"github.com/ashureev/sketch-labs/internal/lineage"
	"github.com/ashureev/sketch-labs/internal/render"
	"github.com/ashureev/sketch-labs/internal/sandbox"
)

// Service executes submitted code and records each attempt.
type Service struct {
	harness *sandbox.Harness
	tracker *lineage.Tracker
}

// New creates a studio service.
func New(harness *sandbox.Harness, tracker *lineage.Tracker) *Service {
	return &Service{harness: harness, tracker: tracker}
}

// APIReference returns the drawing API documentation text to inject into
// a model's instruction context.
func (s *Service) APIReference() string {
	return canvas.APIReference
}

// StartRun begins an agent run, optionally continuing from an existing
// generation node.
func (s *Service) StartRun(ctx context.Context, threadID string, parentID *string) (*lineage.Run, error) {
	return s.tracker.StartRun(ctx, threadID, parentID)
}

// Step is one executed and recorded attempt.
type Step struct {
	Node  *domain.GenerationNode
	Image *render.Image
	Code  string
}

// ExecuteStep runs one code submission through the harness and records
// the result on the run.
//
// A sandbox.ExecutionError is returned as-is with nothing recorded; the
// caller decides whether to resubmit corrected code or give up. When the
// execution succeeds but persistence fails, the returned Step still
// carries the rendered image alongside a lineage.WriteError.
func (s *Service) ExecuteStep(ctx context.Context, run *lineage.Run, prompt *string, code string, canvasSize int) (*Step, error) {
	res, err := s.harness.Execute(ctx, code, canvasSize)
	if err != nil {
		var execErr *sandbox.ExecutionError
		if errors.As(err, &execErr) {
			slog.Debug("code execution failed", "thread_id", run.ThreadID(), "error", execErr.Message)
		}
		return nil, err
	}

	png, err := res.Image.PNG()
	if err != nil {
		return nil, err
	}

	node, err := run.Record(ctx, prompt, code, png)
	if err != nil {
		var writeErr *lineage.WriteError
		if errors.As(err, &writeErr) {
			slog.Warn("generation node not persisted, image still delivered",
				"thread_id", run.ThreadID(), "error", err)
			return &Step{Node: node, Image: res.Image, Code: code}, err
		}
		return nil, err
	}

	return &Step{Node: node, Image: res.Image, Code: code}, nil
}
