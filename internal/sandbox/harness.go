// Package sandbox runs untrusted drawing code. Each execution gets a
// throwaway ECMAScript interpreter whose only binding is a fresh canvas
// builder, so scripts cannot reach the host or observe one another.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dop251/goja"

	"github.com/ashureev/sketch-labs/internal/canvas"
	"github.com/ashureev/sketch-labs/internal/render"
	"github.com/ashureev/sketch-labs/internal/scene"
)

// ExecutionError reports that submitted code failed to parse or threw
// while running. It carries the interpreter's message so the caller can
// feed it back for a corrected resubmission.
type ExecutionError struct {
	Message string
}

func (e *ExecutionError) Error() string {
	return "code execution: " + e.Message
}

// Result is a completed execution: the rendered image, the scene behind
// it, and the verbatim code string for lineage recording.
type Result struct {
	Image *render.Image
	Scene *scene.Scene
	Code  string
	Steps int
}

// Options tune a harness.
type Options struct {
	// MaxSteps caps the number of drawing calls one execution may make;
	// 0 means no cap. Exceeding it surfaces as an ExecutionError.
	MaxSteps int

	// OutputSize resamples the rendered image to this edge length when
	// positive; 0 keeps the canvas size.
	OutputSize int
}

// Harness executes code strings against fresh builders. A harness holds
// no per-execution state and may be shared across concurrent runs.
type Harness struct {
	renderer *render.Renderer
	opts     Options
}

// New returns a harness using the given renderer; a nil renderer gets a
// default one.
func New(renderer *render.Renderer, opts Options) *Harness {
	if renderer == nil {
		renderer = render.New()
	}
	return &Harness{renderer: renderer, opts: opts}
}

// Execute runs code with a fresh builder bound to canvasSize and renders
// the resulting scene. The context bounds wall-clock time: when it is
// cancelled or expires the interpreter is interrupted and the attempt
// fails with an ExecutionError. No partial image is returned on failure.
func (h *Harness) Execute(ctx context.Context, code string, canvasSize int) (*Result, error) {
	if canvasSize <= 0 {
		canvasSize = scene.DefaultCanvasSize
	}

	vm := goja.New()
	builder := canvas.New(canvasSize)
	b := bindCanvas(vm, builder, h.opts.MaxSteps)

	if err := h.run(ctx, vm, code); err != nil {
		return nil, err
	}

	var img *render.Image
	var err error
	if h.opts.OutputSize > 0 {
		img, err = h.renderer.RenderSized(builder.Scene(), h.opts.OutputSize)
	} else {
		img, err = h.renderer.Render(builder.Scene())
	}
	if err != nil {
		return nil, fmt.Errorf("render scene: %w", err)
	}

	return &Result{
		Image: img,
		Scene: builder.Scene(),
		Code:  code,
		Steps: b.steps,
	}, nil
}

// run evaluates the code, translating every interpreter failure mode
// into an ExecutionError.
func (h *Harness) run(ctx context.Context, vm *goja.Runtime, code string) (err error) {
	if deadline, ok := ctx.Deadline(); ok {
		slog.Debug("executing sandboxed code", "deadline", deadline)
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()
	defer close(done)
	defer vm.ClearInterrupt()

	// The interpreter may surface internal faults as panics; untrusted
	// code must never take the host down with it.
	defer func() {
		if r := recover(); r != nil {
			err = &ExecutionError{Message: fmt.Sprintf("interpreter panic: %v", r)}
		}
	}()

	if _, runErr := vm.RunString(code); runErr != nil {
		var interrupted *goja.InterruptedError
		if errors.As(runErr, &interrupted) {
			return &ExecutionError{Message: fmt.Sprintf("execution interrupted: %v", interrupted.Value())}
		}
		var exc *goja.Exception
		if errors.As(runErr, &exc) {
			return &ExecutionError{Message: exc.Error()}
		}
		return &ExecutionError{Message: runErr.Error()}
	}
	return nil
}
