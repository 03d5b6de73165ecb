// Package pipeline provides the high-level orchestration for document
// generation: snapshot, build, generate, validate.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/career-assistant/internal/observability"
	"github.com/jonathan/career-assistant/internal/prompt"
	"github.com/jonathan/career-assistant/internal/session"
	"github.com/jonathan/career-assistant/internal/types"
	"github.com/jonathan/career-assistant/internal/validate"
)

// Generator is the narrow surface of the generation client the pipeline
// depends on.
type Generator interface {
	Generate(ctx context.Context, req *types.GenerationRequest) (string, error)
}

// Pipeline wires the session store, prompt builder, and generation
// client into one run loop.
type Pipeline struct {
	Store     *session.Store
	Builder   *prompt.Builder
	Generator Generator

	Verbose bool
	Out     io.Writer
}

// New creates a pipeline with output on stdout.
func New(store *session.Store, builder *prompt.Builder, generator Generator) *Pipeline {
	return &Pipeline{
		Store:     store,
		Builder:   builder,
		Generator: generator,
		Out:       os.Stdout,
	}
}

// Run produces one validated document for the current session state.
// Every surfaced error carries its pipeline stage; cancelling ctx
// abandons the run without delivering a result.
//
//nolint:errcheck // progress output; write errors are not recoverable
func (p *Pipeline) Run(ctx context.Context, kind types.Kind, options map[string]string) (*types.GenerationResult, error) {
	printer := observability.NewPrinter(p.out())

	// Step 1: snapshot the session contexts.
	fmt.Fprintf(p.out(), "Step 1/4: Taking session snapshot...\n")
	snap := p.Store.Snapshot()
	if p.Verbose {
		printer.PrintSnapshot(&snap)
	}

	// Step 2: build the immutable generation request.
	fmt.Fprintf(p.out(), "Step 2/4: Building %s request...\n", kind)
	req, err := p.Builder.Build(kind, options, snap)
	if err != nil {
		return nil, stageWrap(types.StageBuild, err)
	}
	if p.Verbose {
		printer.PrintRequest(req)
	}

	// Step 3: call the text-completion service.
	fmt.Fprintf(p.out(), "Step 3/4: Generating document (request %s)...\n", req.Metadata.ID)
	raw, err := p.Generator.Generate(ctx, req)
	if err != nil {
		return nil, stageWrap(types.StageGenerate, err)
	}

	// Step 4: normalize and run structural checks.
	fmt.Fprintf(p.out(), "Step 4/4: Validating generated document...\n")
	result := validate.Validate(req, raw)
	if p.Verbose {
		printer.PrintIssues(result)
	}
	if result.Valid() {
		fmt.Fprintf(p.out(), "Done! Document passed validation.\n")
	} else {
		fmt.Fprintf(p.out(), "Done with %d validation issues (document still returned).\n", len(result.Issues))
	}

	return result, nil
}

func (p *Pipeline) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

// stageWrap attaches a stage to errors that do not already carry one.
func stageWrap(stage types.Stage, err error) error {
	var staged types.StagedError
	if errors.As(err, &staged) {
		return err
	}
	return &types.StageError{ErrStage: stage, Err: err}
}
