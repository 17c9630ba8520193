package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/stackit/internal/platform/logging"
)

// Board operations run as a fixed pipeline: Validate → Perform → Archive → Respond.
//
//  1. VALIDATE - check inputs before any state changes
//  2. PERFORM  - compute and swap in the new in-memory state
//  3. ARCHIVE  - flush the new state to the store
//  4. RESPOND  - hand the caller its result
//
// The in-memory board is the source of truth, so an archive failure is
// logged and counted but never fails the operation.

const instrumentationName = "github.com/jsamuelsen/stackit/app"

// ExecutionStep represents a step in the operation pipeline.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError wraps errors with the step where they occurred.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// NewExecutionValidationError creates an error for the validate step.
func NewExecutionValidationError(message string, cause error) error {
	return &ExecutionError{Step: StepValidate, Message: message, Cause: cause}
}

// NewPerformError creates an error for the perform step.
func NewPerformError(message string, cause error) error {
	return &ExecutionError{Step: StepPerform, Message: message, Cause: cause}
}

// NewArchiveError creates an error for the archive step.
func NewArchiveError(message string, cause error) error {
	return &ExecutionError{Step: StepArchive, Message: message, Cause: cause}
}

// Executor runs board operations through the pipeline.
type Executor struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewExecutor creates a new executor with the given logger.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{
		logger: logger,
		tracer: otel.Tracer(instrumentationName),
	}
}

// Operation defines the functions for each step of the pipeline.
// Only Perform is required.
type Operation[I, O any] struct {
	// Name identifies this operation in logs, spans and metrics.
	Name string

	// Validate checks inputs. Return an error to abort before any state changes.
	Validate func(ctx context.Context, input I) error

	// Perform applies the change and returns its result.
	Perform func(ctx context.Context, input I) (O, error)

	// Archive persists the new state. It runs detached from the caller's
	// cancellation. Its error is reported, not returned.
	Archive func(ctx context.Context, input I, result O) error

	// Respond shapes the result for the caller.
	Respond func(ctx context.Context, input I, result O) (O, error)
}

// executionContext holds state during operation execution.
type executionContext[I, O any] struct {
	logger *slog.Logger
	op     Operation[I, O]
	input  I
}

func (e *executionContext[I, O]) runValidate(ctx context.Context) error {
	if e.op.Validate == nil {
		return nil
	}

	err := e.op.Validate(ctx, e.input)
	if err != nil {
		e.logger.DebugContext(ctx, "validation failed", slog.Any("error", err))

		return NewExecutionValidationError("input validation failed", err)
	}

	return nil
}

func (e *executionContext[I, O]) runPerform(ctx context.Context) (O, error) {
	var zero O

	result, err := e.op.Perform(ctx, e.input)
	if err != nil {
		e.logger.DebugContext(ctx, "perform rejected", slog.Any("error", err))

		return zero, NewPerformError("operation rejected", err)
	}

	return result, nil
}

func (e *executionContext[I, O]) runArchive(ctx context.Context, result O) error {
	if e.op.Archive == nil {
		return nil
	}

	err := e.op.Archive(ctx, e.input, result)
	if err != nil {
		e.logger.WarnContext(ctx, "archive failed, keeping in-memory state", slog.Any("error", err))

		return NewArchiveError("state persistence failed", err)
	}

	e.logger.Log(ctx, logging.LevelTrace, "state archived")

	return nil
}

func (e *executionContext[I, O]) runRespond(ctx context.Context, result O) (O, error) {
	if e.op.Respond == nil {
		return result, nil
	}

	return e.op.Respond(ctx, e.input, result)
}

// Execute runs an operation through the pipeline.
func Execute[I, O any](ctx context.Context, exec *Executor, op Operation[I, O], input I) (O, error) {
	var zero O

	ctx, span := exec.tracer.Start(ctx, "board."+op.Name,
		trace.WithAttributes(attribute.String("board.operation", op.Name)),
	)
	defer span.End()

	ctx = logging.WithContext(ctx, logging.FromContextOr(ctx, exec.logger))
	ctx = logging.WithOperation(ctx, op.Name)
	logger := logging.FromContext(ctx)

	start := time.Now()
	ec := &executionContext[I, O]{
		logger: logger,
		op:     op,
		input:  input,
	}

	fail := func(err error) (O, error) {
		outcome := outcomeFor(err)
		operationsTotal.WithLabelValues(op.Name, outcome).Inc()
		operationDuration.WithLabelValues(op.Name).Observe(time.Since(start).Seconds())

		span.SetAttributes(attribute.String("board.outcome", outcome))
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)

		return zero, err
	}

	err := ec.runValidate(ctx)
	if err != nil {
		return fail(err)
	}

	result, err := ec.runPerform(ctx)
	if err != nil {
		return fail(err)
	}

	// The change is already live in memory; a caller that gives up must not
	// cancel its flush. Backends bound the call with their own timeout.
	err = ec.runArchive(context.WithoutCancel(ctx), result)
	if err != nil {
		persistFailuresTotal.WithLabelValues(op.Name).Inc()
		span.AddEvent("archive failed", trace.WithAttributes(attribute.String("error", err.Error())))
	}

	result, err = ec.runRespond(ctx, result)
	if err != nil {
		return fail(&ExecutionError{Step: StepRespond, Message: "response failed", Cause: err})
	}

	duration := time.Since(start)
	operationsTotal.WithLabelValues(op.Name, outcomeOK).Inc()
	operationDuration.WithLabelValues(op.Name).Observe(duration.Seconds())
	span.SetAttributes(attribute.String("board.outcome", outcomeOK))

	logger.DebugContext(ctx, "operation completed", slog.Duration("duration", duration))

	return result, nil
}

// IsExecutionError checks if an error occurred during execution.
func IsExecutionError(err error) bool {
	var execErr *ExecutionError

	return errors.As(err, &execErr)
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
