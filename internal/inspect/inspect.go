// Package inspect executes moves against a live solution and verifies that they behave: the notified
// index ranges cover every change, the state supply stays current, and the undo move restores the lists
// while mirroring the notifications.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/limaJavier/listmoves/internal/metrics"
	"github.com/limaJavier/listmoves/pkg/director"
	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/limaJavier/listmoves/pkg/move"
	"github.com/limaJavier/listmoves/pkg/selector"
	"github.com/limaJavier/listmoves/pkg/supply"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "listmoves.inspect"

var (
	ErrRangeNotExact   = errors.New("notified index range does not cover the change")
	ErrStaleSupply     = errors.New("state supply disagrees with the lists")
	ErrNotRestored     = errors.New("undo move did not restore the lists")
	ErrNotMirrored     = errors.New("undo move did not mirror the notifications")
	ErrUnboundedChecks = errors.New("a never-ending move selector needs a limit")
)

type Report struct {
	Move            string         `json:"move"`
	Type            string         `json:"type"`
	Result          metrics.Result `json:"result"`
	Notifications   int            `json:"notifications"`
	ChangedElements int            `json:"changedElements"`
}

type Summary struct {
	Checked  int      `json:"checked"`
	Passed   int      `json:"passed"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Failures []string `json:"failures,omitempty"`
}

type Inspector struct {
	solution *model.Solution
	supply   supply.ListVariableStateSupply
	recorder *director.Recorder
	director director.Director
	metrics  *metrics.InspectionMetrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewInspector works on the given solution through an initialized state supply, the same one the move
// selectors query
func NewInspector(solution *model.Solution, stateSupply supply.ListVariableStateSupply, inspectionMetrics *metrics.InspectionMetrics, logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	if inspectionMetrics == nil {
		inspectionMetrics = metrics.NewInspectionMetrics(nil)
	}
	recorder := director.NewRecorder()
	return &Inspector{
		solution: solution,
		supply:   stateSupply,
		recorder: recorder,
		director: director.Multi(stateSupply, recorder),
		metrics:  inspectionMetrics,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
	}
}

// WithTracerProvider makes the inspector trace through the given provider instead of the global one
func (inspector *Inspector) WithTracerProvider(provider trace.TracerProvider) *Inspector {
	inspector.tracer = provider.Tracer(tracerName)
	return inspector
}

// Director is what moves must be executed with for the inspector's supply to stay current
func (inspector *Inspector) Director() director.Director {
	return inspector.director
}

// Check executes the move and its undo. A move that is not doable is skipped. Every violation found is
// returned, joined, and wrapped with the move's description.
func (inspector *Inspector) Check(ctx context.Context, checked move.Move) (Report, error) {
	moveType := metrics.MoveType(checked)
	report := Report{Move: checked.String(), Type: moveType}
	_, span := inspector.tracer.Start(ctx, "inspect.Check", trace.WithAttributes(
		attribute.String("move.type", moveType),
		attribute.String("move", report.Move),
	))
	defer span.End()

	if !checked.IsDoable() {
		report.Result = metrics.Skipped
		inspector.metrics.RecordCheck(moveType, metrics.Skipped, 0)
		span.SetStatus(codes.Ok, "not doable")
		return report, nil
	}

	start := time.Now()
	before := inspector.solution.Snapshot()

	inspector.recorder.Reset()
	undo := move.Do(checked, inspector.director)
	events := slices.Clone(inspector.recorder.Events())

	var violations []error
	width, err := checkRanges(events)
	if err != nil {
		violations = append(violations, err)
	}
	if err := inspector.checkSupply(); err != nil {
		violations = append(violations, err)
	}

	inspector.recorder.Reset()
	move.Do(undo, inspector.director)
	undoEvents := inspector.recorder.Events()

	if !maps.EqualFunc(before, inspector.solution.Snapshot(), slices.Equal[[]model.Value]) {
		violations = append(violations, ErrNotRestored)
	}
	if err := inspector.checkSupply(); err != nil {
		violations = append(violations, fmt.Errorf("after undo: %w", err))
	}
	// A recreated move replays positions instead of mirroring its notifications
	if _, recreated := checked.(*move.ListRuinRecreateMove); !recreated {
		if !sameEvents(director.Mirror(events), undoEvents) {
			violations = append(violations, ErrNotMirrored)
		}
	}

	report.Notifications = len(events)
	report.ChangedElements = width
	inspector.metrics.RecordChangedElements(moveType, width)
	span.SetAttributes(attribute.Int("move.notifications", len(events)))

	if len(violations) > 0 {
		err := fmt.Errorf("move %v: %w", report.Move, errors.Join(violations...))
		report.Result = metrics.Failed
		inspector.metrics.RecordCheck(moveType, metrics.Failed, time.Since(start).Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, "move misbehaved")
		inspector.logger.Debug("Move failed inspection", "move", report.Move, "error", err)
		return report, err
	}

	report.Result = metrics.Passed
	inspector.metrics.RecordCheck(moveType, metrics.Passed, time.Since(start).Seconds())
	span.SetStatus(codes.Ok, "")
	return report, nil
}

// CheckAll inspects up to limit moves of the selector (every move when limit is not positive). It stops at
// the first move whose undo left the lists corrupted, since no later result could be trusted.
func (inspector *Inspector) CheckAll(ctx context.Context, moves selector.MoveSelector, limit int) (Summary, error) {
	if limit <= 0 && moves.IsNeverEnding() {
		return Summary{}, ErrUnboundedChecks
	}
	ctx, span := inspector.tracer.Start(ctx, "inspect.CheckAll", trace.WithAttributes(attribute.Int("limit", limit)))
	defer span.End()

	var summary Summary
	for checked := range moves.Iterate() {
		if limit > 0 && summary.Checked == limit {
			break
		}
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "cancelled")
			return summary, err
		}

		summary.Checked++
		report, err := inspector.Check(ctx, checked)
		switch report.Result {
		case metrics.Passed:
			summary.Passed++
		case metrics.Skipped:
			summary.Skipped++
		case metrics.Failed:
			summary.Failed++
			summary.Failures = append(summary.Failures, err.Error())
		}
		if errors.Is(err, ErrNotRestored) {
			break
		}
	}

	span.SetAttributes(attribute.Int("checked", summary.Checked), attribute.Int("failed", summary.Failed))
	if summary.Failed > 0 {
		span.SetStatus(codes.Error, "some moves misbehaved")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	inspector.logger.Info("Inspection finished",
		"variable", inspector.solution.Variable.Name(),
		"checked", summary.Checked,
		"passed", summary.Passed,
		"skipped", summary.Skipped,
		"failed", summary.Failed)
	return summary, nil
}

// Pairs every after-change notification with the latest open before-change notification of the same
// entity and checks that the elements outside the two ranges were left alone. Returns the summed width
// of the after ranges.
func checkRanges(events []director.Event) (int, error) {
	var violations []error
	width := 0
	open := make(map[model.Entity][]director.Event)
	for _, event := range events {
		switch event.Kind {
		case director.BeforeChanged:
			open[event.Entity] = append(open[event.Entity], event)
		case director.AfterChanged:
			stack := open[event.Entity]
			if len(stack) == 0 {
				violations = append(violations, fmt.Errorf("%w: %v has no preceding before notification", ErrRangeNotExact, event))
				continue
			}
			opened := stack[len(stack)-1]
			open[event.Entity] = stack[:len(stack)-1]
			if err := exactRange(opened, event); err != nil {
				violations = append(violations, err)
			}
			width += event.ToIndex - event.FromIndex
		}
	}
	for entity, stack := range open {
		if len(stack) > 0 {
			violations = append(violations, fmt.Errorf("%w: %v of %v is never closed", ErrRangeNotExact, stack[0], entity))
		}
	}
	return width, errors.Join(violations...)
}

func exactRange(before, after director.Event) error {
	if before.FromIndex != after.FromIndex {
		return fmt.Errorf("%w: %v and %v start at different indexes", ErrRangeNotExact, before, after)
	}
	for _, event := range []director.Event{before, after} {
		if event.FromIndex < 0 || event.FromIndex > event.ToIndex || event.ToIndex > len(event.Elements) {
			return fmt.Errorf("%w: %v is out of the list bounds (size %d)", ErrRangeNotExact, event, len(event.Elements))
		}
	}
	from := before.FromIndex
	if !slices.Equal(before.Elements[:from], after.Elements[:from]) {
		return fmt.Errorf("%w: elements before index %d changed between %v and %v", ErrRangeNotExact, from, before, after)
	}
	if !slices.Equal(before.Elements[before.ToIndex:], after.Elements[after.ToIndex:]) {
		return fmt.Errorf("%w: elements after the range changed between %v and %v", ErrRangeNotExact, before, after)
	}
	return nil
}

func (inspector *Inspector) checkSupply() error {
	actual := make(map[model.Value]model.ElementPosition, len(inspector.solution.Values))
	for _, entity := range inspector.solution.Entities {
		for index, value := range inspector.solution.Variable.Elements(entity) {
			actual[value] = model.Assigned(entity, index)
		}
	}
	var violations []error
	for _, value := range inspector.solution.Values {
		expected, ok := actual[value]
		if !ok {
			expected = model.Unassigned()
		}
		if tracked := inspector.supply.ElementPosition(value); tracked != expected {
			violations = append(violations, fmt.Errorf("%w: %v is at %v but the supply says %v", ErrStaleSupply, value, expected, tracked))
		}
	}
	return errors.Join(violations...)
}

func sameEvents(expected, actual []director.Event) bool {
	return slices.EqualFunc(expected, actual, func(left, right director.Event) bool {
		return left.Kind == right.Kind &&
			left.Entity == right.Entity &&
			left.FromIndex == right.FromIndex &&
			left.ToIndex == right.ToIndex &&
			left.Element == right.Element
	})
}
