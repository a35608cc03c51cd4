// Package metrics exposes Prometheus instruments for move inspection.
package metrics

import (
	"fmt"
	"strings"

	"github.com/limaJavier/listmoves/pkg/move"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "listmoves"
	subsystem = "inspection"
)

type Result string

const (
	Passed  Result = "passed"
	Skipped Result = "skipped" // The move was not doable
	Failed  Result = "failed"
)

type InspectionMetrics struct {
	// Labels: move, result
	MovesTotal *prometheus.CounterVec

	// Labels: move
	CheckDurationSeconds *prometheus.HistogramVec

	// Labels: move
	ChangedElements *prometheus.HistogramVec
}

// NewInspectionMetrics registers the instruments on the given registerer. A nil registerer leaves them
// unregistered, which is what tests and one-shot commands usually want.
func NewInspectionMetrics(registerer prometheus.Registerer) *InspectionMetrics {
	factory := promauto.With(registerer)
	return &InspectionMetrics{
		MovesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "moves_total",
			Help:      "Inspected moves by move type and result",
		}, []string{"move", "result"}),
		CheckDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "check_duration_seconds",
			Help:      "Time spent executing, undoing and verifying one move",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"move"}),
		ChangedElements: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "changed_elements",
			Help:      "Width of the index ranges a move declares as changed",
			Buckets:   prometheus.LinearBuckets(1, 2, 8),
		}, []string{"move"}),
	}
}

func (metrics *InspectionMetrics) RecordCheck(moveType string, result Result, seconds float64) {
	metrics.MovesTotal.WithLabelValues(moveType, string(result)).Inc()
	if result != Skipped {
		metrics.CheckDurationSeconds.WithLabelValues(moveType).Observe(seconds)
	}
}

func (metrics *InspectionMetrics) RecordChangedElements(moveType string, width int) {
	metrics.ChangedElements.WithLabelValues(moveType).Observe(float64(width))
}

// MoveType is the label value of a move: its type name without package qualifier
func MoveType(inspected move.Move) string {
	name := fmt.Sprintf("%T", inspected)
	return name[strings.LastIndex(name, ".")+1:]
}
