package aggregates

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/shop-backend/internal/observability"
)

// Hooks receives one ObserveOperation per aggregate write, plus a conflict or
// retry signal when the write failed that way.
type Hooks interface {
	ObserveOperation(ctx context.Context, op, status string, dur time.Duration)
	IncConflict(op string)
	IncRetry(op string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(context.Context, string, string, time.Duration) {}
func (noopHooks) IncConflict(string)                                              {}
func (noopHooks) IncRetry(string)                                                 {}

type observabilityHooks struct {
	metrics *observability.Metrics
}

// NewObservabilityHooks records aggregate writes as metrics and as events on
// the caller's span. A nil metrics set still annotates spans.
func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	return &observabilityHooks{metrics: metrics}
}

func (h *observabilityHooks) ObserveOperation(ctx context.Context, op, status string, dur time.Duration) {
	op = strings.TrimSpace(op)
	status = strings.TrimSpace(status)
	h.metrics.ObserveAggregateOperation(op, status, dur)

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent("aggregate.write", trace.WithAttributes(
		attribute.String("shop.aggregate.op", op),
		attribute.String("shop.aggregate.status", status),
		attribute.Int64("shop.aggregate.duration_ms", dur.Milliseconds()),
	))
}

func (h *observabilityHooks) IncConflict(op string) {
	h.metrics.IncAggregateConflict(strings.TrimSpace(op))
}

func (h *observabilityHooks) IncRetry(op string) {
	h.metrics.IncAggregateRetry(strings.TrimSpace(op))
}
