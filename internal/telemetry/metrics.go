package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics
type Metrics struct {
	AskOutcomes        metric.Int64Counter
	ModelLatency       metric.Float64Histogram
	DocumentUploads    metric.Int64Counter
	DatabaseOperations metric.Int64Counter
}

// InitMetrics initializes all application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("college-chatbot")

	askOutcomes, err := meter.Int64Counter(
		"ask.outcomes",
		metric.WithDescription("Answered questions by pipeline outcome"),
	)
	if err != nil {
		return nil, err
	}

	modelLatency, err := meter.Float64Histogram(
		"gemini.generate.duration",
		metric.WithDescription("Generative model call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	documentUploads, err := meter.Int64Counter(
		"documents.uploads",
		metric.WithDescription("Knowledge document uploads by result"),
	)
	if err != nil {
		return nil, err
	}

	databaseOperations, err := meter.Int64Counter(
		"database.operations.total",
		metric.WithDescription("Total database operations"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		AskOutcomes:        askOutcomes,
		ModelLatency:       modelLatency,
		DocumentUploads:    documentUploads,
		DatabaseOperations: databaseOperations,
	}, nil
}

// RecordAskOutcome records one pipeline run. Safe on a nil receiver.
func (m *Metrics) RecordAskOutcome(ctx context.Context, outcome, division string) {
	if m == nil {
		return
	}
	m.AskOutcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("ask.outcome", outcome),
		attribute.String("ask.division", division),
	))
}

// RecordModelLatency records the duration of one model call.
func (m *Metrics) RecordModelLatency(ctx context.Context, seconds float64, success bool) {
	if m == nil {
		return
	}
	m.ModelLatency.Record(ctx, seconds, metric.WithAttributes(attribute.Bool("gemini.success", success)))
}

// RecordDocumentUpload records an upload attempt by result (created, duplicate, rejected).
func (m *Metrics) RecordDocumentUpload(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.DocumentUploads.Add(ctx, 1, metric.WithAttributes(attribute.String("upload.result", result)))
}

// RecordDatabaseOperation records database operation metrics
func (m *Metrics) RecordDatabaseOperation(ctx context.Context, operation, collection string, success bool) {
	if m == nil {
		return
	}
	m.DatabaseOperations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("db.operation", operation),
		attribute.String("db.collection", collection),
		attribute.Bool("db.success", success),
	))
}
