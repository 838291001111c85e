package encryption

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const scopeName = "github.com/supportlib/encryption"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)

	opsCounter   metric.Int64Counter
	errorCounter metric.Int64Counter
)

func init() {
	opsCounter, _ = meter.Int64Counter("encryption.operations",
		metric.WithDescription("Completed encrypt and decrypt operations."))
	errorCounter, _ = meter.Int64Counter("encryption.errors",
		metric.WithDescription("Failed encrypt and decrypt operations."))
}

// recordResult closes out the span and counters for one operation.
// The key source attribute is omitted when no key was configured.
func recordResult(ctx context.Context, span trace.Span, op string, key *EncryptionKey, err error) {
	attrs := []attribute.KeyValue{attribute.String("operation", op)}
	if key != nil {
		attrs = append(attrs, attribute.String("key.source", key.Source.String()))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		errorCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
		return
	}
	opsCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
}
