package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"renthubber/infras/otel"
	"renthubber/shared/failure"
)

func record(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "service.settlement.Complete")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	return ended[0]
}

func attributes(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}

	return attrs
}

func TestScope_TraceError(t *testing.T) {
	t.Run("domain failure keeps the status unset", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceError(failure.AlreadySettled("booking already settled"))
		})

		assert.Equal(t, codes.Unset, span.Status().Code)
		assert.Equal(t, "ALREADY_SETTLED", attributes(span)["failure.reason"].AsString())
		assert.Len(t, span.Events(), 1)
	})

	t.Run("processor failure marks the span", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceError(failure.ExternalProcessor(errors.New("timeout"), true))
		})

		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Equal(t, "EXTERNAL_PROCESSOR_ERROR", attributes(span)["failure.reason"].AsString())
	})

	t.Run("plain error marks the span", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceIfError(errors.New("connection refused"))
		})

		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Equal(t, "connection refused", span.Status().Description)
	})

	t.Run("nil is ignored", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			scope.TraceIfError(nil)
		})

		assert.Equal(t, codes.Unset, span.Status().Code)
		assert.Empty(t, span.Events())
	})
}

type cents int64

func (cents) String() string { return "42c" }

func TestScope_SetAttributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"booking.id":     "b-1",
			"booking.amount": int64(7000),
			"refund.full":    true,
			"roles":          []string{"admin", "hubber"},
			"fee":            cents(42),
			"ratio":          0.5,
		})
		scope.SetAttribute("attempt", 2)
	})

	attrs := attributes(span)

	assert.Equal(t, "b-1", attrs["booking.id"].AsString())
	assert.Equal(t, int64(7000), attrs["booking.amount"].AsInt64())
	assert.True(t, attrs["refund.full"].AsBool())
	assert.Equal(t, []string{"admin", "hubber"}, attrs["roles"].AsStringSlice())
	assert.Equal(t, "42c", attrs["fee"].AsString())
	assert.InDelta(t, 0.5, attrs["ratio"].AsFloat64(), 0)
	assert.Equal(t, int64(2), attrs["attempt"].AsInt64())
}
