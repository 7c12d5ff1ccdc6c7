package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := NewProvider(recorder, nil, 1)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return recorder
}

func TestStartSpan(t *testing.T) {
	recorder := setupRecorder(t)

	t.Run("父子Span共享TraceID", func(t *testing.T) {
		ctx, parent := StartSpan(context.Background(), "lending.Borrow")
		childCtx, child := StartSpan(ctx, "loan.Create")
		child.SetAttributes(attribute.String("patron_id", "123456"))
		child.End()
		parent.End()

		assert.NotEmpty(t, ExtractTraceID(ctx))
		assert.Equal(t, ExtractTraceID(ctx), ExtractTraceID(childCtx))

		spans := recorder.Ended()
		require.Len(t, spans, 2)
		assert.Equal(t, "loan.Create", spans[0].Name())
		assert.Equal(t, parent.SpanContext().SpanID(), spans[0].Parent().SpanID())
	})
}

func TestRecordError(t *testing.T) {
	recorder := setupRecorder(t)

	_, span := StartSpan(context.Background(), "payment.Charge")
	RecordError(span, nil)
	RecordError(span, errors.New("gateway timeout"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "gateway timeout", spans[0].Status().Description)
	assert.Len(t, spans[0].Events(), 1)
}

func TestExtractTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, ExtractTraceID(context.Background()))
}
