package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/enroll/internal/collaborator"
	"github.com/zjrosen/enroll/internal/program"
)

func newRecorder(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return rec, tp
}

func attrs(kvs []attribute.KeyValue) map[string]string {
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = kv.Value.Emit()
	}
	return out
}

func TestMiddleware_RecordsSuccessfulEnrollment(t *testing.T) {
	rec, tp := newRecorder(t)
	var sawSpan bool
	handler := program.HandlerFunc(func(ctx context.Context, _ string) error {
		sawSpan = trace.SpanContextFromContext(ctx).IsValid()
		return nil
	})

	wrapped := Middleware(tp.Tracer("test"))(program.Cashier, handler)
	require.NoError(t, wrapped.Enroll(context.Background(), "alice"))
	require.True(t, sawSpan)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "enroll.cashier", spans[0].Name())
	require.Equal(t, codes.Ok, spans[0].Status().Code)
	got := attrs(spans[0].Attributes())
	require.Equal(t, "cashier", got[AttrProgram])
	require.Equal(t, "alice", got[AttrUser])
}

func TestMiddleware_RecordsErrorAndReturnsItUnchanged(t *testing.T) {
	rec, tp := newRecorder(t)
	boom := errors.New("scheduler unavailable")
	handler := program.HandlerFunc(func(context.Context, string) error { return boom })

	err := Middleware(tp.Tracer("test"))(program.Produce, handler).Enroll(context.Background(), "bob")
	require.Same(t, boom, err)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.Equal(t, "scheduler unavailable", spans[0].Status().Description)
	require.Equal(t, "collaborator", attrs(spans[0].Attributes())[AttrErrorType])
	require.Len(t, spans[0].Events(), 1)
}

// TestMiddleware_ContextErrorType verifies that cancellation is tagged as a context
// error rather than a collaborator failure.
func TestMiddleware_ContextErrorType(t *testing.T) {
	rec, tp := newRecorder(t)
	handler := program.HandlerFunc(func(ctx context.Context, _ string) error { return ctx.Err() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Middleware(tp.Tracer("test"))(program.Inventory, handler).Enroll(ctx, "carol")
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, "context", attrs(rec.Ended()[0].Attributes())[AttrErrorType])
}

func TestMiddleware_NilTracerPassesThrough(t *testing.T) {
	handler := program.HandlerFunc(func(context.Context, string) error { return nil })

	wrapped := Middleware(nil)(program.Cashier, handler)
	require.NoError(t, wrapped.Enroll(context.Background(), "alice"))
}

func TestMiddleware_WithRegistry(t *testing.T) {
	rec, tp := newRecorder(t)
	registry := program.NewRegistry(collaborator.Set{},
		program.WithFactories(map[program.ID]program.Factory{
			program.Cashier: func(collaborator.Set) program.Handler {
				return program.HandlerFunc(func(context.Context, string) error { return nil })
			},
		}),
		program.WithMiddleware(Middleware(tp.Tracer("test"))),
	)

	require.NoError(t, registry.Enroll(context.Background(), program.Cashier, "alice"))
	require.Len(t, rec.Ended(), 1)

	// Unknown programs never reach a handler, so no span is opened.
	require.Error(t, registry.Enroll(context.Background(), "bakery", "alice"))
	require.Len(t, rec.Ended(), 1)
}
