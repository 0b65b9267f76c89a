package tracing

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/enroll/internal/program"
)

// Span naming and attribute keys.
const (
	SpanPrefixEnroll = "enroll."

	AttrProgram   = "enroll.program"
	AttrUser      = "enroll.user"
	AttrErrorType = "error.type"
)

// Middleware returns a program.Middleware that runs each enrollment in a
// span named enroll.<program>. A nil tracer yields a pass-through.
func Middleware(tracer trace.Tracer) program.Middleware {
	if tracer == nil {
		return func(_ program.ID, next program.Handler) program.Handler { return next }
	}

	return func(id program.ID, next program.Handler) program.Handler {
		return program.HandlerFunc(func(ctx context.Context, user string) error {
			ctx, span := tracer.Start(ctx, SpanPrefixEnroll+string(id),
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(
					attribute.String(AttrProgram, string(id)),
					attribute.String(AttrUser, user),
				),
			)
			defer span.End()

			err := next.Enroll(ctx, user)
			if err != nil {
				span.RecordError(err)
				span.SetAttributes(attribute.String(AttrErrorType, errorType(err)))
				span.SetStatus(codes.Error, err.Error())
				return err
			}
			span.SetStatus(codes.Ok, "")
			return nil
		})
	}
}

func errorType(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "context"
	}
	return "collaborator"
}
