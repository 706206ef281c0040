package shortcode

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func defaultTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(TracerName)
}

func (e *Engine) startRenderSpan(ctx context.Context, mode string, text string) (context.Context, trace.Span) {
	ctx, span := e.tracer.Start(ctx, SpanRender, trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(
		attribute.String(SpanAttrMode, mode),
		attribute.Int(SpanAttrSourceLen, len(text)),
		attribute.Int(SpanAttrRegistered, e.registry.Count()),
	)
	return ctx, span
}

func (e *Engine) startInvokeSpan(ctx context.Context, name string, depth int) (context.Context, trace.Span) {
	ctx, span := e.tracer.Start(ctx, SpanInvoke, trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(
		attribute.String(SpanAttrTagName, name),
		attribute.Int(SpanAttrDepth, depth),
	)
	return ctx, span
}

// endSpan records the outcome and ends the span.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
