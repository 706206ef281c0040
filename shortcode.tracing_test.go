package shortcode

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
	"go.opentelemetry.io/otel/trace"
)

// setupTestTracer creates a test tracer with an in-memory exporter.
func setupTestTracer(t *testing.T) (trace.Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return provider.Tracer("test-tracer"), exporter
}

func spansByName(exporter *tracetest.InMemoryExporter, name string) []tracetest.SpanStub {
	var out []tracetest.SpanStub
	for _, span := range exporter.GetSpans() {
		if span.Name == name {
			out = append(out, span)
		}
	}
	return out
}

func attributeValue(span tracetest.SpanStub, key string) (attribute.Value, bool) {
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			return attr.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing_RenderAndInvokeSpans(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	engine := MustNew(WithTracer(tracer))
	engine.MustAdd("parent", contentHandler())
	engine.MustAdd("child", textHandler("Y"))

	out, err := engine.Render(context.Background(), "[parent][child][/parent]")
	require.NoError(t, err)
	assert.Equal(t, "Y", out)

	renders := spansByName(exporter, SpanRender)
	require.Len(t, renders, 1)
	render := renders[0]
	assert.Equal(t, codes.Ok, render.Status.Code)

	mode, ok := attributeValue(render, SpanAttrMode)
	require.True(t, ok)
	assert.Equal(t, RenderModeNameSuspending, mode.AsString())

	outLen, ok := attributeValue(render, SpanAttrOutputLen)
	require.True(t, ok)
	assert.Equal(t, int64(1), outLen.AsInt64())

	invokes := spansByName(exporter, SpanInvoke)
	require.Len(t, invokes, 2)

	child := invokes[0]
	tag, _ := attributeValue(child, SpanAttrTagName)
	assert.Equal(t, "child", tag.AsString())
	depth, _ := attributeValue(child, SpanAttrDepth)
	assert.Equal(t, int64(1), depth.AsInt64())
	assert.Equal(t, render.SpanContext.SpanID(), child.Parent.SpanID())

	parent := invokes[1]
	tag, _ = attributeValue(parent, SpanAttrTagName)
	assert.Equal(t, "parent", tag.AsString())
	substituted, _ := attributeValue(parent, SpanAttrSubstituted)
	assert.True(t, substituted.AsBool())
}

func TestTracing_HandlerErrorRecorded(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	engine := MustNew(WithTracer(tracer))
	engine.MustAdd("fail", ContextFunc(func(context.Context, *Attributes, string) (Result, error) {
		return Result{}, errors.New("boom")
	}))

	_, err := engine.Render(context.Background(), "[fail]")
	require.Error(t, err)

	invokes := spansByName(exporter, SpanInvoke)
	require.Len(t, invokes, 1)
	assert.Equal(t, codes.Error, invokes[0].Status.Code)
	assert.NotEmpty(t, invokes[0].Events)

	renders := spansByName(exporter, SpanRender)
	require.Len(t, renders, 1)
	assert.Equal(t, codes.Error, renders[0].Status.Code)
}

func TestTracing_BlankInputHasNoSpan(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	engine := MustNew(WithTracer(tracer))

	_, err := engine.RenderSync("   ")
	require.NoError(t, err)
	assert.Empty(t, exporter.GetSpans())
}
