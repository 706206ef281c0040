package shortcode

import (
	"context"
	"reflect"

	"github.com/itsatony/go-shortcode/internal"
)

// Attributes holds the cast attributes of one tag, in the order they were
// written. Values are int64, float64, bool or string.
type Attributes = internal.Attributes

// NewAttributes creates an empty attribute map.
func NewAttributes() *Attributes {
	return internal.NewAttributes()
}

// Result is what a handler returns: either replacement text or an
// instruction to leave the tag as written. The zero value is Unchanged.
type Result struct {
	text        string
	substituted bool
}

// Substitute returns a Result that replaces the tag with text. An empty
// string removes the tag.
func Substitute(text string) Result {
	return Result{text: text, substituted: true}
}

// Unchanged returns a Result that leaves the tag in the text.
func Unchanged() Result {
	return Result{}
}

// ResultOf converts a dynamic value: a string substitutes, anything else
// (including nil) leaves the tag unchanged.
func ResultOf(v any) Result {
	if s, ok := v.(string); ok {
		return Substitute(s)
	}
	return Unchanged()
}

// Text returns the replacement text and whether there is one.
func (r Result) Text() (string, bool) {
	return r.text, r.substituted
}

// IsUnchanged reports whether the tag is left as written.
func (r Result) IsUnchanged() bool {
	return !r.substituted
}

// Handler renders one tag. attrs holds the tag's cast attributes; content is
// the trimmed inner content with nested tags already rendered, or "" for
// tags without inner content.
//
// A returned error aborts the render.
type Handler interface {
	Render(ctx context.Context, attrs *Attributes, content string) (Result, error)
}

// SyncHandler is a Handler that can run without a context. Only SyncHandlers
// are accepted by Engine.RenderSync.
type SyncHandler interface {
	Handler
	RenderSync(attrs *Attributes, content string) Result
}

// Func adapts a plain function to a SyncHandler.
type Func func(attrs *Attributes, content string) Result

// Render implements Handler.
func (f Func) Render(_ context.Context, attrs *Attributes, content string) (Result, error) {
	return f(attrs, content), nil
}

// RenderSync implements SyncHandler.
func (f Func) RenderSync(attrs *Attributes, content string) Result {
	return f(attrs, content)
}

// ContextFunc adapts a context-aware function to a Handler. Use it for
// handlers that wait on I/O; they run under Engine.Render only.
type ContextFunc func(ctx context.Context, attrs *Attributes, content string) (Result, error)

// Render implements Handler.
func (f ContextFunc) Render(ctx context.Context, attrs *Attributes, content string) (Result, error) {
	return f(ctx, attrs, content)
}

// isNilHandler catches untyped nil as well as typed nils such as a nil Func
// stored in the interface.
func isNilHandler(h Handler) bool {
	if h == nil {
		return true
	}
	switch fn := h.(type) {
	case Func:
		return fn == nil
	case ContextFunc:
		return fn == nil
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
