package shortcode

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/itsatony/go-cuserr"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/itsatony/go-shortcode/internal"
)

// Render replaces every registered tag in text with its handler's output.
// Any Handler may be registered. Handlers run one at a time, left to right;
// ctx is checked before each one and before each nested render.
func (e *Engine) Render(ctx context.Context, text string) (string, error) {
	return e.render(ctx, text, false)
}

// RenderSync is Render for callers without a context. Every handler it
// meets must be a SyncHandler (such as Func); a context-aware handler fails
// the render with ErrInvalidArgument.
func (e *Engine) RenderSync(text string) (string, error) {
	return e.render(context.Background(), text, true)
}

func (e *Engine) render(ctx context.Context, text string, blocking bool) (out string, err error) {
	if !utf8.ValidString(text) {
		return "", NewInvalidArgumentError(FieldText, ErrMsgInvalidText)
	}
	if strings.TrimSpace(text) == "" {
		e.logger.Debug(LogMsgRenderSkipped)
		return text, nil
	}

	mode := RenderModeNameSuspending
	if blocking {
		mode = RenderModeNameBlocking
	}

	ctx, span := e.startRenderSpan(ctx, mode, text)
	defer func() {
		if err == nil {
			span.SetAttributes(attribute.Int(SpanAttrOutputLen, len(out)))
		}
		endSpan(span, err)
	}()

	var data *HookData
	if e.hooks.HasHooks(HookBeforeRender) || e.hooks.HasHooks(HookAfterRender) {
		data = NewHookData(mode, text)
	}
	if data != nil {
		if hookErr := e.hooks.Run(ctx, HookBeforeRender, data); hookErr != nil {
			return "", NewHookError(HookBeforeRender, hookErr)
		}
	}

	out, err = e.dispatch(ctx, text, mode, blocking)

	if data != nil {
		data.WithOutput(out).WithError(err)
		e.runAfterHooks(ctx, HookAfterRender, data)
	}

	if err != nil {
		e.logger.Debug(LogMsgRenderFailed, zap.String(LogFieldMode, mode), zap.Error(err))
		return "", err
	}
	return out, nil
}

// runAfterHooks runs every hook at point and logs each failure. After-hook
// errors never change the render result.
func (e *Engine) runAfterHooks(ctx context.Context, point HookPoint, data *HookData) {
	for _, hookErr := range e.hooks.RunWithErrors(ctx, point, data) {
		e.logger.Warn(LogMsgAfterHookFailed,
			zap.String(LogFieldHook, string(point)),
			zap.Error(hookErr),
		)
	}
}

// dispatch renders text against a snapshot of the registry taken now.
func (e *Engine) dispatch(ctx context.Context, text, mode string, blocking bool) (string, error) {
	entries := e.registry.Snapshot()

	names := make([]string, len(entries))
	handlers := make(map[string]Handler, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
		handlers[entry.Name] = entry.Value
	}

	grammar, err := e.grammars.Get(names)
	if err != nil {
		return "", NewRenderError(err)
	}

	inv := &invoker{
		engine:   e,
		handlers: handlers,
		mode:     mode,
		blocking: blocking,
	}
	dispatcher := internal.NewDispatcher(grammar, inv, internal.DispatcherConfig{
		MaxDepth: e.config.maxDepth,
		Mode:     e.config.mode,
	}, e.logger)

	out, err := dispatcher.Render(ctx, text)
	if err != nil {
		return "", renderError(err)
	}
	return out, nil
}

// renderError maps dispatcher failures onto the package's error taxonomy.
// Errors built by this package pass through untouched.
func renderError(err error) error {
	if _, ok := err.(*cuserr.CustomError); ok {
		return err
	}
	var depthErr *internal.DepthError
	if errors.As(err, &depthErr) {
		return NewMaxDepthError(depthErr.TagName, depthErr.Depth, depthErr.MaxDepth)
	}
	return NewRenderError(err)
}

// invoker runs handlers for one render call.
type invoker struct {
	engine   *Engine
	handlers map[string]Handler
	mode     string
	blocking bool
}

func (i *invoker) Has(name string) bool {
	_, ok := i.handlers[name]
	return ok
}

func (i *invoker) Invoke(ctx context.Context, inv internal.Invocation) (internal.Outcome, error) {
	e := i.engine
	h := i.handlers[inv.Name]

	var syncHandler SyncHandler
	if i.blocking {
		s, ok := h.(SyncHandler)
		if !ok {
			return internal.Outcome{}, NewAsyncHandlerError(inv.Name)
		}
		syncHandler = s
	}

	var data *HookData
	if e.hooks.HasHooks(HookBeforeInvoke) || e.hooks.HasHooks(HookAfterInvoke) {
		data = NewHookData(i.mode, inv.Match.Full)
		data.TagName = inv.Name
		data.Attributes = inv.Attrs
		data.Content = inv.Content
		data.Depth = inv.Depth
		if hookErr := e.hooks.Run(ctx, HookBeforeInvoke, data); hookErr != nil {
			return internal.Outcome{}, NewHookError(HookBeforeInvoke, hookErr)
		}
	}

	spanCtx, span := e.startInvokeSpan(ctx, inv.Name, inv.Depth)

	var (
		result Result
		err    error
	)
	if syncHandler != nil {
		result = syncHandler.RenderSync(inv.Attrs, inv.Content)
	} else {
		result, err = h.Render(spanCtx, inv.Attrs, inv.Content)
	}
	if err != nil {
		err = NewHandlerError(inv.Name, err)
	}

	text, substituted := result.Text()
	if err == nil && substituted {
		text = e.sanitize(text)
	}
	span.SetAttributes(attribute.Bool(SpanAttrSubstituted, err == nil && substituted))
	endSpan(span, err)

	if data != nil {
		data.Output = text
		data.Substituted = err == nil && substituted
		data.Error = err
		e.runAfterHooks(ctx, HookAfterInvoke, data)
	}

	if err != nil {
		return internal.Outcome{}, err
	}
	return internal.Outcome{Text: text, Substituted: substituted}, nil
}
