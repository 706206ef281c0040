package shortcode

import (
	"context"
	"sync"
	"time"
)

// HookPoint identifies when a hook is called during a render.
type HookPoint string

// Hook points for render lifecycle events.
const (
	// HookBeforeRender is called once per Render/RenderSync call, before scanning.
	HookBeforeRender HookPoint = "before_render"

	// HookAfterRender is called after the render finishes (success or failure).
	HookAfterRender HookPoint = "after_render"

	// HookBeforeInvoke is called before each handler call.
	HookBeforeInvoke HookPoint = "before_invoke"

	// HookAfterInvoke is called after each handler call (success or failure).
	HookAfterInvoke HookPoint = "after_invoke"
)

// Hook is a function called at specific points during a render.
// Return an error to abort the render (for "before" hooks).
// Errors from "after" hooks are logged but don't affect the render result.
type Hook func(ctx context.Context, point HookPoint, data *HookData) error

// HookData carries context information to hooks.
type HookData struct {
	// Mode is "blocking" for RenderSync and "suspending" for Render.
	Mode string

	// Input is the text passed to the render call.
	Input string

	// Output is the rendered text (after_render) or the handler's
	// replacement text (after_invoke).
	Output string

	// Substituted reports whether the handler replaced its tag (after_invoke).
	Substituted bool

	// TagName is the tag being invoked (invoke hooks only).
	TagName string

	// Attributes are the tag's cast attributes (invoke hooks only).
	Attributes *Attributes

	// Content is the rendered inner content passed to the handler.
	Content string

	// Depth is the nesting depth of the tag (0 = top level).
	Depth int

	// Error is any error that occurred (for after_* hooks).
	Error error

	// Metadata allows hooks to pass data to each other.
	Metadata map[string]any
}

// NewHookData creates a new HookData for a render call.
func NewHookData(mode, input string) *HookData {
	return &HookData{
		Mode:     mode,
		Input:    input,
		Metadata: make(map[string]any),
	}
}

// WithOutput sets the output text.
func (d *HookData) WithOutput(output string) *HookData {
	d.Output = output
	return d
}

// WithError sets the error.
func (d *HookData) WithError(err error) *HookData {
	d.Error = err
	return d
}

// SetMetadata sets a metadata value.
func (d *HookData) SetMetadata(key string, value any) {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any)
	}
	d.Metadata[key] = value
}

// GetMetadata gets a metadata value.
func (d *HookData) GetMetadata(key string) (any, bool) {
	if d.Metadata == nil {
		return nil, false
	}
	v, ok := d.Metadata[key]
	return v, ok
}

// HookRegistry manages hook registration and execution.
type HookRegistry struct {
	mu    sync.RWMutex
	hooks map[HookPoint][]Hook
}

// NewHookRegistry creates a new hook registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		hooks: make(map[HookPoint][]Hook),
	}
}

// Register adds a hook for the specified point.
func (r *HookRegistry) Register(point HookPoint, hook Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[point] = append(r.hooks[point], hook)
}

// RegisterMultiple adds a hook for multiple points.
func (r *HookRegistry) RegisterMultiple(hook Hook, points ...HookPoint) {
	for _, point := range points {
		r.Register(point, hook)
	}
}

// Clear removes all hooks for a specific point.
func (r *HookRegistry) Clear(point HookPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.hooks, point)
}

// ClearAll removes all hooks.
func (r *HookRegistry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = make(map[HookPoint][]Hook)
}

// Run executes all hooks for the specified point.
// For "before" hooks, the first error stops execution and is returned.
// For "after" hooks, every hook runs and the first error is returned.
func (r *HookRegistry) Run(ctx context.Context, point HookPoint, data *HookData) error {
	hooks := r.snapshot(point)
	if len(hooks) == 0 {
		return nil
	}

	isBefore := isBeforeHook(point)

	var first error
	for _, hook := range hooks {
		if err := hook(ctx, point, data); err != nil {
			if isBefore {
				return err
			}
			if first == nil {
				first = err
			}
		}
	}

	return first
}

// RunWithErrors executes all hooks and returns all errors.
func (r *HookRegistry) RunWithErrors(ctx context.Context, point HookPoint, data *HookData) []error {
	hooks := r.snapshot(point)
	if len(hooks) == 0 {
		return nil
	}

	var errs []error
	for _, hook := range hooks {
		if err := hook(ctx, point, data); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// Count returns the number of hooks registered for a point.
func (r *HookRegistry) Count(point HookPoint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks[point])
}

// HasHooks checks if any hooks are registered for a point.
func (r *HookRegistry) HasHooks(point HookPoint) bool {
	return r.Count(point) > 0
}

func (r *HookRegistry) snapshot(point HookPoint) []Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hooks[point]
}

// isBeforeHook checks if a hook point is a "before" hook.
func isBeforeHook(point HookPoint) bool {
	switch point {
	case HookBeforeRender, HookBeforeInvoke:
		return true
	default:
		return false
	}
}

// LoggingHook creates a hook that hands every event to logFn.
func LoggingHook(logFn func(point HookPoint, data *HookData)) Hook {
	return func(ctx context.Context, point HookPoint, data *HookData) error {
		logFn(point, data)
		return nil
	}
}

// TimingHook creates a hook that records when a "before" point fired.
// Call the returned function from an "after" hook to get the elapsed time.
func TimingHook() (Hook, func(*HookData) time.Duration) {
	const metadataKey = "_timing_start"

	hook := func(ctx context.Context, point HookPoint, data *HookData) error {
		if isBeforeHook(point) {
			data.SetMetadata(metadataKey, time.Now())
		}
		return nil
	}

	elapsed := func(data *HookData) time.Duration {
		start, ok := data.GetMetadata(metadataKey)
		if !ok {
			return 0
		}
		t, ok := start.(time.Time)
		if !ok {
			return 0
		}
		return time.Since(t)
	}

	return hook, elapsed
}
