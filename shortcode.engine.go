package shortcode

import (
	"errors"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/itsatony/go-shortcode/internal"
)

// Shortcode is a named handler.
type Shortcode struct {
	Name    string
	Handler Handler
}

// Engine holds a set of shortcodes and renders text against them.
// Each Engine has its own registry; engines never share handlers.
type Engine struct {
	registry *internal.Registry[Handler]
	grammars *internal.GrammarCache
	hooks    *HookRegistry
	tracer   trace.Tracer
	config   *engineConfig
	logger   *zap.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tracer := config.tracer
	if tracer == nil {
		tracer = defaultTracer()
	}

	hooks := config.hooks
	if hooks == nil {
		hooks = NewHookRegistry()
	}

	grammarConfig := internal.GrammarConfig{
		MatchTimeout: config.matchTimeout,
	}

	logger.Debug(LogMsgEngineCreated,
		zap.String(LogFieldMode, config.mode.String()),
		zap.Int(LogFieldMaxDepth, config.maxDepth),
	)

	return &Engine{
		registry: internal.NewRegistry[Handler](logger),
		grammars: internal.NewGrammarCache(config.grammarCacheTTL, grammarConfig, logger),
		hooks:    hooks,
		tracer:   tracer,
		config:   config,
		logger:   logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

func (c *engineConfig) validate() error {
	if c.maxDepth < 0 {
		return NewConfigError(FieldMaxDepth, strconv.Itoa(c.maxDepth), ErrMsgInvalidMaxDepth)
	}
	if c.mode != SubstituteGlobal && c.mode != SubstituteSpan {
		return NewConfigError(FieldMode, strconv.Itoa(int(c.mode)), ErrMsgInvalidMode)
	}
	if c.matchTimeout < 0 {
		return NewConfigError(FieldTimeout, c.matchTimeout.String(), ErrMsgInvalidDuration)
	}
	return nil
}

// Add registers a handler under name. The name is trimmed; it must not be
// empty or already registered.
func (e *Engine) Add(name string, h Handler) error {
	trimmed, err := validateEntry(name, h)
	if err != nil {
		return err
	}
	if err := e.registry.Add(trimmed, h); err != nil {
		return e.registryError(trimmed, err)
	}
	return nil
}

// MustAdd registers a handler and panics if registration fails.
func (e *Engine) MustAdd(name string, h Handler) {
	if err := e.Add(name, h); err != nil {
		panic(err)
	}
}

// AddRange registers each entry in order. It stops at the first invalid or
// duplicate entry; entries before it stay registered. The returned error
// carries the failing index in its metadata.
func (e *Engine) AddRange(entries []Shortcode) error {
	if entries == nil {
		return NewInvalidArgumentError(FieldEntries, ErrMsgNilRange)
	}
	for i, entry := range entries {
		if err := e.Add(entry.Name, entry.Handler); err != nil {
			return NewRangeEntryError(i, err)
		}
	}
	return nil
}

// Remove unregisters name. Removing a name that is not registered is not an
// error.
func (e *Engine) Remove(name string) error {
	if _, err := e.registry.Remove(name); err != nil {
		return e.registryError(name, err)
	}
	return nil
}

// Clear unregisters every shortcode.
func (e *Engine) Clear() {
	e.registry.Clear()
}

// Override replaces the handler of an existing shortcode, keeping its
// position. It returns false, and changes nothing, when name is not
// registered.
func (e *Engine) Override(name string, h Handler) (bool, error) {
	trimmed, err := validateEntry(name, h)
	if err != nil {
		return false, err
	}
	ok, err := e.registry.Override(trimmed, h)
	if err != nil {
		return false, e.registryError(trimmed, err)
	}
	return ok, nil
}

// List returns the registered shortcodes in registration order.
func (e *Engine) List() []Shortcode {
	entries := e.registry.Snapshot()
	list := make([]Shortcode, len(entries))
	for i, entry := range entries {
		list[i] = Shortcode{Name: entry.Name, Handler: entry.Value}
	}
	return list
}

// Has reports whether name is registered.
func (e *Engine) Has(name string) bool {
	return e.registry.Has(strings.TrimSpace(name))
}

// Count returns the number of registered shortcodes.
func (e *Engine) Count() int {
	return e.registry.Count()
}

// Names returns the registered names in registration order.
func (e *Engine) Names() []string {
	return e.registry.Names()
}

// Hooks returns the engine's hook registry.
func (e *Engine) Hooks() *HookRegistry {
	return e.hooks
}

func validateEntry(name string, h Handler) (string, error) {
	trimmed, err := internal.NormalizeName(name)
	if err != nil {
		return "", NewEmptyNameError()
	}
	if isNilHandler(h) {
		return "", NewNilHandlerError(trimmed)
	}
	return trimmed, nil
}

func (e *Engine) registryError(name string, err error) error {
	switch {
	case errors.Is(err, internal.ErrEmptyName):
		return NewEmptyNameError()
	case errors.Is(err, internal.ErrDuplicateName):
		return NewDuplicateNameError(name)
	default:
		return NewInvalidArgumentError(FieldName, err.Error())
	}
}
