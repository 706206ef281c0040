package shortcode

import (
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/itsatony/go-shortcode/internal"
)

// SubstitutionMode selects how a handler's output is written back.
type SubstitutionMode = internal.SubstitutionMode

const (
	// SubstituteGlobal replaces every occurrence of the tag's exact text in
	// the document built so far. Identical tags all receive the output of
	// the first one rendered.
	SubstituteGlobal = internal.SubstituteGlobal

	// SubstituteSpan replaces only the text where the tag was found.
	SubstituteSpan = internal.SubstituteSpan
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	maxDepth        int
	mode            SubstitutionMode
	matchTimeout    time.Duration
	grammarCacheTTL time.Duration
	tracer          trace.Tracer
	policy          *bluemonday.Policy
	hooks           *HookRegistry
	logger          *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		maxDepth:        DefaultMaxDepth,
		mode:            SubstituteGlobal,
		matchTimeout:    DefaultMatchTimeout,
		grammarCacheTTL: DefaultGrammarCacheTTL,
	}
}

// WithMaxDepth limits how deep nested tags are rendered. Exceeding it fails
// the render.
// Use 0 for unlimited depth.
// Default: 0
func WithMaxDepth(depth int) Option {
	return func(c *engineConfig) {
		c.maxDepth = depth
	}
}

// WithSubstitutionMode sets how handler output is written back.
// Default: SubstituteGlobal
func WithSubstitutionMode(mode SubstitutionMode) Option {
	return func(c *engineConfig) {
		c.mode = mode
	}
}

// WithMatchTimeout bounds the time a single regular expression match may
// take. Zero means no bound.
func WithMatchTimeout(d time.Duration) Option {
	return func(c *engineConfig) {
		c.matchTimeout = d
	}
}

// WithGrammarCache sets how long compiled tag grammars stay cached after
// they are built. Zero or negative keeps them for the life of the engine.
// Default: 10 minutes
func WithGrammarCache(ttl time.Duration) Option {
	return func(c *engineConfig) {
		c.grammarCacheTTL = ttl
	}
}

// WithTracer sets the OpenTelemetry tracer used for render and invoke spans.
// Default: nil (no-op tracer)
func WithTracer(tracer trace.Tracer) Option {
	return func(c *engineConfig) {
		c.tracer = tracer
	}
}

// WithOutputPolicy sanitizes every handler's replacement text with policy.
// Default: nil (output is used as returned)
func WithOutputPolicy(policy *bluemonday.Policy) Option {
	return func(c *engineConfig) {
		c.policy = policy
	}
}

// WithHooks attaches a hook registry.
// Default: an empty registry, reachable through Engine.Hooks
func WithHooks(hooks *HookRegistry) Option {
	return func(c *engineConfig) {
		c.hooks = hooks
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
