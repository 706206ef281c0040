package shortcode

import (
	"time"
)

// Default configuration values
const (
	DefaultMaxDepth        = 0 // unlimited
	DefaultGrammarCacheTTL = 10 * time.Minute
	DefaultMatchTimeout    = time.Duration(0) // regexp2 default, no timeout
)

// TracerName is the instrumentation name used for spans.
const TracerName = "github.com/itsatony/go-shortcode"

// Span names and attributes
const (
	SpanRender          = "shortcode.render"
	SpanInvoke          = "shortcode.invoke"
	SpanAttrMode        = "shortcode.mode"
	SpanAttrSourceLen   = "shortcode.source_length"
	SpanAttrOutputLen   = "shortcode.output_length"
	SpanAttrTagName     = "shortcode.tag"
	SpanAttrDepth       = "shortcode.depth"
	SpanAttrSubstituted = "shortcode.substituted"
	SpanAttrRegistered  = "shortcode.registered"
)

// Render mode names
const (
	RenderModeNameBlocking   = "blocking"
	RenderModeNameSuspending = "suspending"
)

// Sanitize policy names (used by configuration)
const (
	SanitizeNone   = "none"
	SanitizeStrict = "strict"
	SanitizeUGC    = "ugc"
)

// Log message constants
const (
	LogMsgEngineCreated   = "engine created"
	LogMsgRenderSkipped   = "blank input, render skipped"
	LogMsgRenderFailed    = "render failed"
	LogMsgAfterHookFailed = "after hook failed"
)

// Log field names
const (
	LogFieldMode     = "mode"
	LogFieldMaxDepth = "max_depth"
	LogFieldHook     = "hook"
)
