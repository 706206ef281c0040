package shortcode

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Argument errors
	ErrMsgInvalidArgument = "invalid argument"
	ErrMsgEmptyName       = "shortcode name cannot be empty"
	ErrMsgNilHandler      = "shortcode handler cannot be nil"
	ErrMsgNilRange        = "shortcode list cannot be nil"
	ErrMsgInvalidText     = "text must be valid UTF-8"
	ErrMsgAsyncHandler    = "handler is context-aware and cannot run in RenderSync; use Render"

	// Registry errors
	ErrMsgDuplicateName = "shortcode already registered"

	// Render errors
	ErrMsgRenderFailed     = "shortcode render failed"
	ErrMsgHandlerFailed    = "shortcode handler failed"
	ErrMsgMaxDepthExceeded = "maximum nesting depth exceeded"
	ErrMsgHookAborted      = "render aborted by hook"

	// Configuration errors
	ErrMsgConfigRead      = "failed to read configuration"
	ErrMsgConfigParse     = "failed to parse configuration"
	ErrMsgInvalidMaxDepth = "max_depth cannot be negative"
	ErrMsgInvalidMode     = "unknown substitution mode"
	ErrMsgInvalidDuration = "invalid duration"
	ErrMsgInvalidSanitize = "unknown sanitize policy"
)

// Error code constants for categorization
const (
	ErrCodeInvalidArgument = "SHORTCODE_INVALID_ARGUMENT"
	ErrCodeDuplicateName   = "SHORTCODE_DUPLICATE_NAME"
	ErrCodeRender          = "SHORTCODE_RENDER"
)

// Metadata keys
const (
	MetaKeyTag      = "tag"
	MetaKeyField    = "field"
	MetaKeyIndex    = "index"
	MetaKeyDepth    = "depth"
	MetaKeyMaxDepth = "max_depth"
	MetaKeyHook     = "hook"
	MetaKeyValue    = "value"
	MetaKeyPath     = "path"
)

// Metadata field values
const (
	FieldName     = "name"
	FieldHandler  = "handler"
	FieldEntries  = "entries"
	FieldText     = "text"
	FieldMaxDepth = "max_depth"
	FieldMode     = "substitution"
	FieldTimeout  = "match_timeout"
	FieldCacheTTL = "grammar_cache_ttl"
	FieldSanitize = "sanitize"
)

// Sentinel errors. Every error returned by this package wraps one of them,
// so callers can branch with errors.Is.
var (
	ErrInvalidArgument = errors.New(ErrMsgInvalidArgument)
	ErrDuplicateName   = errors.New(ErrMsgDuplicateName)
	ErrRenderFailed    = errors.New(ErrMsgRenderFailed)
)

// NewInvalidArgumentError creates an error for a rejected argument.
func NewInvalidArgumentError(field, msg string) error {
	return cuserr.WrapStdError(ErrInvalidArgument, ErrCodeInvalidArgument, msg).
		WithMetadata(MetaKeyField, field)
}

// NewEmptyNameError creates an error for a name that is empty after trimming.
func NewEmptyNameError() error {
	return NewInvalidArgumentError(FieldName, ErrMsgEmptyName)
}

// NewNilHandlerError creates an error for a nil handler.
func NewNilHandlerError(name string) error {
	return cuserr.WrapStdError(ErrInvalidArgument, ErrCodeInvalidArgument, ErrMsgNilHandler).
		WithMetadata(MetaKeyField, FieldHandler).
		WithMetadata(MetaKeyTag, name)
}

// NewRangeEntryError tags an AddRange failure with the offending index.
func NewRangeEntryError(index int, err error) error {
	var customErr *cuserr.CustomError
	if errors.As(err, &customErr) {
		return customErr.WithMetadata(MetaKeyIndex, strconv.Itoa(index))
	}
	return err
}

// NewDuplicateNameError creates a registry collision error.
func NewDuplicateNameError(name string) error {
	return cuserr.WrapStdError(ErrDuplicateName, ErrCodeDuplicateName, ErrMsgDuplicateName).
		WithMetadata(MetaKeyTag, name)
}

// NewAsyncHandlerError creates an error for a context-aware handler met
// during a blocking render.
func NewAsyncHandlerError(name string) error {
	return cuserr.WrapStdError(ErrInvalidArgument, ErrCodeInvalidArgument, ErrMsgAsyncHandler).
		WithMetadata(MetaKeyField, FieldHandler).
		WithMetadata(MetaKeyTag, name)
}

// NewHandlerError wraps an error returned by a handler.
func NewHandlerError(name string, cause error) error {
	return cuserr.WrapStdError(renderCause(cause), ErrCodeRender, ErrMsgHandlerFailed).
		WithMetadata(MetaKeyTag, name)
}

// NewMaxDepthError creates an error for nesting deeper than allowed.
func NewMaxDepthError(name string, depth, maxDepth int) error {
	return cuserr.WrapStdError(ErrRenderFailed, ErrCodeRender, ErrMsgMaxDepthExceeded).
		WithMetadata(MetaKeyTag, name).
		WithMetadata(MetaKeyDepth, strconv.Itoa(depth)).
		WithMetadata(MetaKeyMaxDepth, strconv.Itoa(maxDepth))
}

// NewHookError wraps an error from a "before" hook that aborted a render.
func NewHookError(point HookPoint, cause error) error {
	return cuserr.WrapStdError(renderCause(cause), ErrCodeRender, ErrMsgHookAborted).
		WithMetadata(MetaKeyHook, string(point))
}

// NewRenderError wraps any other failure during a render (cancellation,
// grammar timeouts).
func NewRenderError(cause error) error {
	return cuserr.WrapStdError(renderCause(cause), ErrCodeRender, ErrMsgRenderFailed)
}

// NewConfigError creates an error for an invalid configuration value.
func NewConfigError(field, value, msg string) error {
	return cuserr.WrapStdError(ErrInvalidArgument, ErrCodeInvalidArgument, msg).
		WithMetadata(MetaKeyField, field).
		WithMetadata(MetaKeyValue, value)
}

// NewConfigReadError wraps a failure to read or decode configuration.
func NewConfigReadError(path, msg string, cause error) error {
	return cuserr.WrapStdError(fmt.Errorf("%w: %w", ErrInvalidArgument, cause), ErrCodeInvalidArgument, msg).
		WithMetadata(MetaKeyPath, path)
}

// renderCause joins ErrRenderFailed with the underlying cause so both
// match errors.Is.
func renderCause(cause error) error {
	if cause == nil {
		return ErrRenderFailed
	}
	return fmt.Errorf("%w: %w", ErrRenderFailed, cause)
}
