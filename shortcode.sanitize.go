package shortcode

import (
	"github.com/microcosm-cc/bluemonday"
)

// SanitizePolicy returns the bluemonday policy for a configuration name:
// nil for "none" or "", StrictPolicy for "strict", UGCPolicy for "ugc".
func SanitizePolicy(name string) (*bluemonday.Policy, error) {
	switch name {
	case "", SanitizeNone:
		return nil, nil
	case SanitizeStrict:
		return bluemonday.StrictPolicy(), nil
	case SanitizeUGC:
		return bluemonday.UGCPolicy(), nil
	default:
		return nil, NewConfigError(FieldSanitize, name, ErrMsgInvalidSanitize)
	}
}

// sanitize runs the engine's output policy over a handler's replacement.
func (e *Engine) sanitize(text string) string {
	if e.config.policy == nil || text == "" {
		return text
	}
	return e.config.policy.Sanitize(text)
}
