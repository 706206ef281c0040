package internal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

// attrGrammar is shared by every parse. regexp2.Regexp is safe for
// concurrent use.
var attrGrammar = regexp2.MustCompile(AttrPattern, regexp2.IgnoreCase|regexp2.Multiline|regexp2.ECMAScript)

// Attributes is the ordered, type-coerced set of attributes of one tag.
// Values are int64, float64, bool or string (see CastValue).
type Attributes struct {
	keys   []string
	values map[string]any
}

// NewAttributes creates an empty attribute set.
func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]any)}
}

// Set stores a value. A key that is already present keeps its position.
func (a *Attributes) Set(key string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, exists := a.values[key]; !exists {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get retrieves a value, returning ok=false if not found.
func (a *Attributes) Get(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.values[key]
	return v, ok
}

// Has checks if an attribute exists.
func (a *Attributes) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Keys returns the attribute keys in the order they first appeared.
func (a *Attributes) Keys() []string {
	if a == nil || len(a.keys) == 0 {
		return nil
	}
	keys := make([]string, len(a.keys))
	copy(keys, a.keys)
	return keys
}

// Map returns a copy of the attributes as a plain map.
func (a *Attributes) Map() map[string]any {
	if a == nil {
		return make(map[string]any)
	}
	result := make(map[string]any, len(a.values))
	for k, v := range a.values {
		result[k] = v
	}
	return result
}

// String returns the value as text. Non-string scalars are formatted, so
// src=42 yields "42". Missing keys yield "".
func (a *Attributes) String(key string) string {
	v, ok := a.Get(key)
	if !ok {
		return StringValueEmpty
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// GetDefault returns the attribute as text, or defaultVal when it is missing.
func (a *Attributes) GetDefault(key, defaultVal string) string {
	if !a.Has(key) {
		return defaultVal
	}
	return a.String(key)
}

// Int returns the value when it was cast to an integer.
func (a *Attributes) Int(key string) (int64, bool) {
	v, ok := a.Get(key)
	if !ok {
		return 0, false
	}
	n, ok := v.(int64)
	return n, ok
}

// Float returns the value as a float64. Integers are widened.
func (a *Attributes) Float(key string) (float64, bool) {
	v, ok := a.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Bool returns the value when it was cast to a boolean.
func (a *Attributes) Bool(key string) (bool, bool) {
	v, ok := a.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// GoString renders the attributes sorted by key, for debugging.
func (a *Attributes) GoString() string {
	if a.Len() == 0 {
		return "{}"
	}
	keys := a.Keys()
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%#v", k, a.values[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ParseAttributes tokenizes raw attribute text and casts every key/value
// token. Tokens without a key are dropped; the last value of a repeated
// key wins.
func ParseAttributes(raw string) (*Attributes, error) {
	attrs := NewAttributes()
	if strings.TrimSpace(raw) == StringValueEmpty {
		return attrs, nil
	}

	m, err := attrGrammar.FindStringMatch(raw)
	for ; m != nil && err == nil; m, err = attrGrammar.FindNextMatch(m) {
		key, value, ok := attrPair(m)
		if !ok {
			continue
		}
		attrs.Set(strings.TrimSpace(key), CastValue(strings.TrimSpace(value)))
	}
	if err != nil {
		return nil, fmt.Errorf(ErrFmtTagMessage, ErrMsgAttrScan, err.Error())
	}

	return attrs, nil
}

// attrPair returns the key/value of whichever keyed alternative matched.
func attrPair(m *regexp2.Match) (string, string, bool) {
	pairs := [][2]int{
		{AttrGroupDoubleKey, AttrGroupDoubleValue},
		{AttrGroupSingleKey, AttrGroupSingleValue},
		{AttrGroupBareKey, AttrGroupBareValue},
	}
	for _, p := range pairs {
		k := m.GroupByNumber(p[0])
		v := m.GroupByNumber(p[1])
		if captured(k) && captured(v) {
			return k.String(), v.String(), true
		}
	}
	return StringValueEmpty, StringValueEmpty, false
}

// captured reports whether a group took part in the match. An empty
// capture still counts.
func captured(g *regexp2.Group) bool {
	return g != nil && len(g.Captures) > 0
}
