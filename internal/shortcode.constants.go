package internal

// Tag grammar fragments. The expression recognizes
//
//	[name attrs]                  open tag
//	[name attrs/]                 self-closing tag
//	[name attrs]inner[/name]      paired tag
//	[[name attrs]]                escaped tag (any of the forms above, doubled)
//
// Capture groups are numbered by the Group constants below.
const (
	TagPatternPrefix = `\[(\[?)`
	TagPatternSuffix = `(?![\w-])([^\]\/]*(?:\/(?!\])[^\]\/]*)*?)(?:(\/)\]|\](?:([^\[]*(?:\[(?!\/\2\])[^\[]*)*)\[\/\2\])?)(\]?)`

	// TagPatternNoNames stands in for the name alternation when the
	// registry is empty. It never matches.
	TagPatternNoNames = `(?!)`

	TagNameSeparator = "|"
)

// Tag grammar capture groups
const (
	GroupFull        = 0
	GroupOpenEscape  = 1
	GroupName        = 2
	GroupAttributes  = 3
	GroupSelfClosing = 4
	GroupInner       = 5
	GroupCloseEscape = 6
)

// AttrPattern tokenizes an attribute string. Alternatives, in priority order:
//
//	key="value"   key='value'   key=value   "value"   'value'   token
const AttrPattern = `([\w-]+)\s*=\s*"([^"]*)"(?:\s|$)|([\w-]+)\s*=\s*'([^']*)'(?:\s|$)|([\w-]+)\s*=\s*([^\s'"]+)(?:\s|$)|"([^"]*)"(?:\s|$)|'([^']*)'(?:\s|$)|(\S+)(?:\s|$)`

// Attribute grammar capture groups that expose a key/value pair
const (
	AttrGroupDoubleKey   = 1
	AttrGroupDoubleValue = 2
	AttrGroupSingleKey   = 3
	AttrGroupSingleValue = 4
	AttrGroupBareKey     = 5
	AttrGroupBareValue   = 6
)

// Bracket escaping
const (
	CharOpenBracket    = '['
	CharCloseBracket   = ']'
	EntityOpenBracket  = "&#91;"
	EntityCloseBracket = "&#93;"
)

// Type caster literals
const (
	LiteralTrue  = "true"
	LiteralFalse = "false"
	CharDot      = '.'
	NumberBase   = 10
	IntBitSize   = 64
	FloatBitSize = 64
)

// SubstitutionMode selects how a rendered match is written back into the output.
type SubstitutionMode int

const (
	// SubstituteGlobal replaces every textual occurrence of the raw match
	// in the current output.
	SubstituteGlobal SubstitutionMode = iota
	// SubstituteSpan replaces only the span the match was found at.
	SubstituteSpan
)

// Substitution mode names (used by configuration)
const (
	SubstitutionNameGlobal = "global"
	SubstitutionNameSpan   = "span"
)

// String returns the configuration name of the mode.
func (m SubstitutionMode) String() string {
	switch m {
	case SubstituteSpan:
		return SubstitutionNameSpan
	default:
		return SubstitutionNameGlobal
	}
}

// Grammar cache key parts
const (
	GrammarCacheKeyEmpty = "\x00"
	GrammarCacheKeySep   = ":"
)

// Log message constants
const (
	LogMsgRegistryCreated     = "registry created"
	LogMsgShortcodeAdded      = "shortcode added"
	LogMsgShortcodeRemoved    = "shortcode removed"
	LogMsgShortcodeOverridden = "shortcode overridden"
	LogMsgShortcodeCollision  = "shortcode registration collision"
	LogMsgRegistryCleared     = "registry cleared"
	LogMsgGrammarBuilt        = "tag grammar built"
	LogMsgGrammarCacheHit     = "tag grammar cache hit"
	LogMsgDispatcherStart     = "starting render"
	LogMsgDispatcherEnd       = "render complete"
	LogMsgTagEscaped          = "escaped tag emitted literally"
	LogMsgTagUnknown          = "no shortcode registered for tag, passing through"
	LogMsgTagInvoked          = "shortcode invoked"
	LogMsgTagUnchanged        = "shortcode left match unchanged"
	LogMsgNestedRender        = "rendering nested content"
)

// Log field names
const (
	LogFieldTagName   = "tag_name"
	LogFieldNames     = "names"
	LogFieldCount     = "count"
	LogFieldMatches   = "match_count"
	LogFieldDepth     = "depth"
	LogFieldLength    = "source_length"
	LogFieldRemoved   = "removed"
	LogFieldMode      = "mode"
	LogFieldSelfClose = "self_closing"
)

// Error message constants
const (
	ErrMsgEmptyName        = "shortcode name cannot be empty"
	ErrMsgDuplicateName    = "shortcode already registered"
	ErrMsgGrammarCompile   = "failed to compile tag grammar"
	ErrMsgGrammarScan      = "failed to scan text for tags"
	ErrMsgAttrScan         = "failed to scan tag attributes"
	ErrMsgMaxDepthExceeded = "maximum nesting depth exceeded"
	ErrFmtTagMessage       = "%s: %s"
)

// StringValueEmpty is the empty string, named for comparisons.
const StringValueEmpty = ""
