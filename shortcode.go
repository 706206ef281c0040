// Package shortcode renders bracket-delimited shortcodes embedded in text.
//
// A shortcode is a tag in square brackets that names a registered handler:
//
//	[image src="/a.jpg"]
//	[quote author='Ada']Simple things should be simple.[/quote]
//	[hr/]
//
// # Basic Usage
//
// Create an engine, register handlers, render:
//
//	engine := shortcode.MustNew()
//	engine.MustAdd("image", shortcode.Func(func(attrs *shortcode.Attributes, content string) shortcode.Result {
//	    return shortcode.Substitute(`<img src="` + attrs.String("src") + `">`)
//	}))
//
//	out, err := engine.Render(ctx, `[image src="/a.jpg"]`)
//	// out: <img src="/a.jpg">
//
// # Tag Syntax
//
// Open tags: [name attr="v" attr2='v2' attr3=bare]
//
// Self-closing tags: [name attr="v"/]
//
// Paired tags: [name]inner content[/name]. Inner content is trimmed and
// rendered before the outer handler runs, so handlers receive the output of
// any tags nested inside.
//
// Escaped tags: doubling the brackets, as in [[name]], prints the tag with
// its brackets as HTML entities (&#91;name&#93;) instead of rendering it.
//
// Attribute values are cast: "42" arrives as int64, "4.2" as float64,
// "true"/"false" as bool; everything else is a string. Keyless tokens are
// ignored.
//
// Tag names are matched case-insensitively in the text but looked up
// case-sensitively in the registry. A tag with no registered handler is left
// as written.
//
// # Handlers
//
// Func handlers are synchronous and work with both Render and RenderSync.
// ContextFunc handlers receive the render context and may block on I/O; they
// work with Render only. RenderSync rejects them with an error rather than
// blocking.
//
// A handler returns Substitute(text) to replace its tag, or Unchanged() to
// leave the tag in place.
//
// # Substitution
//
// By default a handler's output replaces every occurrence of the exact tag
// text in the document, matching historical output. WithSubstitutionMode
// (SubstituteSpan) restricts each replacement to the position where the tag
// was found.
//
// # Concurrency
//
// Registry methods are safe for concurrent use. Each render takes a snapshot
// of the registry when it starts; handlers added or removed during a render
// take effect on the next one. Handlers within one render run one at a time,
// left to right.
//
// # Configuration
//
// Customize the engine with functional options:
//
//	engine, _ := shortcode.New(
//	    shortcode.WithLogger(logger),
//	    shortcode.WithMaxDepth(32),
//	    shortcode.WithSubstitutionMode(shortcode.SubstituteSpan),
//	)
//
// or load the same settings from YAML with LoadConfig.
package shortcode
