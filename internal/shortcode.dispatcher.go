package internal

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Invocation is a resolved tag ready to be handed to its shortcode.
type Invocation struct {
	Name    string      // Trimmed tag name
	Match   *TagMatch   // The raw match
	Attrs   *Attributes // Parsed, cast attributes
	Content string      // Inner content, already rendered
	Depth   int         // Nesting depth of the match (0 = top level)
}

// Outcome is what a shortcode did with its match.
type Outcome struct {
	Text        string
	Substituted bool
}

// Invoker looks up and runs shortcodes for the dispatcher. Blocking and
// suspending renders differ only in their Invoker.
type Invoker interface {
	// Has reports whether a shortcode is registered under the trimmed name.
	Has(name string) bool
	// Invoke runs the shortcode of inv.Name.
	Invoke(ctx context.Context, inv Invocation) (Outcome, error)
}

// DispatcherConfig holds dispatcher configuration options.
type DispatcherConfig struct {
	MaxDepth int              // Maximum nesting depth (0 = unlimited)
	Mode     SubstitutionMode // How rendered matches are written back
}

// DepthError is returned when nested content exceeds MaxDepth.
type DepthError struct {
	Depth    int
	MaxDepth int
	TagName  string
}

// Error implements the error interface.
func (e *DepthError) Error() string {
	return fmt.Sprintf("%s: depth %d > %d (tag %q)", ErrMsgMaxDepthExceeded, e.Depth, e.MaxDepth, e.TagName)
}

// Dispatcher renders text against one grammar. The grammar is fixed for
// the dispatcher's lifetime, so registry changes during a render do not
// affect it.
type Dispatcher struct {
	grammar *TagGrammar
	invoker Invoker
	config  DispatcherConfig
	logger  *zap.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(grammar *TagGrammar, invoker Invoker, config DispatcherConfig, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		grammar: grammar,
		invoker: invoker,
		config:  config,
		logger:  logger,
	}
}

// Render replaces every tag in text with its shortcode's output.
func (d *Dispatcher) Render(ctx context.Context, text string) (string, error) {
	d.logger.Debug(LogMsgDispatcherStart,
		zap.Int(LogFieldLength, len(text)),
		zap.String(LogFieldMode, d.config.Mode.String()),
	)

	out, err := d.render(ctx, text, 0, StringValueEmpty)
	if err != nil {
		return StringValueEmpty, err
	}

	d.logger.Debug(LogMsgDispatcherEnd, zap.Int(LogFieldLength, len(out)))
	return out, nil
}

func (d *Dispatcher) render(ctx context.Context, text string, depth int, parent string) (string, error) {
	if d.config.MaxDepth > 0 && depth > d.config.MaxDepth {
		return StringValueEmpty, &DepthError{Depth: depth, MaxDepth: d.config.MaxDepth, TagName: parent}
	}

	matches, err := d.grammar.Scan(text)
	if err != nil {
		return StringValueEmpty, err
	}
	if len(matches) == 0 {
		return text, nil
	}
	d.logger.Debug(LogMsgNestedRender, zap.Int(LogFieldMatches, len(matches)), zap.Int(LogFieldDepth, depth))

	if d.config.Mode == SubstituteSpan {
		return d.renderSpans(ctx, text, matches, depth)
	}
	return d.renderGlobal(ctx, text, matches, depth)
}

// renderGlobal writes each result over every occurrence of the raw match
// text in the output built so far.
func (d *Dispatcher) renderGlobal(ctx context.Context, text string, matches []TagMatch, depth int) (string, error) {
	output := text
	for i := range matches {
		m := &matches[i]
		replacement, ok, err := d.dispatch(ctx, m, depth)
		if err != nil {
			return StringValueEmpty, err
		}
		if ok {
			output = ReplaceLiteral(output, m.Full, replacement)
		}
	}
	return output, nil
}

// renderSpans writes each result over its own match only.
func (d *Dispatcher) renderSpans(ctx context.Context, text string, matches []TagMatch, depth int) (string, error) {
	runes := []rune(text)

	var sb strings.Builder
	sb.Grow(len(text))

	last := 0
	for i := range matches {
		m := &matches[i]
		replacement, ok, err := d.dispatch(ctx, m, depth)
		if err != nil {
			return StringValueEmpty, err
		}

		sb.WriteString(string(runes[last:m.Index]))
		if ok {
			sb.WriteString(replacement)
		} else {
			sb.WriteString(m.Full)
		}
		last = m.Index + m.Length
	}
	sb.WriteString(string(runes[last:]))

	return sb.String(), nil
}

// dispatch handles one match and returns its replacement text, or ok=false
// when the match stays as written.
func (d *Dispatcher) dispatch(ctx context.Context, m *TagMatch, depth int) (string, bool, error) {
	if IsEscaped(m) {
		d.logger.Debug(LogMsgTagEscaped, zap.String(LogFieldTagName, m.Name))
		return EscapeBrackets(m.Full), true, nil
	}

	name := strings.TrimSpace(m.Name)
	if !d.invoker.Has(name) {
		d.logger.Debug(LogMsgTagUnknown, zap.String(LogFieldTagName, name))
		return StringValueEmpty, false, nil
	}

	content := StringValueEmpty
	if m.HasInner {
		content = strings.TrimSpace(m.Inner)
	}
	if content != StringValueEmpty {
		nested, err := d.grammar.Matches(content)
		if err != nil {
			return StringValueEmpty, false, err
		}
		if nested {
			if err := ctx.Err(); err != nil {
				return StringValueEmpty, false, err
			}
			content, err = d.render(ctx, content, depth+1, name)
			if err != nil {
				return StringValueEmpty, false, err
			}
		}
	}

	attrs, err := ParseAttributes(m.RawAttributes)
	if err != nil {
		return StringValueEmpty, false, err
	}

	if err := ctx.Err(); err != nil {
		return StringValueEmpty, false, err
	}

	d.logger.Debug(LogMsgTagInvoked,
		zap.String(LogFieldTagName, name),
		zap.Int(LogFieldDepth, depth),
		zap.Bool(LogFieldSelfClose, m.SelfClosing != StringValueEmpty),
	)
	out, err := d.invoker.Invoke(ctx, Invocation{
		Name:    name,
		Match:   m,
		Attrs:   attrs,
		Content: content,
		Depth:   depth,
	})
	if err != nil {
		return StringValueEmpty, false, err
	}
	if !out.Substituted {
		d.logger.Debug(LogMsgTagUnchanged, zap.String(LogFieldTagName, name))
		return StringValueEmpty, false, nil
	}

	return out.Text, true, nil
}
