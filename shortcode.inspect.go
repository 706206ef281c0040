package shortcode

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/itsatony/go-shortcode/internal"
)

// TagReference describes one tag found by Inspect.
type TagReference struct {
	Name        string      // Tag name as written
	Raw         string      // Full matched text
	Attributes  *Attributes // Cast attributes
	Content     string      // Trimmed inner content, unrendered
	Offset      int         // Rune offset in the inspected text
	Line        int         // Source line number (1-based)
	Column      int         // Source column number in runes (1-based)
	Depth       int         // Nesting depth (0 = top level)
	Escaped     bool        // Written as [[name]]; renders as text
	SelfClosing bool        // Written as [name/]
	HasInner    bool        // Has a [/name] closing tag
	Registered  bool        // A handler is registered under Name
	Suggestions []string    // Registered names differing only in case
}

// Inspect reports the tags Render would act on, without calling any
// handler. Inner content of registered, unescaped tags is inspected too,
// the same way Render recurses into it.
func (e *Engine) Inspect(text string) ([]TagReference, error) {
	if !utf8.ValidString(text) {
		return nil, NewInvalidArgumentError(FieldText, ErrMsgInvalidText)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	entries := e.registry.Snapshot()
	names := make([]string, len(entries))
	registered := make(map[string]bool, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
		registered[entry.Name] = true
	}

	grammar, err := e.grammars.Get(names)
	if err != nil {
		return nil, NewRenderError(err)
	}

	in := &inspector{
		grammar:    grammar,
		names:      names,
		registered: registered,
		lines:      newLineIndex(text),
	}
	if err := in.inspect(text, 0, 0); err != nil {
		return nil, renderError(err)
	}
	return in.refs, nil
}

type inspector struct {
	grammar    *internal.TagGrammar
	names      []string
	registered map[string]bool
	lines      lineIndex
	refs       []TagReference
}

func (in *inspector) inspect(text string, base, depth int) error {
	matches, err := in.grammar.Scan(text)
	if err != nil {
		return err
	}

	for i := range matches {
		m := &matches[i]
		attrs, err := internal.ParseAttributes(m.RawAttributes)
		if err != nil {
			return err
		}

		name := strings.TrimSpace(m.Name)
		offset := base + m.Index
		line, column := in.lines.position(offset)
		ref := TagReference{
			Name:        name,
			Raw:         m.Full,
			Attributes:  attrs,
			Content:     strings.TrimSpace(m.Inner),
			Offset:      offset,
			Line:        line,
			Column:      column,
			Depth:       depth,
			Escaped:     internal.IsEscaped(m),
			SelfClosing: m.SelfClosing != "",
			HasInner:    m.HasInner,
			Registered:  in.registered[name],
		}
		if !ref.Registered {
			ref.Suggestions = in.suggest(name)
		}
		in.refs = append(in.refs, ref)

		if ref.Escaped || !ref.Registered || ref.Content == "" {
			continue
		}
		if err := in.inspect(ref.Content, offset+innerOffset(m), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (in *inspector) suggest(name string) []string {
	var out []string
	for _, n := range in.names {
		if strings.EqualFold(n, name) {
			out = append(out, n)
		}
	}
	return out
}

// innerOffset is the rune offset of the trimmed inner content within the
// match: the inner block starts right after the opening tag's "]".
func innerOffset(m *internal.TagMatch) int {
	open := utf8.RuneCountInString(m.OpenEscape) + utf8.RuneCountInString(m.Name) +
		utf8.RuneCountInString(m.RawAttributes) + 2
	lead := utf8.RuneCountInString(m.Inner) - utf8.RuneCountInString(strings.TrimLeftFunc(m.Inner, unicode.IsSpace))
	return open + lead
}

// lineIndex maps rune offsets to 1-based line and column numbers.
type lineIndex []int

func newLineIndex(text string) lineIndex {
	starts := lineIndex{0}
	offset := 0
	for _, r := range text {
		offset++
		if r == '\n' {
			starts = append(starts, offset)
		}
	}
	return starts
}

func (l lineIndex) position(offset int) (int, int) {
	line := 0
	for i, start := range l {
		if start > offset {
			break
		}
		line = i
	}
	return line + 1, offset - l[line] + 1
}
