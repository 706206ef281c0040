package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// TagGrammarOptions are the regexp2 options of the tag grammar.
const TagGrammarOptions = regexp2.IgnoreCase | regexp2.Multiline | regexp2.ECMAScript

// TagMatch is one tag found by a scan.
type TagMatch struct {
	Full          string // Entire matched text
	OpenEscape    string // "[" when the tag opens with "[["
	Name          string // Tag name as written
	RawAttributes string // Unparsed attribute text
	SelfClosing   string // "/" for [name/]
	Inner         string // Content between [name] and [/name]
	HasInner      bool   // Whether a closing tag was matched
	CloseEscape   string // "]" when the tag closes with "]]"
	Index         int    // Rune offset of the match in the scanned text
	Length        int    // Rune length of the match
}

// GrammarConfig configures grammar compilation.
type GrammarConfig struct {
	// MatchTimeout bounds a single regexp2 match. Zero keeps regexp2's
	// default (no timeout).
	MatchTimeout time.Duration
}

// TagGrammar recognizes the tags of a fixed set of names.
type TagGrammar struct {
	names []string
	re    *regexp2.Regexp
}

// BuildTagGrammar compiles a grammar for the given tag names. Names are
// quoted, so they match literally. An empty list yields a grammar that
// never matches.
func BuildTagGrammar(names []string, config GrammarConfig) (*TagGrammar, error) {
	re, err := regexp2.Compile(TagPattern(names), TagGrammarOptions)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtTagMessage, ErrMsgGrammarCompile, err.Error())
	}
	if config.MatchTimeout > 0 {
		re.MatchTimeout = config.MatchTimeout
	}

	owned := make([]string, len(names))
	copy(owned, names)

	return &TagGrammar{names: owned, re: re}, nil
}

// TagPattern returns the source of the tag grammar for the given names.
func TagPattern(names []string) string {
	alternation := TagPatternNoNames
	if len(names) > 0 {
		quoted := make([]string, len(names))
		for i, name := range names {
			quoted[i] = regexp2.Escape(name)
		}
		alternation = strings.Join(quoted, TagNameSeparator)
	}
	return TagPatternPrefix + "(" + alternation + ")" + TagPatternSuffix
}

// Names returns the tag names the grammar was built from.
func (g *TagGrammar) Names() []string {
	names := make([]string, len(g.names))
	copy(names, g.names)
	return names
}

// String returns the expression source.
func (g *TagGrammar) String() string {
	return g.re.String()
}

// Scan returns every non-overlapping tag match in text, left to right.
func (g *TagGrammar) Scan(text string) ([]TagMatch, error) {
	var matches []TagMatch

	m, err := g.re.FindStringMatch(text)
	for ; m != nil && err == nil; m, err = g.re.FindNextMatch(m) {
		matches = append(matches, newTagMatch(m))
	}
	if err != nil {
		return nil, fmt.Errorf(ErrFmtTagMessage, ErrMsgGrammarScan, err.Error())
	}

	return matches, nil
}

// Matches reports whether text contains at least one tag.
func (g *TagGrammar) Matches(text string) (bool, error) {
	ok, err := g.re.MatchString(text)
	if err != nil {
		return false, fmt.Errorf(ErrFmtTagMessage, ErrMsgGrammarScan, err.Error())
	}
	return ok, nil
}

func newTagMatch(m *regexp2.Match) TagMatch {
	inner := m.GroupByNumber(GroupInner)
	return TagMatch{
		Full:          m.String(),
		OpenEscape:    groupText(m, GroupOpenEscape),
		Name:          groupText(m, GroupName),
		RawAttributes: groupText(m, GroupAttributes),
		SelfClosing:   groupText(m, GroupSelfClosing),
		Inner:         groupText(m, GroupInner),
		HasInner:      captured(inner),
		CloseEscape:   groupText(m, GroupCloseEscape),
		Index:         m.Index,
		Length:        m.Length,
	}
}

func groupText(m *regexp2.Match, n int) string {
	g := m.GroupByNumber(n)
	if !captured(g) {
		return StringValueEmpty
	}
	return g.String()
}
