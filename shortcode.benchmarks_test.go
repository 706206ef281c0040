package shortcode

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/itsatony/go-shortcode/internal"
)

// =============================================================================
// GRAMMAR BENCHMARKS
// =============================================================================

func benchmarkNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("tag_%d", i)
	}
	return names
}

func BenchmarkGrammar_Build(b *testing.B) {
	names := benchmarkNames(50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = internal.BuildTagGrammar(names, internal.GrammarConfig{})
	}
}

func BenchmarkGrammar_CachedLookup(b *testing.B) {
	cache := internal.NewGrammarCache(time.Hour, internal.GrammarConfig{}, nil)
	names := benchmarkNames(50)
	_, _ = cache.Get(names)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cache.Get(names)
	}
}

// =============================================================================
// RENDER BENCHMARKS
// =============================================================================

func newBenchmarkEngine(opts ...Option) *Engine {
	engine := MustNew(opts...)
	engine.MustAdd("b", Func(func(_ *Attributes, content string) Result {
		return Substitute("<b>" + content + "</b>")
	}))
	engine.MustAdd("image", Func(func(attrs *Attributes, _ string) Result {
		return Substitute(`<img src="` + attrs.String("src") + `">`)
	}))
	engine.MustAdd("quote", Func(func(attrs *Attributes, content string) Result {
		return Substitute("<blockquote>" + content + "</blockquote>")
	}))
	return engine
}

func BenchmarkRender_Simple(b *testing.B) {
	engine := newBenchmarkEngine()
	source := `Hello [b]world[/b]!`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.RenderSync(source)
	}
}

func BenchmarkRender_Nested(b *testing.B) {
	engine := newBenchmarkEngine()
	source := `[quote author="Ada"][b]Simple[/b] things [image src="/a.png"/] should be simple.[/quote]`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Render(context.Background(), source)
	}
}

func BenchmarkRender_LargeDocument(b *testing.B) {
	for _, mode := range []SubstitutionMode{SubstituteGlobal, SubstituteSpan} {
		b.Run(mode.String(), func(b *testing.B) {
			engine := newBenchmarkEngine(WithSubstitutionMode(mode))

			var sb strings.Builder
			for i := 0; i < 200; i++ {
				fmt.Fprintf(&sb, "Paragraph %d with [b]bold %d[/b] and [image src=\"/%d.png\"].\n", i, i, i)
			}
			source := sb.String()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = engine.Render(context.Background(), source)
			}
		})
	}
}

func BenchmarkRender_Concurrent(b *testing.B) {
	engine := newBenchmarkEngine()
	source := `[quote][b]x[/b][/quote] [image src="/a.png"]`

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = engine.Render(context.Background(), source)
		}
	})
}

func BenchmarkRegistry_AddRemove(b *testing.B) {
	engine := MustNew()
	h := Func(func(*Attributes, string) Result { return Unchanged() })

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Add("bench", h)
		_ = engine.Remove("bench")
	}
}
