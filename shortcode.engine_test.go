package shortcode

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func textHandler(out string) Func {
	return func(*Attributes, string) Result { return Substitute(out) }
}

func noopHandler() Func {
	return func(*Attributes, string) Result { return Unchanged() }
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		engine, err := New()
		require.NoError(t, err)
		require.NotNil(t, engine)

		assert.Equal(t, 0, engine.Count())
		assert.Equal(t, DefaultMaxDepth, engine.config.maxDepth)
		assert.Equal(t, SubstituteGlobal, engine.config.mode)
		assert.NotNil(t, engine.Hooks())
		assert.NotNil(t, engine.tracer)
	})

	t.Run("with options", func(t *testing.T) {
		hooks := NewHookRegistry()
		engine, err := New(
			WithLogger(zap.NewNop()),
			WithMaxDepth(8),
			WithSubstitutionMode(SubstituteSpan),
			WithHooks(hooks),
		)
		require.NoError(t, err)

		assert.Equal(t, 8, engine.config.maxDepth)
		assert.Equal(t, SubstituteSpan, engine.config.mode)
		assert.Same(t, hooks, engine.Hooks())
	})

	t.Run("invalid options", func(t *testing.T) {
		tests := []struct {
			name  string
			opt   Option
			field string
		}{
			{"negative depth", WithMaxDepth(-1), FieldMaxDepth},
			{"unknown mode", WithSubstitutionMode(SubstitutionMode(7)), FieldMode},
			{"negative timeout", WithMatchTimeout(-1), FieldTimeout},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				engine, err := New(tt.opt)
				assert.Nil(t, engine)
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				assertMetadata(t, err, MetaKeyField, tt.field)
			})
		}
	})

	t.Run("MustNew panics on invalid options", func(t *testing.T) {
		assert.Panics(t, func() { MustNew(WithMaxDepth(-1)) })
	})
}

func TestEngine_Add(t *testing.T) {
	t.Run("appends in order", func(t *testing.T) {
		engine := MustNew()
		require.NoError(t, engine.Add("shortcode_first", noopHandler()))
		require.NoError(t, engine.Add("shortcode_second", noopHandler()))

		assert.Equal(t, []string{"shortcode_first", "shortcode_second"}, engine.Names())
		assert.Equal(t, 2, engine.Count())
	})

	t.Run("trims the name", func(t *testing.T) {
		engine := MustNew()
		require.NoError(t, engine.Add(" spaced-name ", noopHandler()))

		assert.Equal(t, []string{"spaced-name"}, engine.Names())
		assert.True(t, engine.Has("spaced-name"))
		assert.True(t, engine.Has(" spaced-name "))
	})

	t.Run("names are case-sensitive", func(t *testing.T) {
		engine := MustNew()
		require.NoError(t, engine.Add("test", noopHandler()))
		require.NoError(t, engine.Add("TEST", noopHandler()))
		assert.Equal(t, 2, engine.Count())
	})

	t.Run("duplicate name", func(t *testing.T) {
		engine := MustNew()
		require.NoError(t, engine.Add("duplicate_shortcode", noopHandler()))

		err := engine.Add(" duplicate_shortcode", textHandler("other"))
		assert.True(t, errors.Is(err, ErrDuplicateName))
		assertMetadata(t, err, MetaKeyTag, "duplicate_shortcode")
		assert.Equal(t, 1, engine.Count())
	})

	t.Run("empty names", func(t *testing.T) {
		engine := MustNew()
		for _, name := range []string{"", " ", "\t\n"} {
			err := engine.Add(name, noopHandler())
			assert.True(t, errors.Is(err, ErrInvalidArgument), "name %q", name)
		}
		assert.Equal(t, 0, engine.Count())
	})

	t.Run("nil handlers", func(t *testing.T) {
		engine := MustNew()
		var nilFunc Func
		var nilContextFunc ContextFunc

		for _, h := range []Handler{nil, nilFunc, nilContextFunc} {
			err := engine.Add("test", h)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
		}
		assert.Equal(t, 0, engine.Count())
	})

	t.Run("MustAdd panics", func(t *testing.T) {
		engine := MustNew()
		engine.MustAdd("test", noopHandler())
		assert.Panics(t, func() { engine.MustAdd("test", noopHandler()) })
	})
}

func TestEngine_AddRange(t *testing.T) {
	t.Run("adds all entries", func(t *testing.T) {
		engine := MustNew()
		err := engine.AddRange([]Shortcode{
			{Name: "parent", Handler: noopHandler()},
			{Name: "child", Handler: textHandler("test")},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"parent", "child"}, engine.Names())
	})

	t.Run("empty slice is a no-op", func(t *testing.T) {
		engine := MustNew()
		require.NoError(t, engine.AddRange([]Shortcode{}))
		assert.Equal(t, 0, engine.Count())
	})

	t.Run("nil slice", func(t *testing.T) {
		engine := MustNew()
		err := engine.AddRange(nil)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
		assertMetadata(t, err, MetaKeyField, FieldEntries)
	})

	t.Run("stops at first failure and keeps earlier entries", func(t *testing.T) {
		engine := MustNew()
		err := engine.AddRange([]Shortcode{
			{Name: "test", Handler: noopHandler()},
			{Name: "test2", Handler: nil},
			{Name: "test3", Handler: noopHandler()},
		})
		assert.True(t, errors.Is(err, ErrInvalidArgument))
		assertMetadata(t, err, MetaKeyIndex, "1")
		assert.Equal(t, []string{"test"}, engine.Names())
	})

	t.Run("duplicate inside the range", func(t *testing.T) {
		engine := MustNew()
		err := engine.AddRange([]Shortcode{
			{Name: "a", Handler: noopHandler()},
			{Name: "a", Handler: noopHandler()},
		})
		assert.True(t, errors.Is(err, ErrDuplicateName))
		assertMetadata(t, err, MetaKeyIndex, "1")
		assert.Equal(t, []string{"a"}, engine.Names())
	})
}

func TestEngine_Remove(t *testing.T) {
	t.Run("removes by trimmed name", func(t *testing.T) {
		engine := MustNew()
		engine.MustAdd("shortcode_first", noopHandler())
		engine.MustAdd("shortcode_second", noopHandler())

		require.NoError(t, engine.Remove(" shortcode_second "))
		assert.Equal(t, []string{"shortcode_first"}, engine.Names())
	})

	t.Run("absent name is not an error", func(t *testing.T) {
		engine := MustNew()
		engine.MustAdd("a", noopHandler())

		require.NoError(t, engine.Remove("b"))
		assert.Equal(t, []string{"a"}, engine.Names())
	})

	t.Run("empty name", func(t *testing.T) {
		engine := MustNew()
		for _, name := range []string{"", " "} {
			assert.True(t, errors.Is(engine.Remove(name), ErrInvalidArgument))
		}
	})
}

func TestEngine_Clear(t *testing.T) {
	engine := MustNew()
	engine.MustAdd("shortcode_first", noopHandler())
	engine.MustAdd("shortcode_second", noopHandler())

	engine.Clear()

	assert.Empty(t, engine.List())
	assert.Equal(t, 0, engine.Count())

	require.NoError(t, engine.Add("shortcode_first", noopHandler()))
}

func TestEngine_Override(t *testing.T) {
	t.Run("existing name", func(t *testing.T) {
		engine := MustNew()
		engine.MustAdd("shortcode_first", noopHandler())
		engine.MustAdd("shortcode_second", noopHandler())

		ok, err := engine.Override("shortcode_second", textHandler("test"))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"shortcode_first", "shortcode_second"}, engine.Names())

		out, err := engine.RenderSync("[shortcode_second]")
		require.NoError(t, err)
		assert.Equal(t, "test", out)
	})

	t.Run("missing name", func(t *testing.T) {
		engine := MustNew()
		engine.MustAdd("shortcode_first", noopHandler())

		ok, err := engine.Override("shortcode_third", textHandler("test"))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"shortcode_first"}, engine.Names())
	})

	t.Run("invalid arguments", func(t *testing.T) {
		engine := MustNew()
		engine.MustAdd("test", noopHandler())

		_, err := engine.Override(" ", textHandler("x"))
		assert.True(t, errors.Is(err, ErrInvalidArgument))

		_, err = engine.Override("test", nil)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})
}

func TestEngine_List(t *testing.T) {
	engine := MustNew()
	engine.MustAdd("parent", noopHandler())
	engine.MustAdd("child", textHandler("test"))

	list1 := engine.List()
	require.Len(t, list1, 2)
	assert.Equal(t, "parent", list1[0].Name)
	assert.NotNil(t, list1[0].Handler)

	list1[0].Name = "changed"

	list2 := engine.List()
	assert.Equal(t, "parent", list2[0].Name)
}

func TestEngine_ConcurrentRegistry(t *testing.T) {
	engine := MustNew()
	engine.MustAdd("base", textHandler("B"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('a' + i))
			for j := 0; j < 50; j++ {
				_ = engine.Add(name, textHandler(name))
				out, err := engine.RenderSync("[base]")
				assert.NoError(t, err)
				assert.Equal(t, "B", out)
				_ = engine.Remove(name)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, []string{"base"}, engine.Names())
}
