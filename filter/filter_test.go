package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stream struct {
	id     string
	name   string
	record bool
	assets *streamAssets
}

type streamAssets struct {
	HLS string `expr:"hls"`
}

func (s stream) fields() map[string]any {
	return map[string]any{
		"liveStreamId": s.id,
		"name":         s.name,
		"record":       s.record,
		"assets":       s.assets,
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `name == "launch"`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `name == "unclosed`,
			wantErr:    true,
		},
		{
			name:       "non boolean literal",
			expression: `1 + 1`,
			wantErr:    true,
		},
		{
			name:       "helpers and operators",
			expression: `containsFold(name, "LAUNCH") and record and not (liveStreamId startsWith "pl")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewCompiler().Compile(tt.expression)

			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				require.ErrorAs(t, err, &compErr)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, f)
			assert.Equal(t, tt.expression, f.String())
		})
	}
}

func TestFilter_Match(t *testing.T) {
	s := stream{
		id:     "li400mYKSgQ6xs7taUeSaEKr",
		name:   "Product Launch",
		record: true,
		assets: &streamAssets{HLS: "https://live.api.video/li4.m3u8"},
	}

	tests := []struct {
		expression string
		expected   bool
	}{
		{`record`, true},
		{`!record`, false},
		{`name == "Product Launch"`, true},
		{`name contains "Launch"`, true},
		{`name contains "launch"`, false},
		{`containsFold(name, "launch")`, true},
		{`startsWithFold(name, "product")`, true},
		{`endsWithFold(liveStreamId, "ekr")`, true},
		{`lower(name) == "product launch"`, true},
		{`assets.hls endsWith ".m3u8"`, true},
		{`liveStreamId startsWith "pl"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := NewCompiler().Compile(tt.expression)
			require.NoError(t, err)

			matched, err := f.Match(s.fields())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, matched)
		})
	}
}

func TestFilter_MatchNonBoolean(t *testing.T) {
	f, err := NewCompiler().Compile(`name`)
	require.NoError(t, err)

	_, err = f.Match(map[string]any{"name": "launch"})
	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "name", evalErr.Expression)
}

func TestApply(t *testing.T) {
	streams := []stream{
		{id: "li1", name: "Morning show", record: true},
		{id: "li2", name: "Evening show", record: false},
		{id: "li3", name: "Launch", record: true},
	}

	t.Run("keeps order of matches", func(t *testing.T) {
		f, err := Compile(`record`)
		require.NoError(t, err)

		result, err := Apply(f, streams, stream.fields)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "li1", result[0].id)
		assert.Equal(t, "li3", result[1].id)
	})

	t.Run("nil filter matches everything", func(t *testing.T) {
		result, err := Apply(nil, streams, stream.fields)
		require.NoError(t, err)
		assert.Equal(t, streams, result)
	})

	t.Run("evaluation error names the item", func(t *testing.T) {
		f, err := Compile(`name`)
		require.NoError(t, err)

		_, err = Apply(f, streams, stream.fields)
		var evalErr *EvaluationError
		require.ErrorAs(t, err, &evalErr)
		assert.Equal(t, "item 0", evalErr.Item)
		assert.Contains(t, err.Error(), "on 'item 0'")
	})
}

func TestCompiler_Cache(t *testing.T) {
	c := NewCompiler(WithCache(2))

	first, err := c.Compile(`record`)
	require.NoError(t, err)
	again, err := c.Compile(`  record  `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, c.CacheSize())

	_, err = c.Compile(`!record`)
	require.NoError(t, err)
	_, err = c.Compile(`name == "x"`)
	require.NoError(t, err)
	assert.Equal(t, 2, c.CacheSize())

	evicted, err := c.Compile(`record`)
	require.NoError(t, err)
	assert.NotSame(t, first, evicted)

	uncached := NewCompiler(WithCache(0))
	_, err = uncached.Compile(`record`)
	require.NoError(t, err)
	assert.Equal(t, 0, uncached.CacheSize())
}

func TestCompiler_WithFunctions(t *testing.T) {
	c := NewCompiler(WithFunctions(map[string]any{
		"isLive": func(id string) bool { return len(id) > 2 && id[:2] == "li" },
	}))

	f, err := c.Compile(`isLive(liveStreamId)`)
	require.NoError(t, err)

	matched, err := f.Match(map[string]any{"liveStreamId": "li123"})
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestLRUCache(t *testing.T) {
	c := newLRUCache[int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Put("c", 3)
	_, ok = c.Get("b")
	assert.False(t, ok, "least recently used entry is evicted")

	c.Put("a", 10)
	v, _ = c.Get("a")
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}
