package tokenizer

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoanbernabeu/toonbench/bench"
)

func TestEstimator_Count(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cpt  int
		text string
		want int
	}{
		{"empty", 0, "", 0},
		{"short default", 0, "hello", 2},
		{"exact", 4, "abcd", 1},
		{"cpt2", 2, "abcde", 3},
		{"unicode runes", 4, "Hello 世界", 2},
		{"negative uses 4", -3, "123456789", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := &Estimator{CharsPerToken: tt.cpt}
			assert.Equal(t, tt.want, e.Count(tt.text))
			ids, err := e.Encode(tt.text)
			require.NoError(t, err)
			assert.Len(t, ids, tt.want)
		})
	}
}

func TestForModel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		model  string
		want   string
		wantOK bool
	}{
		{"gpt-4", "cl100k_base", true},
		{"gpt-4o", "o200k_base", true},
		{"gpt-4o-mini-2024-07-18", "o200k_base", true},
		{"gpt-4-0613", "cl100k_base", true},
		{"gpt-4-turbo-preview", "cl100k_base", true},
		{"claude-3", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ForModel(tt.model)
		assert.Equal(t, tt.wantOK, ok, tt.model)
		assert.Equal(t, tt.want, got, tt.model)
	}
}

func TestNew_Estimate(t *testing.T) {
	t.Parallel()
	tok, err := New(EstimateScheme)
	require.NoError(t, err)
	assert.IsType(t, &Estimator{}, tok)
}

func TestNew_UnknownEncoding(t *testing.T) {
	t.Parallel()
	tok, err := New("not_an_encoding")
	require.Error(t, err)
	assert.Nil(t, tok)
	assert.ErrorIs(t, err, bench.ErrTokenizerUnavailable)
	assert.Contains(t, err.Error(), "not_an_encoding")
}

// TestTiktoken_Online loads real BPE ranks, which may require network access.
func TestTiktoken_Online(t *testing.T) {
	if os.Getenv("TOONBENCH_ONLINE_TESTS") == "" {
		t.Skip("set TOONBENCH_ONLINE_TESTS=1 to load tiktoken encodings")
	}
	tok, err := NewTiktoken("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEncoding, tok.Encoding())

	a, err := tok.Encode(`{"name":"John","age":30,"city":"NYC"}`)
	require.NoError(t, err)
	b, err := tok.Encode("name: John\nage: 30\ncity: NYC")
	require.NoError(t, err)
	assert.NotEmpty(t, b)
	assert.Greater(t, len(a), len(b))
}

func TestTiktoken_SpecialTokensCounted(t *testing.T) {
	if os.Getenv("TOONBENCH_ONLINE_TESTS") == "" {
		t.Skip("set TOONBENCH_ONLINE_TESTS=1 to load tiktoken encodings")
	}
	tok, err := NewTiktoken("")
	require.NoError(t, err)

	special, err := tok.Encode("<|endoftext|>")
	require.NoError(t, err)
	assert.Len(t, special, 1)

	mixed, err := tok.Encode("a<|endoftext|>b")
	require.NoError(t, err)
	assert.Contains(t, mixed, special[0])
}
