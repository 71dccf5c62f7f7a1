package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
	"github.com/yoanbernabeu/toonbench/bench"
)

// DefaultEncoding is used by GPT-4 and GPT-3.5-turbo.
const DefaultEncoding = "cl100k_base"

// Tiktoken encodes text with a tiktoken BPE encoding.
type Tiktoken struct {
	encoding string
	enc      *tiktoken.Tiktoken
}

// NewTiktoken loads the named encoding. Loading may download the BPE ranks
// on first use; any failure wraps bench.ErrTokenizerUnavailable.
func NewTiktoken(encoding string) (*Tiktoken, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: load tiktoken encoding %q: %w", bench.ErrTokenizerUnavailable, encoding, err)
	}
	return &Tiktoken{encoding: encoding, enc: enc}, nil
}

// Encode implements bench.Tokenizer. Special tokens such as <|endoftext|>
// count as one token each. Python tiktoken's encode raises on them unless
// allowed_special is passed, so a sample containing one fails there and is
// counted here.
func (t *Tiktoken) Encode(text string) ([]int, error) {
	return t.enc.Encode(text, allSpecial, nil), nil
}

var allSpecial = []string{"all"}

// Encoding returns the encoding name.
func (t *Tiktoken) Encoding() string {
	return t.encoding
}

func (t *Tiktoken) String() string {
	return "tiktoken[" + t.encoding + "]"
}

// modelEncodings maps OpenAI model names to their tiktoken encoding.
var modelEncodings = map[string]string{
	"gpt-4o":                 "o200k_base",
	"gpt-4o-mini":            "o200k_base",
	"o1":                     "o200k_base",
	"o3":                     "o200k_base",
	"gpt-4-turbo":            "cl100k_base",
	"gpt-4":                  "cl100k_base",
	"gpt-3.5-turbo":          "cl100k_base",
	"text-embedding-3-large": "cl100k_base",
	"text-embedding-3-small": "cl100k_base",
	"text-embedding-ada-002": "cl100k_base",
	"text-davinci-003":       "p50k_base",
	"davinci":                "r50k_base",
}

// ForModel returns the encoding for a model name. Versioned names such as
// "gpt-4o-2024-08-06" match their longest known prefix.
func ForModel(model string) (string, bool) {
	if enc, ok := modelEncodings[model]; ok {
		return enc, true
	}
	best := ""
	for prefix := range modelEncodings {
		if strings.HasPrefix(model, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return "", false
	}
	return modelEncodings[best], true
}
