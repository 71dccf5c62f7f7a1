package tokenizer

import (
	"github.com/yoanbernabeu/toonbench/bench"
)

// New returns the tokenizer for scheme. EstimateScheme yields an Estimator;
// any other value is handed to tiktoken as an encoding name. There is no
// fallback: an unknown or unloadable encoding is an error.
func New(scheme string) (bench.Tokenizer, error) {
	if scheme == EstimateScheme {
		return &Estimator{}, nil
	}
	t, err := NewTiktoken(scheme)
	if err != nil {
		return nil, err
	}
	return t, nil
}
