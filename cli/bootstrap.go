package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/yoanbernabeu/toonbench/bench"
	"github.com/yoanbernabeu/toonbench/config"
	"github.com/yoanbernabeu/toonbench/samples"
	"github.com/yoanbernabeu/toonbench/tokenizer"
	"go.uber.org/zap"
)

var (
	newTokenizer        = tokenizer.New
	tokenizerRetryDelay = 2 * time.Second
)

// bootstrapTokenizer builds the tokenizer for scheme. Loading a tiktoken
// encoding may need to fetch BPE ranks, so a failure is retried once.
func bootstrapTokenizer(ctx context.Context, scheme string) (bench.Tokenizer, error) {
	tok, err := newTokenizer(scheme)
	if err == nil {
		logger.Debug("tokenizer ready", zap.String("encoding", scheme))
		return tok, nil
	}

	logger.Warn("tokenizer unavailable, retrying once",
		zap.String("encoding", scheme),
		zap.Duration("delay", tokenizerRetryDelay),
		zap.Error(err))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(tokenizerRetryDelay):
	}

	tok, err = newTokenizer(scheme)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}
	return tok, nil
}

// resolveEncoding picks the encoding scheme. A model name (flag, then
// config) wins over an explicit encoding.
func resolveEncoding(flagEncoding, flagModel string, cfg *config.Config) (string, error) {
	model := flagModel
	if model == "" && flagEncoding == "" {
		model = cfg.Tokenizer.Model
	}
	if model != "" {
		enc, ok := tokenizer.ForModel(model)
		if !ok {
			return "", fmt.Errorf("unknown model %q: pass --encoding instead", model)
		}
		return enc, nil
	}
	if flagEncoding != "" {
		return flagEncoding, nil
	}
	if cfg.Tokenizer.Encoding != "" {
		return cfg.Tokenizer.Encoding, nil
	}
	return tokenizer.DefaultEncoding, nil
}

// loadSamples returns the built-in set when path is empty.
func loadSamples(path string) ([]bench.Sample, error) {
	if path == "" {
		return samples.Default(), nil
	}
	set, err := samples.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load samples: %w", err)
	}
	return set, nil
}
