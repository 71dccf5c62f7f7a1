// Package tokenizer provides the token encoders used by toonbench: a
// tiktoken-backed encoder selected by encoding name, and a rune-based
// estimator for offline use.
package tokenizer
