package bench

import (
	"errors"
	"fmt"
)

// Sentinel errors for benchmark runs. Callers should use errors.Is/errors.As.
var (
	ErrTokenizerUnavailable = errors.New("bench: tokenizer unavailable")
	ErrPrecondition         = errors.New("bench: precondition violated")

	ErrNoSamples    = fmt.Errorf("%w: no samples", ErrPrecondition)
	ErrNilTokenizer = fmt.Errorf("%w: nil tokenizer", ErrTokenizerUnavailable)
)

// SampleError ties a failure to the sample that caused it.
type SampleError struct {
	Sample string
	Reason string
	Err    error
}

// Error implements error.
func (e *SampleError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("bench: sample %q: %v", e.Sample, e.Err)
	}
	return fmt.Sprintf("bench: sample %q: %s: %v", e.Sample, e.Reason, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/errors.As.
func (e *SampleError) Unwrap() error { return e.Err }

var _ error = (*SampleError)(nil)
