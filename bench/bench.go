package bench

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// Default format labels.
const (
	DefaultLabelA = "JSON"
	DefaultLabelB = "TOON"
)

// Tokenizer turns text into token ids. Only the length of the result is used.
type Tokenizer interface {
	Encode(text string) ([]int, error)
}

// Sample is one payload serialized two ways.
type Sample struct {
	Name string
	A    string
	B    string
}

// SampleResult holds the token counts measured for one sample.
type SampleResult struct {
	Name       string `json:"name"`
	CountA     int    `json:"count_a"`
	CountB     int    `json:"count_b"`
	SavingsPct int    `json:"savings_pct"`
}

// AggregateResult holds the totals over all samples. AvgSavingsPct is
// weighted by the totals, not the mean of the per-sample percentages.
type AggregateResult struct {
	TotalA        int `json:"total_a"`
	TotalB        int `json:"total_b"`
	AvgSavingsPct int `json:"avg_savings_pct"`
}

// Labels names the two formats being compared.
type Labels struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Result is the outcome of one benchmark run. Samples are in input order.
type Result struct {
	Encoding  string          `json:"encoding,omitempty"`
	Labels    Labels          `json:"labels"`
	Samples   []SampleResult  `json:"samples"`
	Aggregate AggregateResult `json:"aggregate"`
}

// Runner measures samples with a fixed tokenizer.
type Runner struct {
	tok         Tokenizer
	encoding    string
	labels      Labels
	concurrency int
}

// Option configures a Runner.
type Option func(*Runner)

// WithEncoding records the tokenizer's encoding scheme in the result.
// The value is not interpreted.
func WithEncoding(encoding string) Option {
	return func(r *Runner) {
		r.encoding = encoding
	}
}

// WithLabels sets the display names of the A and B formats.
// Empty values keep the defaults.
func WithLabels(a, b string) Option {
	return func(r *Runner) {
		if a != "" {
			r.labels.A = a
		}
		if b != "" {
			r.labels.B = b
		}
	}
}

// WithConcurrency tokenizes up to n samples at once. Values below 2 run
// sequentially. Output does not depend on n.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// NewRunner creates a Runner that tokenizes with tok.
func NewRunner(tok Tokenizer, opts ...Option) *Runner {
	r := &Runner{
		tok:         tok,
		labels:      Labels{A: DefaultLabelA, B: DefaultLabelB},
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run measures every sample and computes the aggregate. It either returns a
// complete Result or an error, never a partial result.
func (r *Runner) Run(ctx context.Context, samples []Sample) (*Result, error) {
	if r.tok == nil {
		return nil, ErrNilTokenizer
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	results := make([]SampleResult, len(samples))
	if r.concurrency < 2 {
		for i, s := range samples {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res, err := r.measure(s)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
	} else if err := r.measureParallel(ctx, samples, results); err != nil {
		return nil, err
	}

	agg := AggregateResult{}
	for _, res := range results {
		agg.TotalA += res.CountA
		agg.TotalB += res.CountB
	}
	// TotalA > 0 because every CountA was checked.
	agg.AvgSavingsPct = savings(agg.TotalA, agg.TotalB)

	return &Result{
		Encoding:  r.encoding,
		Labels:    r.labels,
		Samples:   results,
		Aggregate: agg,
	}, nil
}

// measureParallel fills results by input index. When several samples fail,
// the error of the earliest one in input order is returned.
func (r *Runner) measureParallel(ctx context.Context, samples []Sample, results []SampleResult) error {
	errs := make([]error, len(samples))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, s := range samples {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			res, err := r.measure(s)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) measure(s Sample) (SampleResult, error) {
	a, err := r.count(s.Name, r.labels.A, s.A)
	if err != nil {
		return SampleResult{}, err
	}
	if a == 0 {
		return SampleResult{}, &SampleError{
			Sample: s.Name,
			Reason: r.labels.A + " text has zero tokens",
			Err:    ErrPrecondition,
		}
	}
	b, err := r.count(s.Name, r.labels.B, s.B)
	if err != nil {
		return SampleResult{}, err
	}
	return SampleResult{
		Name:       s.Name,
		CountA:     a,
		CountB:     b,
		SavingsPct: savings(a, b),
	}, nil
}

func (r *Runner) count(name, label, text string) (int, error) {
	ids, err := r.tok.Encode(text)
	if err != nil {
		return 0, &SampleError{Sample: name, Reason: "encode " + label, Err: err}
	}
	return len(ids), nil
}

// Savings returns round((1 - b/a) * 100), the percentage by which b is
// smaller than a. Halves round to even. a must be positive.
func Savings(a, b int) (int, error) {
	if a <= 0 {
		return 0, ErrPrecondition
	}
	return savings(a, b), nil
}

func savings(a, b int) int {
	return int(math.RoundToEven((1 - float64(b)/float64(a)) * 100))
}

// Benchmark runs samples through a default Runner and returns the rendered
// report and the per-sample results.
func Benchmark(ctx context.Context, tok Tokenizer, samples []Sample, opts ...Option) (string, []SampleResult, error) {
	res, err := NewRunner(tok, opts...).Run(ctx, samples)
	if err != nil {
		return "", nil, err
	}
	return RenderReport(res), res.Samples, nil
}
