package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/yoanbernabeu/toonbench/bench"
	"github.com/yoanbernabeu/toonbench/config"
	"github.com/yoanbernabeu/toonbench/stats"
	"go.uber.org/zap"
)

var (
	runEncoding string
	runModel    string
	runSamples  string
	runJSON     bool
	runTOON     bool
	runParallel int
	runRecord   bool
	runNoRecord bool
	runWatch    bool
)

// recordTimeout bounds the history append so a stuck lock never blocks the CLI.
const recordTimeout = 500 * time.Millisecond

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Benchmark JSON against TOON token counts",
	Long: `Tokenize every sample as JSON and as TOON and report the savings.

The report shows, per sample, the token count of both formats and the
percentage saved by TOON, then a TOTAL line whose average is weighted by
the summed token counts. The summary lines that follow can be pasted
into another program's source.

Samples come from the built-in reference set unless --samples (or
benchmark.samples_file in .toonbench.yaml) points at a YAML file.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)

	// A bare "toonbench" runs the benchmark.
	rootCmd.RunE = runRun
	addRunFlags(rootCmd)
}

// addRunFlags registers the benchmark flags on cmd. The root command and
// "run" share the same variables.
func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&runEncoding, "encoding", "e", "", "Tokenizer encoding (e.g. cl100k_base, o200k_base, estimate)")
	f.StringVarP(&runModel, "model", "m", "", "Model name whose encoding to use (e.g. gpt-4o)")
	f.StringVarP(&runSamples, "samples", "s", "", "YAML sample file (default: built-in samples)")
	f.BoolVarP(&runJSON, "json", "j", false, "Output the result in JSON format")
	f.BoolVarP(&runTOON, "toon", "t", false, "Output the result in TOON format")
	f.IntVarP(&runParallel, "parallel", "p", 0, "Samples tokenized concurrently (default from config)")
	f.BoolVar(&runRecord, "record", false, "Record this run in the history even if stats.enabled is false")
	f.BoolVar(&runNoRecord, "no-record", false, "Do not record this run in the history")
	f.BoolVarP(&runWatch, "watch", "w", false, "Re-run whenever the samples file changes")
	cmd.MarkFlagsMutuallyExclusive("json", "toon")
	cmd.MarkFlagsMutuallyExclusive("encoding", "model")
	cmd.MarkFlagsMutuallyExclusive("record", "no-record")
}

type outputMode int

const (
	outputReport outputMode = iota
	outputJSON
	outputTOON
)

// runOptions is the merged view of flags and configuration for one run.
type runOptions struct {
	encoding    string
	samplesPath string
	concurrency int
	labels      config.LabelsConfig
	output      outputMode
	record      bool
	dataDir     string
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return err
	}

	cfg, err := config.Load(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	opts, err := resolveRunOptions(cfg, projectRoot)
	if err != nil {
		return err
	}
	logger.Debug("run options",
		zap.String("project_root", projectRoot),
		zap.String("encoding", opts.encoding),
		zap.String("samples", opts.samplesPath),
		zap.Int("concurrency", opts.concurrency))

	tok, err := bootstrapTokenizer(ctx, opts.encoding)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if runWatch {
		if opts.samplesPath == "" {
			return fmt.Errorf("--watch requires a samples file (--samples or benchmark.samples_file)")
		}
		return watchSamples(ctx, opts.samplesPath, cmd.ErrOrStderr(), func() error {
			return benchmarkOnce(ctx, out, tok, opts)
		})
	}
	return benchmarkOnce(ctx, out, tok, opts)
}

func resolveRunOptions(cfg *config.Config, projectRoot string) (runOptions, error) {
	enc, err := resolveEncoding(runEncoding, runModel, cfg)
	if err != nil {
		return runOptions{}, err
	}

	opts := runOptions{
		encoding:    enc,
		samplesPath: cfg.ResolveSamplesPath(projectRoot),
		concurrency: cfg.Benchmark.Concurrency,
		labels:      cfg.Benchmark.Labels,
		output:      outputModeFromFlags(runJSON, runTOON),
		record:      (cfg.Stats.Enabled || runRecord) && !runNoRecord,
		dataDir:     config.GetDataDir(projectRoot),
	}
	if runSamples != "" {
		opts.samplesPath = runSamples
	}
	if runParallel > 0 {
		opts.concurrency = runParallel
	}
	return opts, nil
}

// outputModeFromFlags determines the output mode from the active CLI flags.
func outputModeFromFlags(jsonFlag, toonFlag bool) outputMode {
	switch {
	case jsonFlag:
		return outputJSON
	case toonFlag:
		return outputTOON
	default:
		return outputReport
	}
}

// benchmarkOnce loads the samples, runs the benchmark and writes the output.
// Nothing is written when the run fails.
func benchmarkOnce(ctx context.Context, w io.Writer, tok bench.Tokenizer, opts runOptions) error {
	set, err := loadSamples(opts.samplesPath)
	if err != nil {
		return err
	}

	runner := bench.NewRunner(tok,
		bench.WithEncoding(opts.encoding),
		bench.WithLabels(opts.labels.A, opts.labels.B),
		bench.WithConcurrency(opts.concurrency),
	)
	start := time.Now()
	res, err := runner.Run(ctx, set)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}
	logger.Debug("benchmark complete",
		zap.Int("samples", len(res.Samples)),
		zap.Int("total_a", res.Aggregate.TotalA),
		zap.Int("total_b", res.Aggregate.TotalB),
		zap.Duration("took", time.Since(start)))

	output, err := renderResult(res, opts.output)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, output); err != nil {
		return err
	}

	if opts.record {
		recordRun(ctx, opts.dataDir, res)
	}
	return nil
}

func renderResult(res *bench.Result, mode outputMode) (string, error) {
	switch mode {
	case outputJSON:
		return bench.EncodeJSON(res)
	case outputTOON:
		return bench.EncodeTOON(res)
	default:
		return bench.RenderReport(res) + "\n" + bench.RenderSummary(res), nil
	}
}

// recordRun appends the run to the history. Failures are logged, never
// returned: the benchmark output has already been produced.
func recordRun(ctx context.Context, dataDir string, res *bench.Result) {
	rec := stats.NewRecorder(dataDir)
	entry := stats.NewEntry(res, time.Now())

	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()
	if err := rec.Record(ctx, entry); err != nil {
		logger.Warn("failed to record run", zap.String("path", rec.Path()), zap.Error(err))
		return
	}
	logger.Debug("run recorded", zap.String("run_id", entry.RunID), zap.String("path", rec.Path()))
}
