package stats

import (
	"math"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/yoanbernabeu/toonbench/bench"
)

// CostPerMTokenUSD is the reference cost per million input tokens used to
// estimate the USD value of saved tokens.
const CostPerMTokenUSD = 5.00

// StatsFileName is the name of the NDJSON history file inside the data dir.
const StatsFileName = "stats.json"

// LockFileName is the name of the lock file used for safe concurrent writes.
const LockFileName = "stats.json.lock"

// Entry is one recorded benchmark run.
type Entry struct {
	Timestamp   string `json:"timestamp"` // RFC3339 UTC
	RunID       string `json:"run_id"`
	Encoding    string `json:"encoding"`
	SampleCount int    `json:"sample_count"`
	TokensA     int    `json:"tokens_a"`
	TokensB     int    `json:"tokens_b"`
	SavingsPct  int    `json:"savings_pct"`
}

// NewEntry builds the history entry for a finished run.
func NewEntry(res *bench.Result, now time.Time) Entry {
	return Entry{
		Timestamp:   now.UTC().Format(time.RFC3339),
		RunID:       uuid.NewString(),
		Encoding:    res.Encoding,
		SampleCount: len(res.Samples),
		TokensA:     res.Aggregate.TotalA,
		TokensB:     res.Aggregate.TotalB,
		SavingsPct:  res.Aggregate.AvgSavingsPct,
	}
}

// Summary is the aggregated view of all recorded runs.
type Summary struct {
	TotalRuns    int            `json:"total_runs"`
	TokensA      int            `json:"tokens_a"`
	TokensB      int            `json:"tokens_b"`
	TokensSaved  int            `json:"tokens_saved"`
	SavingsPct   float64        `json:"savings_pct"`
	CostSavedUSD float64        `json:"cost_saved_usd"`
	ByEncoding   map[string]int `json:"by_encoding"`
}

// DaySummary holds per-day aggregated runs for the history view.
type DaySummary struct {
	Date        string `json:"date"`
	RunCount    int    `json:"run_count"`
	TokensA     int    `json:"tokens_a"`
	TokensB     int    `json:"tokens_b"`
	TokensSaved int    `json:"tokens_saved"`
}

// SavingsPct returns the weighted savings percentage for the day.
func (d DaySummary) SavingsPct() float64 {
	if d.TokensA == 0 {
		return 0
	}
	return float64(d.TokensSaved) / float64(d.TokensA) * 100
}

// StatsPath returns the path of the NDJSON history file in dataDir.
func StatsPath(dataDir string) string {
	return filepath.Join(dataDir, StatsFileName)
}

// LockPath returns the path of the history lock file in dataDir.
func LockPath(dataDir string) string {
	return filepath.Join(dataDir, LockFileName)
}

func roundUSD(v float64) float64 {
	return math.Round(v*10000) / 10000
}
