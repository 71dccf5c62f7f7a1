package stats_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/yoanbernabeu/toonbench/bench"
	"github.com/yoanbernabeu/toonbench/stats"
)

// ---- helpers ----

func writeStatsFile(t *testing.T, dir string, lines []string) {
	t.Helper()
	f, err := os.Create(stats.StatsPath(dir))
	if err != nil {
		t.Fatalf("create stats file: %v", err)
	}
	defer f.Close()
	for _, l := range lines {
		f.WriteString(l + "\n")
	}
}

func entryJSON(t *testing.T, e stats.Entry) string {
	t.Helper()
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal entry: %v", err)
	}
	return string(b)
}

func makeEntry(ts, encoding string, samples, a, b int) stats.Entry {
	return stats.Entry{
		Timestamp:   ts,
		RunID:       "run-" + ts,
		Encoding:    encoding,
		SampleCount: samples,
		TokensA:     a,
		TokensB:     b,
	}
}

// ---- NewEntry ----

func TestNewEntry(t *testing.T) {
	res := &bench.Result{
		Encoding:  "cl100k_base",
		Samples:   make([]bench.SampleResult, 5),
		Aggregate: bench.AggregateResult{TotalA: 171, TotalB: 140, AvgSavingsPct: 18},
	}
	now := time.Date(2026, 2, 22, 10, 30, 0, 0, time.FixedZone("CET", 3600))

	e := stats.NewEntry(res, now)
	if e.Timestamp != "2026-02-22T09:30:00Z" {
		t.Errorf("Timestamp = %q, want UTC RFC3339", e.Timestamp)
	}
	if e.RunID == "" {
		t.Error("RunID is empty")
	}
	if e.SampleCount != 5 || e.TokensA != 171 || e.TokensB != 140 || e.SavingsPct != 18 {
		t.Errorf("unexpected entry %+v", e)
	}
	if other := stats.NewEntry(res, now); other.RunID == e.RunID {
		t.Error("RunID should be unique per entry")
	}
}

// ---- Round-trip Record → ReadAll ----

func TestRecordReadAll_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".toonbench")
	rec := stats.NewRecorder(dir)
	ctx := context.Background()

	entries := []stats.Entry{
		makeEntry("2026-02-22T10:00:00Z", "cl100k_base", 5, 171, 140),
		makeEntry("2026-02-22T11:00:00Z", "o200k_base", 3, 90, 60),
	}
	for _, e := range entries {
		if err := rec.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := stats.ReadAll(rec.Path())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("ReadAll returned %d entries, want %d", len(got), len(entries))
	}
	for i, e := range got {
		if e != entries[i] {
			t.Errorf("[%d] = %+v, want %+v", i, e, entries[i])
		}
	}
}

func TestRecord_Concurrent(t *testing.T) {
	dir := t.TempDir()
	rec := stats.NewRecorder(dir)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := rec.Record(context.Background(), makeEntry("2026-02-22T10:00:00Z", "cl100k_base", 1, 10, 5)); err != nil {
				t.Errorf("Record: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := stats.ReadAll(stats.StatsPath(dir))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 20 {
		t.Errorf("got %d entries, want 20", len(got))
	}
}

func TestRecord_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := stats.NewRecorder(dir).Record(ctx, stats.Entry{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if _, err := os.Stat(stats.StatsPath(dir)); !os.IsNotExist(err) {
		t.Errorf("stats file should not exist, stat err = %v", err)
	}
}

// ---- ReadAll: file not found ----

func TestReadAll_FileNotFound(t *testing.T) {
	entries, err := stats.ReadAll(stats.StatsPath(t.TempDir()))
	if err != nil {
		t.Fatalf("expected nil error for missing file, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty slice, got %d entries", len(entries))
	}
}

// ---- ReadAll: corrupted line is skipped ----

func TestReadAll_CorruptedLineSkipped(t *testing.T) {
	dir := t.TempDir()
	good := makeEntry("2026-02-22T10:00:00Z", "cl100k_base", 5, 171, 140)
	writeStatsFile(t, dir, []string{
		entryJSON(t, good),
		"THIS IS NOT JSON",
		"",
		entryJSON(t, good),
	})

	entries, err := stats.ReadAll(stats.StatsPath(dir))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 valid entries, got %d", len(entries))
	}
}

// ---- Summarize ----

func TestSummarize_Totals(t *testing.T) {
	entries := []stats.Entry{
		makeEntry("2026-02-22T10:00:00Z", "cl100k_base", 5, 100, 60),
		makeEntry("2026-02-22T11:00:00Z", "cl100k_base", 5, 300, 280),
		makeEntry("2026-02-22T12:00:00Z", "o200k_base", 2, 600, 260),
	}
	s := stats.Summarize(entries)

	if s.TotalRuns != 3 {
		t.Errorf("TotalRuns = %d, want 3", s.TotalRuns)
	}
	if s.TokensA != 1000 || s.TokensB != 600 {
		t.Errorf("tokens = %d/%d, want 1000/600", s.TokensA, s.TokensB)
	}
	if s.TokensSaved != 400 {
		t.Errorf("TokensSaved = %d, want 400", s.TokensSaved)
	}
	if s.SavingsPct < 39.99 || s.SavingsPct > 40.01 {
		t.Errorf("SavingsPct = %.2f, want ~40", s.SavingsPct)
	}
	if s.CostSavedUSD != 0.002 {
		t.Errorf("CostSavedUSD = %v, want 0.002", s.CostSavedUSD)
	}
	if got := s.Encodings(); len(got) != 2 || got[0] != "cl100k_base" {
		t.Errorf("Encodings() = %v", got)
	}
}

func TestSummarize_Empty_NoPanic(t *testing.T) {
	s := stats.Summarize(nil)
	if s.TotalRuns != 0 || s.SavingsPct != 0 {
		t.Errorf("unexpected summary for no entries: %+v", s)
	}
}

// ---- HistoryByDay ----

func TestHistoryByDay_Grouping(t *testing.T) {
	entries := []stats.Entry{
		makeEntry("2026-02-20T10:00:00Z", "cl100k_base", 5, 80, 40),
		makeEntry("2026-02-21T09:00:00Z", "cl100k_base", 5, 120, 60),
		makeEntry("2026-02-21T15:00:00Z", "cl100k_base", 5, 40, 20),
		makeEntry("2026-02-22T08:00:00Z", "cl100k_base", 5, 100, 50),
	}
	days := stats.HistoryByDay(entries)

	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	// Sorted descending
	if days[0].Date != "2026-02-22" {
		t.Errorf("days[0].Date = %q, want 2026-02-22", days[0].Date)
	}
	if days[1].Date != "2026-02-21" {
		t.Errorf("days[1].Date = %q, want 2026-02-21", days[1].Date)
	}
	if days[1].RunCount != 2 {
		t.Errorf("days[1].RunCount = %d, want 2", days[1].RunCount)
	}
	if days[1].TokensSaved != 80 {
		t.Errorf("days[1].TokensSaved = %d, want 80", days[1].TokensSaved)
	}
	if pct := days[1].SavingsPct(); pct != 50 {
		t.Errorf("days[1].SavingsPct() = %v, want 50", pct)
	}
}

func TestHistoryByDay_UnknownTimestamp(t *testing.T) {
	days := stats.HistoryByDay([]stats.Entry{makeEntry("bad", "x", 1, 2, 1)})
	if len(days) != 1 || days[0].Date != "unknown" {
		t.Errorf("expected single unknown day, got %+v", days)
	}
}

func TestHistoryByDay_Empty(t *testing.T) {
	days := stats.HistoryByDay(nil)
	if len(days) != 0 {
		t.Errorf("expected empty slice for nil entries")
	}
}
