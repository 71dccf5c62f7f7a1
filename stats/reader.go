package stats

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ReadAll reads all entries from the NDJSON history file at statsPath.
// Malformed lines are skipped with a warning to stderr.
// Returns an empty slice (not an error) when the file does not exist.
func ReadAll(statsPath string) ([]Entry, error) {
	f, err := os.Open(statsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats: open: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			fmt.Fprintf(os.Stderr, "stats: skipping malformed line %d: %v\n", lineNum, err)
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return entries, fmt.Errorf("stats: read: %w", err)
	}
	return entries, nil
}

// Summarize aggregates entries into a Summary. The savings percentage is
// weighted by token totals across runs.
func Summarize(entries []Entry) Summary {
	s := Summary{ByEncoding: map[string]int{}}

	for _, e := range entries {
		s.TotalRuns++
		s.TokensA += e.TokensA
		s.TokensB += e.TokensB
		s.ByEncoding[e.Encoding]++
	}

	s.TokensSaved = s.TokensA - s.TokensB
	if s.TokensA > 0 {
		s.SavingsPct = float64(s.TokensSaved) / float64(s.TokensA) * 100
	}
	s.CostSavedUSD = roundUSD(float64(s.TokensSaved) / 1_000_000 * CostPerMTokenUSD)

	return s
}

// HistoryByDay groups entries by calendar day (UTC) and returns a slice
// sorted in descending order (most recent first).
func HistoryByDay(entries []Entry) []DaySummary {
	byDate := map[string]*DaySummary{}

	for _, e := range entries {
		day := "unknown"
		if len(e.Timestamp) >= 10 {
			day = e.Timestamp[:10] // "YYYY-MM-DD"
		}
		d, ok := byDate[day]
		if !ok {
			d = &DaySummary{Date: day}
			byDate[day] = d
		}
		d.RunCount++
		d.TokensA += e.TokensA
		d.TokensB += e.TokensB
		d.TokensSaved += e.TokensA - e.TokensB
	}

	days := make([]DaySummary, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})
	return days
}

// Encodings returns the encodings in s sorted by run count, then name.
func (s Summary) Encodings() []string {
	names := make([]string, 0, len(s.ByEncoding))
	for name := range s.ByEncoding {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := s.ByEncoding[names[i]], s.ByEncoding[names[j]]
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	return names
}
