package bench

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alpkeskin/gotoon"
)

const (
	reportWidth = 70
	nameWidth   = 25
)

// RenderReport renders res as a fixed-width comparison table followed by a
// TOTAL line.
func RenderReport(res *Result) string {
	labels := res.labels()

	var b strings.Builder
	rule := strings.Repeat("=", reportWidth)
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%s vs %s Token Benchmark\n", labels.A, labels.B)
	if res.Encoding != "" {
		fmt.Fprintf(&b, "Encoding: %s\n", res.Encoding)
	}
	b.WriteString(rule + "\n\n")

	for _, s := range res.Samples {
		fmt.Fprintf(&b, "%-*s | %s: %3d | %s: %3d | Savings: %s\n",
			nameWidth, s.Name, labels.A, s.CountA, labels.B, s.CountB, FormatSavings(s.SavingsPct))
	}

	b.WriteString("\n" + strings.Repeat("-", reportWidth) + "\n")
	agg := res.Aggregate
	fmt.Fprintf(&b, "%-*s | %s: %3d | %s: %3d | Average: %s\n",
		nameWidth, "TOTAL", labels.A, agg.TotalA, labels.B, agg.TotalB, FormatSavings(agg.AvgSavingsPct))
	b.WriteString(rule + "\n")
	return b.String()
}

// FormatSavings renders a savings percentage as a reduction: 15 becomes
// "-15%" and -4 (B larger than A) becomes "+4%".
func FormatSavings(pct int) string {
	if pct >= 0 {
		return fmt.Sprintf("-%d%%", pct)
	}
	return fmt.Sprintf("+%d%%", -pct)
}

// SummaryLines returns one object literal per sample, in input order, for
// pasting into another program's source. Names are quoted with Go escaping,
// so a name containing a quote or newline still yields a valid JS string.
func SummaryLines(res *Result) []string {
	labels := res.labels()
	keyA, keyB := summaryKey(labels.A), summaryKey(labels.B)

	lines := make([]string, len(res.Samples))
	for i, s := range res.Samples {
		lines[i] = fmt.Sprintf("{ name: %q, %s: %d, %s: %d, savings: %d },",
			s.Name, keyA, s.CountA, keyB, s.CountB, s.SavingsPct)
	}
	return lines
}

// RenderSummary renders the summary lines under a short heading.
func RenderSummary(res *Result) string {
	var b strings.Builder
	b.WriteString("Copy these values to update the benchmark data:\n\n")
	for _, line := range SummaryLines(res) {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

// summaryKey turns a label such as "JSON" into "jsonTokens".
func summaryKey(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), "")) + "Tokens"
}

func (res *Result) labels() Labels {
	l := res.Labels
	if l.A == "" {
		l.A = DefaultLabelA
	}
	if l.B == "" {
		l.B = DefaultLabelB
	}
	return l
}

// EncodeJSON returns res as indented JSON.
func EncodeJSON(res *Result) (string, error) {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("bench: encode JSON: %w", err)
	}
	return string(out) + "\n", nil
}

// EncodeTOON returns res in TOON format.
func EncodeTOON(res *Result) (string, error) {
	out, err := gotoon.Encode(res)
	if err != nil {
		return "", fmt.Errorf("bench: encode TOON: %w", err)
	}
	return out + "\n", nil
}
