package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/yoanbernabeu/toonbench/bench"
	"github.com/yoanbernabeu/toonbench/config"
	"github.com/yoanbernabeu/toonbench/stats"
)

var (
	historyJSON bool
	historyDays int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the recorded benchmark runs",
	Long: `Display a summary of the benchmark runs recorded in
.toonbench/stats.json.

A successful "toonbench run" appends one entry when --record is passed or
stats.enabled is true in .toonbench.yaml. This command aggregates those
entries and shows total tokens, tokens saved and an estimated cost saving.
With --days n it also lists the n most recent days.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVarP(&historyJSON, "json", "j", false, "Output results in JSON format")
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", 0, "Show a per-day breakdown of the n most recent days")
}

func runHistory(cmd *cobra.Command, args []string) error {
	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return err
	}

	cfg, err := config.Load(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if historyDays < 0 {
		return fmt.Errorf("--days must not be negative, got %d", historyDays)
	}

	entries, err := stats.ReadAll(stats.StatsPath(config.GetDataDir(projectRoot)))
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out, "Run \"toonbench run --record\" to start recording benchmark results.")
		return nil
	}

	summary := stats.Summarize(entries)

	if historyJSON {
		return outputHistoryJSON(out, summary, entries)
	}

	outputHistoryHuman(out, summary, entries, displayLabels(cfg.Benchmark.Labels))
	return nil
}

// displayLabels fills empty labels with the defaults used by the benchmark.
func displayLabels(l config.LabelsConfig) config.LabelsConfig {
	if l.A == "" {
		l.A = bench.DefaultLabelA
	}
	if l.B == "" {
		l.B = bench.DefaultLabelB
	}
	return l
}

func limitDays(days []stats.DaySummary, n int) []stats.DaySummary {
	if n > 0 && len(days) > n {
		return days[:n]
	}
	return days
}

// outputHistoryJSON renders the summary (and optional daily history) as JSON.
func outputHistoryJSON(w io.Writer, summary stats.Summary, entries []stats.Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if historyDays == 0 {
		return enc.Encode(summary)
	}

	out := struct {
		Summary stats.Summary      `json:"summary"`
		History []stats.DaySummary `json:"history"`
	}{
		Summary: summary,
		History: limitDays(stats.HistoryByDay(entries), historyDays),
	}
	return enc.Encode(out)
}

// outputHistoryHuman renders the summary using lipgloss styles.
func outputHistoryHuman(w io.Writer, summary stats.Summary, entries []stats.Entry, labels config.LabelsConfig) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)

	content := headerStyle.Render(fmt.Sprintf("toonbench history: %s vs %s", labels.A, labels.B)) + "\n\n"

	content += labelStyle.Render("Runs") + valueStyle.Render(fmt.Sprintf("%d", summary.TotalRuns)) + "\n"
	content += labelStyle.Render("Tokens ("+labels.A+")") + valueStyle.Render(formatInt(summary.TokensA)) + "\n"
	content += labelStyle.Render("Tokens ("+labels.B+")") + valueStyle.Render(formatInt(summary.TokensB)) + "\n"
	content += labelStyle.Render("Tokens saved") +
		valueStyle.Render(fmt.Sprintf("%s  ▲ %.1f%%", formatInt(summary.TokensSaved), summary.SavingsPct)) + "\n"
	content += labelStyle.Render("Est. cost saved") +
		valueStyle.Render(fmt.Sprintf("$%.4f", summary.CostSavedUSD)) +
		dimStyle.Render(fmt.Sprintf("  (at $%.2f per 1M tokens)", stats.CostPerMTokenUSD)) + "\n"

	byEncoding := make([]string, 0, len(summary.ByEncoding))
	for _, name := range summary.Encodings() {
		byEncoding = append(byEncoding, fmt.Sprintf("%s %d", name, summary.ByEncoding[name]))
	}
	content += "\n" + dimStyle.Render("By encoding: "+strings.Join(byEncoding, " · ")) + "\n"

	fmt.Fprintln(w, boxStyle.Render(content))

	if historyDays > 0 {
		printDailyTable(w, entries, dimStyle, valueStyle)
	}
}

func printDailyTable(w io.Writer, entries []stats.Entry, dimStyle, valueStyle lipgloss.Style) {
	days := limitDays(stats.HistoryByDay(entries), historyDays)

	colDate := lipgloss.NewStyle().Width(14)
	colNum := lipgloss.NewStyle().Width(10)
	colSaved := lipgloss.NewStyle().Width(16)
	colPct := lipgloss.NewStyle().Width(10)

	header := dimStyle.Render(
		colDate.Render("Date") +
			colNum.Render("Runs") +
			colSaved.Render("Tokens saved") +
			colPct.Render("Savings"),
	)
	sep := dimStyle.Render(fmt.Sprintf("%-14s%-10s%-16s%-10s", "─────────────", "─────────", "───────────────", "────────"))
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, sep)

	for _, d := range days {
		row := colDate.Render(d.Date) +
			colNum.Render(fmt.Sprintf("%d", d.RunCount)) +
			colSaved.Render(formatInt(d.TokensSaved)) +
			colPct.Render(fmt.Sprintf("%.1f%%", d.SavingsPct()))
		fmt.Fprintln(w, valueStyle.Render(row))
	}
}

func formatInt(n int) string {
	if n < 0 {
		return "-" + formatInt(-n)
	}
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
