package cli

import (
	"fmt"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/yoanbernabeu/toonbench/config"
	"github.com/yoanbernabeu/toonbench/samples"
)

var (
	samplesFile   string
	samplesExport bool
	samplesTOON   bool
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List the active benchmark samples",
	Long: `List the samples "toonbench run" would benchmark.

With --toon each sample's TOON text is printed under its name. With
--export the active set is printed as a YAML sample file, a starting
point for a custom set passed with --samples.`,
	Args: cobra.NoArgs,
	RunE: runSamplesList,
}

func init() {
	rootCmd.AddCommand(samplesCmd)
	samplesCmd.Flags().StringVarP(&samplesFile, "samples", "s", "", "YAML sample file (default: built-in samples)")
	samplesCmd.Flags().BoolVar(&samplesExport, "export", false, "Print the samples as a YAML sample file")
	samplesCmd.Flags().BoolVarP(&samplesTOON, "toon", "t", false, "Print the TOON text of every sample")
	samplesCmd.MarkFlagsMutuallyExclusive("export", "toon")
}

func runSamplesList(cmd *cobra.Command, args []string) error {
	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Load(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	path := cfg.ResolveSamplesPath(projectRoot)
	if samplesFile != "" {
		path = samplesFile
	}
	set, err := loadSamples(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if samplesExport {
		data, err := samples.Marshal(set)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	if samplesTOON {
		for i, s := range set {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "# %s\n%s\n", s.Name, s.B)
		}
		return nil
	}

	labels := displayLabels(cfg.Benchmark.Labels)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tName\t%s chars\t%s chars\n", labels.A, labels.B)
	for i, s := range set {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, s.Name,
			formatInt(utf8.RuneCountInString(s.A)), formatInt(utf8.RuneCountInString(s.B)))
	}
	return tw.Flush()
}
