package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"appshelf/internal/application/commands"
	"appshelf/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the catalog",
	Long: `Count apps per type and per platform and report how the appinfo
file was read.

Example:
  appshelf-cli stats`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := loadCatalog()
		if err != nil {
			return err
		}

		summary, err := commands.NewStatsCommand(result.Catalog).Execute(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printSummary(out, summary)
		fmt.Fprintln(out)
		printLoadStats(out, result.Stats)
		return nil
	},
}

func printSummary(w io.Writer, s domain.Summary) {
	fmt.Fprintf(w, "apps:       %d (%d named)\n", s.Total, s.Named)

	fmt.Fprintln(w, "by type:")
	for _, t := range domain.AppTypes {
		if n := s.ByType[t]; n > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", t, n)
		}
	}

	fmt.Fprintln(w, "by platform:")
	names := make([]string, 0, len(s.ByPlatform))
	for name := range s.ByPlatform {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-12s %d\n", name, s.ByPlatform[name])
	}
}

func printLoadStats(w io.Writer, st domain.LoadStats) {
	if st.FromCache {
		fmt.Fprintln(w, "source:     snapshot")
		return
	}
	fmt.Fprintln(w, "source:     appinfo")
	fmt.Fprintf(w, "bytes:      %d\n", st.Bytes)
	fmt.Fprintf(w, "signatures: %d\n", st.Matches)
	fmt.Fprintf(w, "decoded:    %d\n", st.Decoded)
	fmt.Fprintf(w, "skipped:    %d\n", st.Skipped)
	fmt.Fprintf(w, "no id:      %d\n", st.NoID)
	fmt.Fprintf(w, "duplicates: %d\n", st.Duplicates)
	fmt.Fprintf(w, "duration:   %s\n", st.Duration)
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
