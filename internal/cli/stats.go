package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scoreview/internal/chart"
	"scoreview/pkg/scorecsv"
)

type statsRow struct {
	Level  string         `json:"level"`
	Counts map[string]int `json:"counts"`
	chart.ClearRate
}

func newStatsCmd() *cobra.Command {
	var (
		csvPath         string
		excludeVersions []string
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show clear-type counts and clear rate per level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(cmd.Context(), workspaceOptions{ephemeral: csvPath != ""})
			if err != nil {
				return err
			}
			defer ws.Close()

			sess, err := ws.openSession(csvPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			for _, v := range excludeVersions {
				if sess.VersionEnabled(v) {
					sess.ToggleVersion(v)
				}
			}

			stats := sess.Stats()
			rows := make([]statsRow, 0, len(stats))
			for _, level := range chart.SortedLevels(stats) {
				counts := stats[level]
				row := statsRow{Level: level, Counts: make(map[string]int, len(counts)), ClearRate: chart.RateOf(counts)}
				for ct, n := range counts {
					row.Counts[string(ct)] = n
				}
				rows = append(rows, row)
			}

			if outputJSON {
				return writeJSON(cmd, "stats", rows)
			}
			writeStatsTable(cmd, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "Read this export instead of the stored one")
	cmd.Flags().StringArrayVar(&excludeVersions, "exclude-version", nil, "Hide charts of this version (repeatable)")
	return cmd
}

func writeStatsTable(cmd *cobra.Command, rows []statsRow) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', tabwriter.AlignRight)
	headers := []string{"LEVEL"}
	for _, ct := range scorecsv.ClearTypes {
		headers = append(headers, chart.ClearLabel(ct))
	}
	headers = append(headers, "TOTAL", "RATE", "")
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for _, row := range rows {
		fields := []string{row.Level}
		for _, ct := range scorecsv.ClearTypes {
			fields = append(fields, fmt.Sprint(row.Counts[string(ct)]))
		}
		fields = append(fields, fmt.Sprint(row.Total), fmt.Sprintf("%.1f%%", row.Percent), "")
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
	w.Flush()
}
