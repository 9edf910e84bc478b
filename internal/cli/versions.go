package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scoreview/internal/chart"
)

type versionRow struct {
	Version string `json:"version"`
	Abbrev  string `json:"abbrev"`
	Charts  int    `json:"charts"`
	Enabled bool   `json:"enabled"`
}

func newVersionsCmd() *cobra.Command {
	var csvPath string
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List versions present in the loaded charts",
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

			counts := make(map[string]int)
			for _, c := range sess.AllCharts() {
				counts[c.Version]++
			}
			var rows []versionRow
			for _, v := range sess.AvailableVersions() {
				rows = append(rows, versionRow{
					Version: v,
					Abbrev:  chart.VersionAbbrev(v),
					Charts:  counts[v],
					Enabled: sess.VersionEnabled(v),
				})
			}

			if outputJSON {
				return writeJSON(cmd, "versions", rows)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "ABBR\tVERSION\tCHARTS\tSHOWN")
			for _, r := range rows {
				shown := "yes"
				if !r.Enabled {
					shown = "no"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.Abbrev, r.Version, r.Charts, shown)
			}
			w.Flush()
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "Read this export instead of the stored one")
	return cmd
}
