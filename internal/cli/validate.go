package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scoreview/internal/config"
	"scoreview/pkg/scorecsv"
)

type validateReport struct {
	Workspace    string                    `json:"workspace"`
	Config       []config.ValidationResult `json:"config"`
	CatalogSongs int                       `json:"catalogSongs"`
	Aliases      int                       `json:"aliases"`
	Versions     int                       `json:"versions"`
	Rows         int                       `json:"rows"`
	Issues       scorecsv.Issues           `json:"issues"`
	Unmatched    []string                  `json:"unmatched"`
}

func (r validateReport) errorCount(strict bool) int {
	n := 0
	for _, res := range r.Config {
		if res.Level == "error" || strict {
			n++
		}
	}
	if strict {
		n += len(r.Issues) + len(r.Unmatched)
	}
	return n
}

func newValidateCmd() *cobra.Command {
	var (
		csvPath string
		strict  bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the workspace config, data files and a score export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(cmd.Context(), workspaceOptions{ephemeral: csvPath != "", lenient: true})
			if err != nil {
				return err
			}
			defer ws.Close()

			report := validateReport{
				Workspace:    ws.pp.Root,
				Config:       ws.cfg.ValidateStrict(ws.pp.Root),
				CatalogSongs: ws.sources.Catalog.Len(),
				Aliases:      ws.sources.Aliases.Len(),
				Versions:     len(ws.sources.VersionOrder),
			}

			sess := ws.newSession()
			if csvPath != "" {
				text, err := readCSVInput(csvPath, cmd.InOrStdin())
				if err != nil {
					return err
				}
				sess.LoadCSV(text)
			} else {
				sess.Restore()
			}
			report.Rows = len(sess.Scores())
			report.Issues = sess.Issues()
			report.Unmatched = sess.Unmatched()

			if outputJSON {
				if err := writeJSON(cmd, "validate", report); err != nil {
					return err
				}
			} else {
				writeValidateTable(cmd, report)
			}

			if n := report.errorCount(strict); n > 0 {
				return fmt.Errorf("validation found %d problem(s)", n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "Validate this export instead of the stored one")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings, parse issues and unmatched titles as failures")
	return cmd
}

func writeValidateTable(cmd *cobra.Command, r validateReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Workspace: %s\n", r.Workspace)

	w := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	fmt.Fprintf(w, "Catalog songs:\t%d\n", r.CatalogSongs)
	fmt.Fprintf(w, "Aliases:\t%d\n", r.Aliases)
	fmt.Fprintf(w, "Versions:\t%d\n", r.Versions)
	fmt.Fprintf(w, "Export rows:\t%d\n", r.Rows)
	w.Flush()

	if len(r.Config) > 0 {
		fmt.Fprintln(out, "Config:")
		for _, res := range r.Config {
			fmt.Fprintf(out, "  - %s: %s\n", res.Level, res.Message)
		}
	}
	if len(r.Issues) > 0 {
		fmt.Fprintln(out, "Parse issues:")
		for _, issue := range r.Issues {
			fmt.Fprintf(out, "  - %s\n", issue)
		}
	}
	if len(r.Unmatched) > 0 {
		fmt.Fprintln(out, "Export titles not in the catalog:")
		for _, title := range r.Unmatched {
			fmt.Fprintf(out, "  - %s\n", title)
		}
	}
}
