package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scoreview/internal/session"
)

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <export.csv|->",
		Short: "Load a score export and remember it for later commands",
		Args:  cobra.ExactArgs(1),
		RunE:  runLoad,
	}
}

func runLoad(cmd *cobra.Command, args []string) error {
	text, err := readCSVInput(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	// An empty blob reads back as "nothing stored", so refuse it here.
	if strings.TrimSpace(strings.TrimPrefix(text, "\ufeff")) == "" {
		return fmt.Errorf("score export %s is empty; pass it with --csv to view catalog placeholders", args[0])
	}

	ws, err := openWorkspace(cmd.Context(), workspaceOptions{})
	if err != nil {
		return err
	}
	defer ws.Close()

	sum := ws.newSession().LoadCSV(text)
	if outputJSON {
		return writeJSON(cmd, "load", sum)
	}
	writeLoadSummary(cmd, sum)
	return nil
}

func writeLoadSummary(cmd *cobra.Command, sum session.LoadSummary) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintf(w, "Rows:\t%d\n", sum.Rows)
	fmt.Fprintf(w, "Charts:\t%d\n", sum.Charts)
	fmt.Fprintf(w, "Played:\t%d\n", sum.Played)
	fmt.Fprintf(w, "Unmatched titles:\t%d\n", len(sum.Unmatched))
	fmt.Fprintf(w, "Parse issues:\t%d\n", len(sum.Issues))
	w.Flush()

	if len(sum.Issues) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Run `scoreview validate --csv <file>` for details on parse issues.")
	}
}
