package cli

import (
	"github.com/spf13/cobra"

	"scoreview/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	var (
		csvPath string
		plain   bool
	)
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through charts level by level in the terminal",
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

			switch tui.DetectMode(cmd.OutOrStdout(), plain, outputJSON) {
			case tui.ModeTUI:
				return tui.RunBrowser(tui.NewBrowserModel(sess))
			case tui.ModeJSON:
				return writeJSON(cmd, "browse", sess.Page())
			default:
				writeListTable(cmd, sess.CurrentLevel(), sess.Page())
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "Browse this export instead of the stored one")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the first page instead of starting the browser")
	return cmd
}
