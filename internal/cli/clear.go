package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the stored score export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(cmd.Context(), workspaceOptions{skipSources: true})
			if err != nil {
				return err
			}
			defer ws.Close()

			ws.newSession().ClearData()
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared stored score export")
			return nil
		},
	}
}
