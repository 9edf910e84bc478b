package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scoreview/internal/chart"
)

func writeJSON(cmd *cobra.Command, what string, payload any) error {
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s json: %w", what, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func missText(c chart.Chart) string {
	if c.MissCount == nil {
		return "-"
	}
	return strconv.Itoa(*c.MissCount)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
