package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scoreview/internal/alias"
	"scoreview/internal/catalog"
	"scoreview/pkg/scorecsv"
)

func newAliasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Maintain the export-title alias table",
	}
	cmd.AddCommand(newAliasSuggestCmd())
	return cmd
}

func newAliasSuggestCmd() *cobra.Command {
	var (
		csvPaths  []string
		outPath   string
		overwrite bool
		threshold float64
	)
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Fuzzy-match export titles against the catalog and write an alias table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(csvPaths) == 0 {
				return fmt.Errorf("at least one --csv file is required")
			}

			ws, err := openWorkspace(cmd.Context(), workspaceOptions{ephemeral: true})
			if err != nil {
				return err
			}
			defer ws.Close()

			exports := make([][]scorecsv.ScoreEntry, 0, len(csvPaths))
			for _, p := range csvPaths {
				entries, err := scorecsv.Load(p)
				if err != nil {
					return err
				}
				exports = append(exports, entries)
			}
			titles := alias.CollectTitles(exports...)

			if threshold == 0 {
				threshold = ws.cfg.Alias.Threshold
			}
			res, err := alias.Suggest(cmd.Context(), titles, ws.sources.Catalog, alias.Options{
				Threshold: threshold,
				Existing:  ws.sources.Aliases,
				Overwrite: overwrite,
			})
			if err != nil {
				return err
			}
			ws.log.Info("alias suggestion",
				zap.Int("titles", len(titles)),
				zap.Int("matched", len(res.Matches)),
				zap.Int("unmatched", len(res.Unmatched)),
			)

			if err := writeAliasTable(cmd, outPath, res.Aliases); err != nil {
				return err
			}
			reportSuggestions(cmd, res, outPath == "")
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&csvPaths, "csv", nil, "Score export to read titles from (repeatable)")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the alias table here instead of stdout")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Discard existing alias entries")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum similarity in (0, 1] (default: alias.threshold)")
	return cmd
}

func writeAliasTable(cmd *cobra.Command, outPath string, table *catalog.AliasTable) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("encode alias table: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}
	tmp := outPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write alias table: %w", err)
	}
	return os.Rename(tmp, outPath)
}

// reportSuggestions writes the match summary to stderr when the table went
// to stdout so the JSON stays clean.
func reportSuggestions(cmd *cobra.Command, res alias.Result, tableOnStdout bool) {
	out := cmd.OutOrStdout()
	if tableOnStdout {
		out = cmd.ErrOrStderr()
	}
	if outputJSON {
		buf, err := json.MarshalIndent(res, "", "  ")
		if err == nil {
			fmt.Fprintln(out, string(buf))
		}
		return
	}
	fmt.Fprintf(out, "%d exact, %d kept, %d matched, %d unmatched\n",
		res.Exact, res.Kept, len(res.Matches), len(res.Unmatched))
	for _, m := range res.Matches {
		fmt.Fprintf(out, "  matched %q -> %q (%.3f)\n", m.ExportTitle, m.Canonical, m.Score)
	}
	for _, m := range res.Unmatched {
		if m.Best == "" {
			fmt.Fprintf(out, "  no match %q\n", m.ExportTitle)
			continue
		}
		fmt.Fprintf(out, "  no match %q (closest %q, %.3f)\n", m.ExportTitle, m.Best, m.Score)
	}
}
