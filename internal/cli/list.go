package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scoreview/internal/chart"
	"scoreview/internal/session"
)

type listOptions struct {
	csvPath         string
	level           string
	sortKey         string
	desc            bool
	page            int
	perPage         int
	excludeVersions []string
}

func newListCmd() *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one level's charts, sorted and paginated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "Read this export instead of the stored one")
	cmd.Flags().StringVar(&opts.level, "level", "", "Level key to show (default: lowest level)")
	cmd.Flags().StringVar(&opts.sortKey, "sort", "", "Sort key: version, title, missCount, clearType, lastPlayDate")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&opts.page, "page", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&opts.perPage, "per-page", 0, "Charts per page (default: stored page size)")
	cmd.Flags().StringArrayVar(&opts.excludeVersions, "exclude-version", nil, "Hide charts of this version (repeatable)")
	return cmd
}

func runList(cmd *cobra.Command, opts *listOptions) error {
	ws, err := openWorkspace(cmd.Context(), workspaceOptions{ephemeral: opts.csvPath != ""})
	if err != nil {
		return err
	}
	defer ws.Close()

	sess, err := ws.openSession(opts.csvPath, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if err := applyListOptions(sess, opts); err != nil {
		return err
	}

	page := sess.Page()
	if outputJSON {
		return writeJSON(cmd, "list", struct {
			Level     string          `json:"level"`
			SortKey   chart.SortKey   `json:"sortKey"`
			Direction chart.Direction `json:"direction"`
			chart.Page
		}{sess.CurrentLevel(), sess.SortKey(), sess.Direction(), page})
	}
	writeListTable(cmd, sess.CurrentLevel(), page)
	return nil
}

func applyListOptions(sess *session.Session, opts *listOptions) error {
	if opts.sortKey != "" {
		key, err := chart.ParseSortKey(opts.sortKey)
		if err != nil {
			return err
		}
		sess.SetSortKey(key)
	}
	if opts.desc {
		sess.SetSortDirection(chart.Desc)
	}
	for _, v := range opts.excludeVersions {
		if sess.VersionEnabled(v) {
			sess.ToggleVersion(v)
		}
	}
	if opts.level != "" {
		sess.SetSelectedLevel(opts.level)
	}
	if opts.perPage != 0 {
		if opts.perPage < 1 {
			return fmt.Errorf("--per-page must be positive, got %d", opts.perPage)
		}
		sess.SetItemsPerPage(opts.perPage)
	}
	sess.SetCurrentPage(opts.page)
	return nil
}

func writeListTable(cmd *cobra.Command, level string, page chart.Page) {
	fmt.Fprintf(cmd.OutOrStdout(), "Level %s: page %d/%d (%d charts)\n", level, page.Number, max(page.TotalPages, 1), page.Total)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "TIER\tLAMP\tTITLE\tDJ\tSCORE\tMISS\tVERSION\tLAST PLAY")
	for _, c := range page.Charts {
		fmt.Fprintf(w, "%s%d\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			chart.TierBadge(c.Difficulty),
			c.OfficialLevel,
			chart.ClearLabel(c.ClearType),
			c.DisplayTitle,
			c.DJLevel,
			c.Score,
			missText(c),
			chart.VersionAbbrev(c.Version),
			dashIfEmpty(c.LastPlayDate),
		)
	}
	w.Flush()
}
