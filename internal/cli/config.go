package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scoreview/internal/config"
	"scoreview/internal/paths"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit workspace configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration and the files it points at",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Open the workspace configuration in $EDITOR",
		Args:  cobra.NoArgs,
		RunE:  runConfigEdit,
	})
	return cmd
}

// resolvedFile is one file the configuration refers to.
type resolvedFile struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

type configReport struct {
	ConfigFile string         `json:"configFile"`
	Defaulted  bool           `json:"defaulted"`
	YAML       string         `json:"yaml"`
	Files      []resolvedFile `json:"files"`
}

func buildConfigReport(pp paths.ProjectPaths, cfg config.Config) (configReport, error) {
	data, err := cfg.Marshal()
	if err != nil {
		return configReport{}, err
	}
	exists, err := paths.FileExists(pp.ConfigFile)
	if err != nil {
		return configReport{}, fmt.Errorf("check config: %w", err)
	}

	pp = paths.ApplyConfig(pp, cfg)
	dp := cfg.DataPaths(pp.Root)
	report := configReport{ConfigFile: pp.ConfigFile, Defaulted: !exists, YAML: string(data)}
	for _, f := range []resolvedFile{
		{Name: "difficulty table", Path: dp.DifficultyTable},
		{Name: "matching table", Path: dp.MatchingTable},
		{Name: "version order", Path: dp.VersionOrder},
		{Name: "state (" + cfg.State.Backend + ")", Path: pp.StateFile},
		{Name: "logs", Path: pp.LogsDir},
	} {
		f.Exists, _ = paths.FileExists(f.Path)
		report.Files = append(report.Files, f)
	}
	return report, nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(workspaceDir)
	if err != nil {
		return err
	}
	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return err
	}
	report, err := buildConfigReport(pp, cfg)
	if err != nil {
		return err
	}
	if outputJSON {
		return writeJSON(cmd, "config", report)
	}

	out := cmd.OutOrStdout()
	if report.Defaulted {
		fmt.Fprintf(out, "# %s not found; showing defaults\n", report.ConfigFile)
	}
	fmt.Fprint(out, report.YAML)
	if !strings.HasSuffix(report.YAML, "\n") {
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "\nResolved files:")
	w := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	for _, f := range report.Files {
		state := "present"
		if !f.Exists {
			state = "missing"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", f.Name, f.Path, state)
	}
	return w.Flush()
}

// editorCommand splits $EDITOR into a program and its arguments.
func editorCommand(file string) []string {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	return append(strings.Fields(editor), file)
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pp, err := paths.Resolve(workspaceDir)
	if err != nil {
		return err
	}
	if err := pp.EnsureRoot(); err != nil {
		return err
	}
	var created []string
	if err := ensureConfig(pp, &created, zap.NewNop()); err != nil {
		return err
	}

	argv := editorCommand(pp.ConfigFile)
	execCmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	execCmd.Stdout = cmd.OutOrStdout()
	execCmd.Stderr = cmd.ErrOrStderr()
	execCmd.Stdin = cmd.InOrStdin()
	execCmd.Dir = pp.Root
	if err := execCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return err
	}
	failed := false
	for _, res := range cfg.ValidateStrict(pp.Root) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", res.Level, res.Message)
		failed = failed || res.Level == "error"
	}
	if failed {
		return fmt.Errorf("edited config %s is invalid", pp.ConfigFile)
	}
	return nil
}
