package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scoreview/internal/config"
	"scoreview/internal/logx"
	"scoreview/internal/paths"
)

var seedFiles = map[string]string{
	"difficulty_table.json": "{}\n",
	"matching_table.json":   "{}\n",
	"version_order.json":    "[]\n",
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a scoreview workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInit,
	}
}

func resolveInitDir(dirFlag string, args []string) string {
	if dirFlag != "" {
		return dirFlag
	}
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func runInit(cmd *cobra.Command, args []string) error {
	pp, err := paths.Resolve(resolveInitDir(workspaceDir, args))
	if err != nil {
		return err
	}

	if err := pp.EnsureRoot(); err != nil {
		return err
	}
	if err := pp.EnsureMetaDirs(); err != nil {
		return err
	}

	logger, closer, err := logx.New(pp, config.Default().Logging.Level)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Info("scoreview init", zap.String("workspace", pp.Root))

	created := make([]string, 0, 1+len(seedFiles))

	if err := ensureConfig(pp, &created, logger); err != nil {
		return err
	}
	for _, name := range []string{"difficulty_table.json", "matching_table.json", "version_order.json"} {
		if err := ensureSeed(filepath.Join(pp.DataDir, name), seedFiles[name], &created, logger); err != nil {
			return err
		}
	}

	if len(created) == 0 {
		cmd.Printf("Workspace already initialized at %s\n", pp.Root)
		return nil
	}

	cmd.Printf("Initialized workspace at %s\n", pp.Root)
	for _, entry := range created {
		rel, err := filepath.Rel(pp.Root, entry)
		if err != nil {
			rel = entry
		}
		cmd.Printf("  created %s\n", rel)
	}
	return nil
}

func ensureConfig(pp paths.ProjectPaths, created *[]string, logger *zap.Logger) error {
	exists, err := paths.FileExists(pp.ConfigFile)
	if err != nil {
		return fmt.Errorf("check config: %w", err)
	}
	if exists {
		logger.Debug("config exists", zap.String("path", pp.ConfigFile))
		return nil
	}

	data, err := config.Default().Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(pp.ConfigFile, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	logger.Info("created config", zap.String("path", pp.ConfigFile))
	*created = append(*created, pp.ConfigFile)
	return nil
}

func ensureSeed(path, contents string, created *[]string, logger *zap.Logger) error {
	exists, err := paths.FileExists(path)
	if err != nil {
		return fmt.Errorf("check %s: %w", filepath.Base(path), err)
	}
	if exists {
		return nil
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	logger.Info("created data file", zap.String("path", path))
	*created = append(*created, path)
	return nil
}
