package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"scoreview/internal/catalog"
	"scoreview/internal/chart"
	"scoreview/internal/config"
	"scoreview/internal/logx"
	"scoreview/internal/paths"
	"scoreview/internal/session"
	"scoreview/internal/state"
)

// workspace bundles everything a command needs from the resolved directory.
type workspace struct {
	pp      paths.ProjectPaths
	cfg     config.Config
	log     *zap.Logger
	store   state.Store
	sources catalog.Sources

	closers []io.Closer
}

type workspaceOptions struct {
	// ephemeral keeps state in memory, leaving the persisted export alone.
	ephemeral bool
	// skipSources avoids reading the reference data files.
	skipSources bool
	// lenient lets invalid config values through so they can be reported.
	lenient bool
}

func openWorkspace(ctx context.Context, opts workspaceOptions) (*workspace, error) {
	pp, err := paths.Resolve(workspaceDir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(logLevel) != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil && !opts.lenient {
		return nil, fmt.Errorf("invalid config %s: %w", pp.ConfigFile, err)
	}
	pp = paths.ApplyConfig(pp, cfg)

	ws := &workspace{pp: pp, cfg: cfg, log: zap.NewNop()}
	if exists, _ := paths.FileExists(pp.ConfigFile); exists {
		logger, closer, err := logx.New(pp, cfg.Logging.Level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		} else {
			ws.log = logger
			ws.closers = append(ws.closers, closer)
		}
	}

	backend, _ := state.ParseBackend(cfg.State.Backend)
	if opts.ephemeral {
		backend = state.BackendMemory
	}
	store, err := state.Open(backend, pp.StateFile)
	if err != nil {
		ws.log.Warn("state store unavailable, using memory", zap.String("path", pp.StateFile), zap.Error(err))
		store = state.NewMemory()
	}
	ws.store = store
	ws.closers = append(ws.closers, store)

	if opts.skipSources {
		ws.sources = catalog.Empty()
	} else {
		ws.sources = catalog.LoadSources(ctx, cfg.DataPaths(pp.Root), ws.log)
	}
	return ws, nil
}

func (ws *workspace) Close() error {
	var first error
	for i := len(ws.closers) - 1; i >= 0; i-- {
		if err := ws.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// newSession builds a session seeded from config view preferences.
func (ws *workspace) newSession() *session.Session {
	key, _ := chart.ParseSortKey(ws.cfg.View.SortKey)
	dir, _ := chart.ParseDirection(ws.cfg.View.SortDirection)
	return session.New(ws.sources, ws.store, ws.log, session.Options{
		SortKey:          key,
		Direction:        dir,
		ItemsPerPage:     ws.cfg.View.ItemsPerPage,
		DisabledVersions: ws.cfg.View.DisabledVersions,
	})
}

// openSession restores the persisted export, or loads csvPath instead when
// set. It fails when neither yields data.
func (ws *workspace) openSession(csvPath string, stdin io.Reader) (*session.Session, error) {
	sess := ws.newSession()
	if csvPath != "" {
		text, err := readCSVInput(csvPath, stdin)
		if err != nil {
			return nil, err
		}
		sess.LoadCSV(text)
		return sess, nil
	}
	if !sess.Restore() {
		return nil, fmt.Errorf("no score export loaded; run `scoreview load <file>` or pass --csv")
	}
	return sess, nil
}

func readCSVInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read csv: %w", err)
	}
	return string(data), nil
}
