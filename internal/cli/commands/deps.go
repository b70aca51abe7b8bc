package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"tse2e/internal/config"
	"tse2e/internal/logging"
	"tse2e/internal/registry"
	"tse2e/internal/storage"
)

// Deps holds what commands share once flags are parsed
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *registry.Registry
	Out      io.Writer // report output
	Err      io.Writer // progress, statistics and diagnostics

	storage storage.Storage
	closers []io.Closer
}

// NewDeps creates Deps writing to out and errOut. Config and Logger are
// filled in by Setup.
func NewDeps(r *registry.Registry, out, errOut io.Writer) *Deps {
	return &Deps{
		Config:   config.New(),
		Logger:   zap.NewNop(),
		Registry: r,
		Out:      out,
		Err:      errOut,
	}
}

// Setup loads the configuration and builds the logger.
func (d *Deps) Setup(flags config.Flags) error {
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	d.Config = cfg
	d.Logger = logger
	d.Logger.Debug("configuration loaded",
		zap.String("project_path", cfg.ProjectPath),
		zap.Int("processors", cfg.Processors),
		zap.Int64("seed", cfg.Seed),
		zap.String("backend", cfg.Backend))
	return nil
}

// Storage opens the configured storage on first use. Runs always go to the
// JSON file and are mirrored to MySQL when a results DSN is configured.
func (d *Deps) Storage(ctx context.Context) (storage.Storage, error) {
	if d.storage != nil {
		return d.storage, nil
	}

	primary := storage.NewJSONStorage(d.Config)
	var mirrors []storage.Storage
	if d.Config.ResultsDSN != "" {
		db, err := storage.OpenMySQL(ctx, d.Config.ResultsDSN, d.Logger)
		if err != nil {
			return nil, fmt.Errorf("open results database: %w", err)
		}
		d.closers = append(d.closers, db)
		mirrors = append(mirrors, db)
	}

	d.storage = storage.NewMirrored(primary, mirrors...)
	return d.storage, nil
}

// Close releases opened storages and flushes the logger.
func (d *Deps) Close() error {
	var err error
	for _, c := range d.closers {
		err = multierr.Append(err, c.Close())
	}
	d.closers = nil
	_ = d.Logger.Sync()
	return err
}

// interactive reports whether w is a terminal.
func interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
