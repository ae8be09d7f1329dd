// Package convert runs the full script-to-project conversion: parse the
// script, load the project document, align cues to voice items, and write
// the updated document. The output file is only written when every cue
// aligned; any failure aborts the run with the input untouched.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"cuesync/internal/align"
	"cuesync/internal/config"
	"cuesync/internal/dimcache"
	"cuesync/internal/logging"
	"cuesync/internal/project"
	"cuesync/internal/script"
)

// Options describes one conversion run.
type Options struct {
	ScriptPath  string
	ProjectPath string
	OutputPath  string

	// Overrides for the corresponding config values; nil/empty keeps config.
	InsertionLayer *int
	ProjectRoot    string
	ImageDir       string

	Config *config.Config
	Logger *slog.Logger
}

// Result reports what a successful run produced.
type Result struct {
	RunID   string
	Project *project.Project
	Created []project.Item
}

// Run executes the conversion described by opts.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		defaults := config.Default()
		// Default() carries unexpanded paths; without a loaded config the
		// cache location is unknown, so probe directly.
		defaults.DimensionCache.Enabled = false
		cfg = &defaults
	}

	runID := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.String(logging.FieldRunID, runID))

	cues, err := script.Load(opts.ScriptPath)
	if err != nil {
		return nil, err
	}
	logger.Info("parsed script",
		logging.String(logging.FieldPath, opts.ScriptPath),
		logging.Int(logging.FieldCount, len(cues)))

	doc, err := project.ReadFile(opts.ProjectPath)
	if err != nil {
		return nil, err
	}

	prober, closeProber, err := newProber(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closeProber()

	alignOpts := align.Options{
		InsertionLayer: cfg.Align.InsertionLayer,
		BottomMargin:   cfg.Align.BottomMargin,
		SideMargin:     cfg.Align.SideMargin,
		ProjectRoot:    projectRoot(opts, cfg),
		ImageDir:       opts.ImageDir,
		Prober:         prober,
		Logger:         logger,
	}
	if opts.InsertionLayer != nil {
		alignOpts.InsertionLayer = *opts.InsertionLayer
	}

	created, err := align.Run(ctx, doc, cues, alignOpts)
	if err != nil {
		return nil, fmt.Errorf("align script %s: %w", opts.ScriptPath, err)
	}

	if err := project.WriteFile(opts.OutputPath, doc); err != nil {
		return nil, err
	}
	logger.Info("wrote project",
		logging.String(logging.FieldPath, opts.OutputPath),
		logging.Int(logging.FieldCount, len(created)))

	return &Result{RunID: runID, Project: doc, Created: created}, nil
}

// projectRoot picks the image path prefix: flag, then config (already
// carrying any PROJECT_ROOT env override), then the output directory.
func projectRoot(opts Options, cfg *config.Config) string {
	if strings.TrimSpace(opts.ProjectRoot) != "" {
		return opts.ProjectRoot
	}
	if strings.TrimSpace(cfg.Align.ProjectRoot) != "" {
		return cfg.Align.ProjectRoot
	}
	return filepath.Dir(opts.OutputPath)
}

func newProber(cfg *config.Config, logger *slog.Logger) (dimcache.Prober, func(), error) {
	if !cfg.DimensionCache.Enabled {
		return dimcache.Direct(), func() {}, nil
	}
	cache, err := dimcache.Open(cfg.DimensionCache.Path, dimcache.Direct(), logger)
	if err != nil {
		// A broken cache should not block conversions.
		logger.Warn("dimension cache unavailable; probing directly", logging.Error(err))
		return dimcache.Direct(), func() {}, nil
	}
	return cache, func() { _ = cache.Close() }, nil
}
