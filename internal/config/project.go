package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/researchfolio/pubpager/internal/logging"
)

// ProjectDirName is the project-local configuration directory.
const ProjectDirName = ".pubpager"

// EnvProjectDir overrides project directory discovery.
const EnvProjectDir = "PUBPAGER_PROJECT_DIR"

// ResolveProjectDir determines the project-local .pubpager directory path.
// It checks (in order):
//  1. flagValue
//  2. PUBPAGER_PROJECT_DIR
//  3. the nearest ancestor of startDir containing a .pubpager directory
//
// Returns an absolute path, or "" if no project was found. Nothing is created.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}
	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ProjectDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadWithProject loads the global config and shallow-merges the project
// config on top when projectDir holds one. A broken project file is logged
// and ignored.
func LoadWithProject(ctx context.Context, globalPath, projectDir string) (*Config, error) {
	cfg, err := Load(globalPath)
	if err != nil {
		return nil, err
	}
	if projectDir == "" {
		return cfg, nil
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, statErr := os.Stat(overlayPath); statErr != nil {
		return cfg, nil
	}

	merged := *cfg
	if mergeErr := ShallowMergeYAML(&merged, overlayPath); mergeErr != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(mergeErr).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global config")
		return cfg, nil
	}
	return &merged, nil
}

// toAbsProjectDir converts dir to an absolute path and appends ".pubpager"
// unless it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == ProjectDirName {
		return abs
	}
	return filepath.Join(abs, ProjectDirName)
}
