// Package cli implements the pubpager command line.
package cli

import (
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/researchfolio/pubpager/internal/cache"
	"github.com/researchfolio/pubpager/internal/config"
	"github.com/researchfolio/pubpager/internal/loader"
	"github.com/researchfolio/pubpager/internal/logging"
	"github.com/researchfolio/pubpager/internal/render"
)

// annotationConfigOptional marks commands that still run when the config
// file is broken, falling back to defaults.
const annotationConfigOptional = "pubpager/config-optional"

// rootState is shared by all subcommands of one root command.
type rootState struct {
	cfg       *config.Config
	logResult *logging.Result
	logger    zerolog.Logger
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root Cobra command for the pubpager CLI.
func NewRootCmd(ver string) *cobra.Command {
	st := &rootState{cfg: config.Default(), logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "pubpager",
		Short: "Paginate and render academic publication lists",
		Long: `pubpager loads a publications data file, splits it into pages and renders
one page at a time: into an HTML page, as JSON, or in an interactive terminal
browser. It can also regenerate the data file from Semantic Scholar.`,
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// A missing .env is the normal case.
			_ = godotenv.Load()

			cfg, err := loadConfig(cmd)
			if err != nil {
				if cmd.Annotations[annotationConfigOptional] != "true" {
					return err
				}
				cmd.PrintErrf("Warning: %v; using defaults\n", err)
				cfg = config.Default()
			}
			st.cfg = cfg
			st.logResult, st.logger = setupLogging(cmd, cfg)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return st.logResult.Close()
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default $PUBPAGER_HOME/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding a .pubpager/config.yaml overlay")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")

	cmd.AddCommand(
		newRenderCmd(st),
		newPaginateCmd(st),
		newBrowseCmd(st),
		newSyncCmd(st),
		newConfigCmd(st),
	)
	return cmd
}

const rootCmdExample = `  # Render the first page into the built-in page skeleton
  pubpager render --source data/publications.json

  # Render page 2 of a remote list into your own page
  pubpager render --source https://example.org/data/publications.json --page 2 --template index.html -o out.html

  # Page through pre-rendered publications
  pubpager paginate --input publications.html --page 3

  # Browse interactively
  pubpager browse

  # Regenerate the data file from Semantic Scholar
  pubpager sync --author-id 1741101 --scholar-id v2VkcZEAAAAJ

  # Write a default configuration
  pubpager config init`

// loadConfig builds the effective configuration: file (global plus project
// overlay, or --config), then environment, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	ctx := cmd.Context()

	var (
		cfg *config.Config
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		globalPath, pathErr := config.ConfigFilePath()
		if pathErr != nil {
			return nil, withExitCode(ExitConfigError, pathErr)
		}
		projectFlag, _ := cmd.Flags().GetString("project-dir")
		wd, _ := os.Getwd()
		cfg, err = config.LoadWithProject(ctx, globalPath, config.ResolveProjectDir(ctx, projectFlag, wd))
	}
	if err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = config.LogFormatConsole
		cfg.Logging.File = ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}
	return cfg, nil
}

// component returns the command logger tagged with name.
func (st *rootState) component(name string) zerolog.Logger {
	return logging.ComponentLogger(st.logger, name)
}

// pageSize returns flagValue when set, else the configured page size.
func (st *rootState) pageSize(flagValue int) int {
	if flagValue != 0 {
		return flagValue
	}
	return st.cfg.Pagination.PageSize
}

// source returns flagValue when set, else the configured source.
func (st *rootState) source(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return st.cfg.Source
}

// highlighter builds the owner highlighter. An empty pattern list disables
// author emphasis and yields a nil Highlighter.
func (st *rootState) highlighter() (*render.Highlighter, error) {
	if len(st.cfg.Highlight.Patterns) == 0 {
		return nil, nil //nolint:nilnil // nil means no emphasis.
	}
	h, err := render.NewHighlighter(st.cfg.Highlight.Patterns)
	if err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}
	return h, nil
}

// newLoader builds a loader with the response cache when it is enabled. A
// cache that cannot be opened is logged and skipped.
func (st *rootState) newLoader() *loader.Loader {
	logger := st.component("loader")
	opts := []loader.Option{loader.WithLogger(logger)}

	if st.cfg.Cache.Enabled {
		dir, err := st.cfg.CacheDirectory()
		if err == nil {
			var store *cache.FileStore
			store, err = cache.NewFileStore(dir, true, st.cfg.Cache.TTLSeconds)
			if err == nil {
				opts = append(opts, loader.WithCache(store))
			}
		}
		if err != nil {
			logger.Warn().Err(err).Msg("response cache unavailable")
		}
	}
	return loader.New(opts...)
}
