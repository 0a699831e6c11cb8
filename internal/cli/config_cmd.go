package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/researchfolio/pubpager/internal/config"
)

const maskedSecret = "********"

// errConfigExists is returned by config init without --force.
var errConfigExists = errors.New("configuration file already exists, use --force to overwrite")

func newConfigCmd(st *rootState) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(st))
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force   bool
		global  bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Long: `Writes a configuration file with default values.

Inside a project (a directory with a .pubpager/ folder above the working
directory, or --project-dir) the project config .pubpager/config.yaml is
written together with a .gitignore. --project creates .pubpager/ in the
working directory. Otherwise the global $PUBPAGER_HOME/config.yaml is written.`,
		Example: `  # Global configuration
  pubpager config init

  # Project configuration in the current directory
  pubpager config init --project

  # Overwrite an existing file
  pubpager config init --force`,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if global {
				return initGlobalConfig(cmd, force)
			}

			projectFlag, _ := cmd.Flags().GetString("project-dir")
			if project && projectFlag == "" {
				projectFlag = "."
			}
			wd, _ := os.Getwd()
			if projectDir := config.ResolveProjectDir(cmd.Context(), projectFlag, wd); projectDir != "" {
				return initProjectConfig(cmd, projectDir, force)
			}
			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "write the global configuration even inside a project")
	cmd.Flags().BoolVar(&project, "project", false, "create .pubpager/ in the working directory")
	cmd.MarkFlagsMutuallyExclusive("global", "project")

	return cmd
}

// initProjectConfig writes projectDir/config.yaml and a .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")
	if err := checkWritable(configPath, force); err != nil {
		return err
	}

	if err := config.Default().SaveTo(configPath); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("creating .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore for the cache and log files\n")
	}
	return nil
}

// initGlobalConfig writes the global config file.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	configPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}
	if err := checkWritable(configPath, force); err != nil {
		return err
	}

	if err := config.Default().SaveTo(configPath); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	return nil
}

func checkWritable(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errConfigExists
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

func newConfigShowCmd(st *rootState) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after merging the global file, the project
overlay, environment variables and flags. The API key is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shown := *st.cfg
			if shown.Scholar.APIKey != "" {
				shown.Scholar.APIKey = maskedSecret
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatYAML:
				return outputYAML(out, &shown)
			case formatJSON:
				return outputJSON(out, &shown)
			default:
				return fmt.Errorf("unsupported format %q: use %s or %s", format, formatYAML, formatJSON)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", formatYAML, "output format: yaml or json")
	return cmd
}

func outputYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
