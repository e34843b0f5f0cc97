package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/mdfence"
	"github.com/iw2rmb/mdfence/capability"
	"github.com/iw2rmb/mdfence/internal/config"
	"github.com/iw2rmb/mdfence/internal/logging"
)

// env is what every subcommand needs: settings, languages and a logger.
type env struct {
	cfg    *config.Config
	reg    *capability.Registry
	log    *slog.Logger
	closer io.Closer
}

func (e *env) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

func loadEnv(configPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	log, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, reg: reg, log: log, closer: closer}, nil
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "mdfence",
		Short: "Markdown editing with fence-aware highlighting and completion",
		Long: `mdfence edits markdown and swaps syntax highlighting and completion as the
cursor moves between prose and fenced code blocks.

Examples:
  mdfence edit notes.md
  mdfence context notes.md --offset 120
  mdfence complete --line "## "
  mdfence fences notes.md
  mdfence languages`,
		Version:           mdfence.Version(),
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/mdfence/config.yaml)")

	var withEnv envWrapper = func(run runFunc) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			defer e.Close()
			return run(cmd, args, e)
		}
	}

	root.AddCommand(
		newEditCmd(withEnv),
		newContextCmd(withEnv),
		newCompleteCmd(withEnv),
		newFencesCmd(withEnv),
		newLanguagesCmd(withEnv),
	)
	return root
}

type runFunc func(cmd *cobra.Command, args []string, e *env) error

// envWrapper loads the environment before run and releases it afterwards.
type envWrapper func(run runFunc) func(*cobra.Command, []string) error
