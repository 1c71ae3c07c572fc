// Package cli wires configuration, adapters and the pipeline into cobra
// commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/rosterlab/internal/config"
	"github.com/okian/rosterlab/pkg/logger"
	"github.com/okian/rosterlab/pkg/metrics"
)

// state is shared by every subcommand of one root command.
type state struct {
	cfg      *config.Config
	logger   logger.Logger
	logLevel string
	jsonLogs bool
}

// NewRootCommand builds the rosterlab command tree.
func NewRootCommand() *cobra.Command {
	st := &state{}
	root := &cobra.Command{
		Use:           "rosterlab",
		Short:         "Build labeled roster-upgrade datasets from catalog data and batting splits.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithJSON(st.jsonLogs)); err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if st.logLevel != "" {
				cfg.LogLevel = st.logLevel
			}
			st.logger = logger.Get()
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				st.logger.Warn(cmd.Context(), "invalid log_level; falling back to info",
					logger.String("log_level", cfg.LogLevel), logger.Error(err))
				_ = logger.SetLevelString("info")
			}
			st.cfg = cfg
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if st.cfg == nil || st.cfg.MetricsPath == "" {
				return nil
			}
			if err := metrics.WriteTextfile(st.cfg.MetricsPath); err != nil {
				return err
			}
			st.logger.Debug(cmd.Context(), "metrics written", logger.String("path", st.cfg.MetricsPath))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&st.logLevel, "log-level", "", "override log_level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&st.jsonLogs, "json-logs", false, "emit JSON log lines")

	root.AddCommand(newBuildCommand(st), newResolveCommand(st), newRosterCommand(st))
	return root
}
