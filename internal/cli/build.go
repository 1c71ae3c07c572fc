package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/rosterlab/internal/adapters/report"
	service "github.com/okian/rosterlab/internal/app"
	"github.com/okian/rosterlab/internal/domain/inspect"
	"github.com/okian/rosterlab/internal/domain/model"
	"github.com/okian/rosterlab/internal/fetch"
)

func newBuildCommand(st *state) *cobra.Command {
	var (
		updateID int
		lhp, rhp string
		out      string
		quiet    bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the full pipeline for one roster update.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := st.cfg
			if lhp == "" {
				lhp = cfg.LHPStatsPath
			}
			if rhp == "" {
				rhp = cfg.RHPStatsPath
			}
			if out == "" {
				out = cfg.OutputDir
			}

			store, closer, err := newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			client := newClient(cfg, st.logger)
			p := service.New(
				newResolver(store, client, cfg, st.logger),
				fetch.NewLoader(client, st.logger.Named("roster")),
				service.WithLogger(st.logger.Named("pipeline")),
				service.WithSchema(schemaFrom(cfg)),
				service.WithStatsPaths(lhp, rhp),
				service.WithOutputDir(out),
			)
			res, err := p.Run(ctx, updateID)
			if err != nil {
				return err
			}
			if quiet {
				return nil
			}

			w := cmd.OutOrStdout()
			report.Match(w, res.Match)
			report.Summary(w, "Hitters", inspect.Summarize(res.Hitters, model.ColPlayerID, model.ColPlayerName))
			report.Summary(w, "Pitchers", inspect.Summarize(res.Pitchers, model.ColPlayerID, model.ColPlayerName))
			return nil
		},
	}
	cmd.Flags().IntVar(&updateID, "update-id", 0, "roster update to build from")
	cmd.Flags().StringVar(&lhp, "lhp", "", "batting splits vs left-handed pitching (CSV)")
	cmd.Flags().StringVar(&rhp, "rhp", "", "batting splits vs right-handed pitching (CSV)")
	cmd.Flags().StringVar(&out, "out", "", "directory for hitters.csv and pitchers.csv")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "skip the console report")
	_ = cmd.MarkFlagRequired("update-id")
	return cmd
}
