package cli

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newResolveCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <card id>...",
		Short: "Resolve card attributes through the cache.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closer, err := newStore(ctx, st.cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			r := newResolver(store, newClient(st.cfg, st.logger), st.cfg, st.logger)
			res, err := r.ResolveBatch(ctx, args)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{"ID", "Name", "Role", "Overall", "Position"})
			for _, rec := range res.Records {
				t.AppendRow(table.Row{rec.ID, rec.Name, rec.Role.String(), strconv.Itoa(rec.Overall), rec.Position})
			}
			for _, id := range res.Skipped {
				t.AppendRow(table.Row{id, "-", "skipped", "-", "-"})
			}
			t.Render()
			return nil
		},
	}
}
