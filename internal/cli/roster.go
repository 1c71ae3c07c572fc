package cli

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/okian/rosterlab/internal/fetch"
)

func newRosterCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "roster <update id>",
		Short: "List the rating changes of one roster update.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updateID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("update id %q: %w", args[0], err)
			}
			l := fetch.NewLoader(newClient(st.cfg, st.logger), st.logger.Named("roster"))
			events, err := l.Load(cmd.Context(), updateID)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{"ID", "Name", "Old", "New", "Upgrade"})
			for _, e := range events {
				id := e.ID
				if !e.HasID() {
					id = "-"
				}
				t.AppendRow(table.Row{id, e.Name, e.OldRating, e.NewRating, e.Label()})
			}
			t.Render()
			return nil
		},
	}
}
