package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"memo-service/internal/converter"
	"memo-service/internal/tui"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				list, err := s.service.List(ctx)
				if err != nil {
					return err
				}

				if asJSON {
					encoder := json.NewEncoder(cmd.OutOrStdout())
					encoder.SetIndent("", "  ")
					return encoder.Encode(converter.ModelsToWire(list))
				}

				if len(list) == 0 {
					fmt.Fprintln(cmd.ErrOrStderr(), "no notes")
					return nil
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, n := range list {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", n.ID, n.UpdatedAt.Local().Format(tui.DateFormat), n.Title)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
