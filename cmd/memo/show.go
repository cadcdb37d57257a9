package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"memo-service/internal/converter"
	"memo-service/internal/tui"
)

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				note, err := s.service.Get(ctx, args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					encoder := json.NewEncoder(out)
					encoder.SetIndent("", "  ")
					return encoder.Encode(converter.ModelToWire(note))
				}

				fmt.Fprintf(out, "# %s\n", note.Title)
				fmt.Fprintf(out, "created %s, updated %s\n\n",
					note.CreatedAt.Local().Format(tui.DateFormat),
					note.UpdatedAt.Local().Format(tui.DateFormat))
				fmt.Fprintln(out, note.Content)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
