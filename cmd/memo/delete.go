package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				// удаление неизвестного id молча ничего не делает, поэтому проверяем заранее
				if _, err := s.service.Get(ctx, args[0]); err != nil {
					return err
				}
				_, err := s.service.Delete(ctx, args[0])
				return checkWarning(cmd.ErrOrStderr(), err)
			})
		},
	}
}
