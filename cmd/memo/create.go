package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"memo-service/internal/model"
)

func newCreateCmd(a *app) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note and print its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFields(title, content); err != nil {
				return err
			}

			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				note, err := s.service.Create(ctx)
				if err := checkWarning(cmd.ErrOrStderr(), err); err != nil {
					return err
				}

				if cmd.Flags().Changed("title") || cmd.Flags().Changed("content") {
					if cmd.Flags().Changed("title") {
						note.Title = title
					}
					note.Content = content
					_, err := s.service.Update(ctx, model.Note{ID: note.ID, Title: note.Title, Content: note.Content})
					if err := checkWarning(cmd.ErrOrStderr(), err); err != nil {
						return err
					}
				}

				fmt.Fprintln(cmd.OutOrStdout(), note.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "note title")
	cmd.Flags().StringVarP(&content, "content", "m", "", "note content")
	return cmd
}
