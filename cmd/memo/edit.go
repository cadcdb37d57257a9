package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newEditCmd(a *app) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or content of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			titleSet := cmd.Flags().Changed("title")
			contentSet := cmd.Flags().Changed("content")
			if !titleSet && !contentSet {
				return errNothingToChange
			}
			if err := validateFields(title, content); err != nil {
				return err
			}

			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				note, err := s.service.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if titleSet {
					note.Title = title
				}
				if contentSet {
					note.Content = content
				}

				_, err = s.service.Update(ctx, note)
				return checkWarning(cmd.ErrOrStderr(), err)
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&content, "content", "m", "", "new content")
	return cmd
}
