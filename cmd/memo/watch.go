package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	grpcapi "memo-service/internal/api/grpc"
	"memo-service/internal/service/notes"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print changes to the collection as they happen",
		Long: `With --remote prints every created, updated or deleted note reported by the server.
Locally only the file storage can signal changes; each change prints one line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				out := cmd.OutOrStdout()

				// удаленный сервер сообщает, что именно изменилось
				if client, ok := s.service.(*grpcapi.Client); ok {
					events, err := client.Watch(ctx)
					if err != nil {
						return err
					}
					for ev := range events {
						printEvent(cmd, ev)
					}
					return nil
				}

				if s.watch == nil {
					return errors.New("storage driver does not support change notifications")
				}
				changes, err := s.watch(ctx)
				if err != nil {
					return err
				}
				for range changes {
					fmt.Fprintln(out, "collection changed")
				}
				return nil
			})
		},
	}
}

func printEvent(cmd *cobra.Command, ev notes.Event) {
	fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s %s\n", ev.Kind, ev.Note.ID, ev.Note.Title)
}
