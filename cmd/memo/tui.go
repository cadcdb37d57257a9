package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"memo-service/internal/tui"
	"memo-service/internal/view"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				ctx, cancel := context.WithCancel(ctx)
				defer cancel()

				var changes <-chan struct{}
				if s.watch != nil {
					ch, err := s.watch(ctx)
					if err != nil {
						// без уведомлений интерфейс работает, просто не видит чужих изменений
						a.logger.Warn("change notifications unavailable", zap.Error(err))
					} else {
						changes = ch
					}
				}

				ctrl := view.NewController(s.service, a.cfg.View.NarrowWidth)
				return tui.Run(ctx, ctrl, changes)
			})
		},
	}
}
