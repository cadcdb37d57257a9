package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"memo-service/internal/converter"
)

func newExportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the whole collection as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q: use json or yaml", format)
			}

			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				list, err := s.service.List(ctx)
				if err != nil {
					return err
				}
				wire := converter.ModelsToWire(list)

				if format == "yaml" {
					encoder := yaml.NewEncoder(cmd.OutOrStdout())
					encoder.SetIndent(2)
					if err := encoder.Encode(wire); err != nil {
						return err
					}
					return encoder.Close()
				}

				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(wire)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}
