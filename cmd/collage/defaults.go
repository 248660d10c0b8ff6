package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/collage"
)

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default settings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return collage.DefaultSettings().Encode(cmd.OutOrStdout())
		},
	}
}
