// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codeberg.org/pixivfe/pocheck/config"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pocheck version",
		Args:  cobra.NoArgs,
		// No configuration is needed to print the version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg config.Config
			cfg.LoadBuildInfo()

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "pocheck %s (%s, %s)\n",
				config.BuildVersion, cfg.Build.Revision(), cfg.Build.GoVersion)

			return err
		},
	}
}
