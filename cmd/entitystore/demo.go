package main

import (
	"context"

	"github.com/aretw0/entitystore/internal/cli"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Replay the todo walkthrough",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		noBanner, _ := cmd.Flags().GetBool("no-banner")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Demo(ctx, cli.DemoOptions{
			Banner: !noBanner,
			Out:    cmd.OutOrStdout(),
			Logger: logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().Bool("no-banner", false, "Do not print the banner")
}
