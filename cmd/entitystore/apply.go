package main

import (
	"context"

	"github.com/aretw0/entitystore/internal/cli"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply <script.yaml>",
	Short: "Apply a YAML script of actions and print the resulting collections",
	Long: `Dispatches every action of the script in order against a fresh store and prints
the collections. Use "-" to read the script from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		script, err := cli.LoadScript(args[0])
		if err != nil {
			return err
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		quiet, _ := cmd.Flags().GetBool("quiet")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Apply(ctx, cli.ApplyOptions{
			Config: cfg,
			Script: script,
			JSON:   jsonMode,
			Quiet:  quiet,
			Out:    cmd.OutOrStdout(),
			Logger: logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().Bool("json", false, "Print collections as JSON")
	applyCmd.Flags().BoolP("quiet", "q", false, "Suppress system messages")
}
