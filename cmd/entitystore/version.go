package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/entitystore"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of entitystore",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "entitystore version %s\n", strings.TrimSpace(entitystore.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
