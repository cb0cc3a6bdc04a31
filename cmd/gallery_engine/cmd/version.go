package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gallery-engine version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gallery-engine v%s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
