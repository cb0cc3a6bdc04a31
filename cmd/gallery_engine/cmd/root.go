package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "gallery-engine",
	Short: "Gallery Engine media gallery rule engine",
	Long:  `Gallery Engine evaluates merchant-defined rules against product media galleries to filter, reorder, badge, and limit what shoppers see.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func Execute() error {
	return rootCmd.Execute()
}
