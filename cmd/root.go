package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "datapipe",
	Short: "Datapipe ingests China A-share market data into the warehouse.",
	Long:  `Please provide subcommand to take further actions.`,
}

//Execute is the entrance of this command-line framework
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
