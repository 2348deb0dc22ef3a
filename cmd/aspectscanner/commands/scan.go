package commands

import (
	"github.com/spf13/cobra"
)

var wordListPath *string

func init() {
	wordListPath = scanCmd.Flags().String("words", "biaspectives_relevant_list.txt", "Path to the whitespace-separated word list file.")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan [--words <path/to/list.txt>]",
	Short: "Processes each listed word through the corpus search and writes per-word aspect bucket files.",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := buildApp()
		if err != nil {
			return err
		}
		return application.RunScan(cmd.Context(), *wordListPath)
	},
}
