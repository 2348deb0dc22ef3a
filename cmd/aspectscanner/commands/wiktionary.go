package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(wiktionaryCmd)
}

var wiktionaryCmd = &cobra.Command{
	Use:   "wiktionary",
	Short: "Crawls the dictionary category listing and mines morphology from each article.",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := buildApp()
		if err != nil {
			return err
		}
		return application.RunWiktionary(cmd.Context())
	},
}
