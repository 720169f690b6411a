package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkpress/inkpress/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize inkpress configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure inkpress for your site and writes a .inkpress.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s (output: %s)\n", cfgFile, cfg.OutputDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
