package cmd

import (
	"log"

	"github.com/josephlewis42/seqsh/core/config"
	"github.com/spf13/cobra"
)

// initCmd intializes the interpreter configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration in the --config directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		cfg, err := config.Initialize(cfgPath, logger)
		if err != nil {
			return err
		}
		logger.Printf("Configuration in: %s\n", cfg.Dir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
