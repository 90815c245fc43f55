package main

import (
	"fmt"

	"github.com/philipparndt/meshedit/internal/config"
	"github.com/spf13/cobra"
)

var configOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Long:  "Write the default configuration to the user config directory, or to --output.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults := config.Default()
		if configOutput != "" {
			if err := defaults.SaveTo(configOutput); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", configOutput)
			return nil
		}
		path, err := defaults.Save()
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringVarP(&configOutput, "output", "o", "", "Write to this path instead of the user config directory")
}
