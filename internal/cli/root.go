package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.idset/internal/config"
)

var (
	homeDir    string
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "idset",
	Short:         "idset - in-memory B+ tree set of 128-bit ids",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(homeDir, configPath)
		if err != nil {
			return fmt.Errorf("Failed to load config: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "app home directory (default $IDSET_HOME or ~/.local/share/idset)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")
}
