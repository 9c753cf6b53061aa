package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agrilearn/agrilearn/internal/config"
)

func addGenerateConfig(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "generate-config",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flagConfig
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				path = filepath.Join(home, ".config", "agrilearn", "config.toml")
			}

			if err := config.GenerateDefaultConfig(path); err != nil {
				return fmt.Errorf("generating config: %w", err)
			}
			fmt.Printf("Generated default configuration at: %s\n", path)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
