package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/policygate/internal/config"
)

var (
	initConfigPath  string
	initConfigForce bool
)

func init() {
	rootCmd.AddCommand(initConfigCmd)
	initConfigCmd.Flags().StringVar(&initConfigPath, "path", "", "Where to write the config (default ~/.policygate/config.yaml)")
	initConfigCmd.Flags().BoolVar(&initConfigForce, "force", false, "Overwrite an existing config file")
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Generate default config.yaml with comments",
	Long:  "Creates ~/.policygate/config.yaml with the default jurisdiction, audit log and server settings.",
	Args:  cobra.NoArgs,
	RunE:  runInitConfig,
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	path := initConfigPath
	if path == "" {
		path = config.DefaultPath()
		if path == "" {
			return fmt.Errorf("cannot determine home directory")
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !initConfigForce {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(config.DefaultYAML()), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
