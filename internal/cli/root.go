package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	cfgPath    string
	modelPath  string
	policyPath string
	engineKind string
)

var rootCmd = &cobra.Command{
	Use:   "authz",
	Short: "authz manages and evaluates permission policies",
}

func Execute() error { return rootCmd.Execute() }

func init() {
	home, _ := os.UserHomeDir()
	defaultCfg := filepath.Join(home, ".authz", "config.yaml")

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "config file path")
	rootCmd.PersistentFlags().StringVar(&modelPath, "model", "", "casbin model file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&policyPath, "policy", "", "casbin policy file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&engineKind, "engine", "", "policy engine: casbin|fga (overrides config)")

	rootCmd.AddCommand(cmdCheck(), cmdRole(), cmdPolicy(), cmdVersion())

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:   "help",
		Short: "Show help",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().Help()
		},
	})
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		fmt.Println("Use -h for help, for example: authz check alice read NOTE")
	}
}
