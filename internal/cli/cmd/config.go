package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tapmap/internal/cli/styles"
	"github.com/bnema/tapmap/internal/infrastructure/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show the effective configuration, where it lives, or write a default file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long:  `Print the configuration after defaults, file and TAPMAP_* environment overrides.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		data, err := config.EncodeOrdered(a.Config)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file location",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		r := styles.NewConfigRenderer(a.Theme)
		fmt.Fprint(cmd.OutOrStdout(), r.RenderConfigInfo(a.ConfigFile, a.ConfigExists()))
		fmt.Fprintln(cmd.OutOrStdout(), a.Theme.RenderInfo(styles.IconDatabase, "Keymaps", keymapsLocation(a.Config)))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFile
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			var err error
			if path, err = config.GetConfigFile(); err != nil {
				return err
			}
		}

		r := styles.NewConfigRenderer(styles.NewTheme())
		if _, err := os.Stat(path); err == nil && !configForce {
			fmt.Fprintln(cmd.OutOrStdout(), r.RenderExists(path))
			return nil
		}
		if err := config.WriteConfigOrdered(config.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), r.RenderCreated(path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathCmd, configInitCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
}

func keymapsLocation(cfg *config.Config) string {
	if cfg.Keymaps.Backend == config.KeymapsBackendSQLite {
		return fmt.Sprintf("%s (profile %s)", cfg.Keymaps.Database, cfg.Keymaps.Profile)
	}
	return cfg.Keymaps.File
}
