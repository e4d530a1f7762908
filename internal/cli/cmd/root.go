// Package cmd provides Cobra CLI commands for tapmap.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tapmap/internal/cli"
	"github.com/bnema/tapmap/internal/domain/build"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configFile string
	rootCmd    = &cobra.Command{
		Use:   "tapmap",
		Short: "Map keyboard keys to touches on a mirrored Android display",
		Long: `tapmap - keyboard-to-touch mapping for a mirrored Android screen.

Keymaps are circles or rectangles placed over the device display. In play
mode each key press taps the center of the keymap bound to it through one
long-lived adb shell. In edit mode keymaps are drawn, moved, deleted and
bound to keys with the mouse and keyboard.

Features:
  - Resolution independent keymaps (normalized coordinates)
  - Tap and hold keymaps, one or two key combos
  - Soft keyboard detection: typing is left alone while the IME is up
  - JSON file or SQLite storage with named profiles

Use 'tapmap play' to run the overlay in this terminal, or the subcommands
to inspect and edit keymaps and to send one-off input to the device.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs", "schema", "version", "init":
				return nil
			}

			var err error
			app, err = cli.NewApp(configFile)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/tapmap/config.toml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
