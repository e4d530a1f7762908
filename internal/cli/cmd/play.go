package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/tapmap/internal/cli"
)

var (
	playDisplayID int
	playEdit      bool
	playPreview   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the keymap overlay in this terminal",
	Long: `Run the overlay with this terminal standing in for the mirror window.

Key presses tap the keymap bound to them. Ctrl+E toggles edit mode, where
the mouse draws (drag), places (click), moves (drag a keymap) and selects
keymaps; a selected keymap takes the next key (optionally after a modifier)
as its combo, Delete removes it and Escape cancels. Ctrl+C quits.

The overlay is rendered to --preview (or terminal.preview_file) as PNG.

Examples:
  tapmap play --display-id 2
  tapmap play --edit --preview /tmp/overlay.png`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntVarP(&playDisplayID, "display-id", "d", -1, "mirrored display id (default device.display_id)")
	playCmd.Flags().BoolVarP(&playEdit, "edit", "e", false, "start in edit mode")
	playCmd.Flags().StringVarP(&playPreview, "preview", "p", "", "PNG file receiving overlay frames")
}

func runPlay(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.RunPlay(ctx, a, cli.PlayOptions{
		DisplayID: playDisplayID,
		Edit:      playEdit,
		Preview:   playPreview,
	})
}

