package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/tapmap/internal/application/usecase"
	"github.com/bnema/tapmap/internal/cli"
	"github.com/bnema/tapmap/internal/cli/styles"
)

var (
	sendDisplayID int
	swipeDuration time.Duration
	holdDuration  time.Duration
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one input command to the device",
	Long: `Send a single tap, swipe, hold or key event through the adb shell, the
same way play mode does. Coordinates are native device pixels.`,
}

var sendTapCmd = &cobra.Command{
	Use:   "tap <x> <y>",
	Short: "Tap a native pixel",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pts, err := parseInts(args)
		if err != nil {
			return err
		}
		return withDispatcher(cmd, 0, func(a *cli.App, d *usecase.CommandDispatcher) error {
			return d.Tap(a.Ctx(), pts[0], pts[1])
		})
	},
}

var sendSwipeCmd = &cobra.Command{
	Use:   "swipe <x1> <y1> <x2> <y2>",
	Short: "Swipe between two native pixels",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		pts, err := parseInts(args)
		if err != nil {
			return err
		}
		return withDispatcher(cmd, swipeDuration, func(a *cli.App, d *usecase.CommandDispatcher) error {
			return d.Swipe(a.Ctx(), pts[0], pts[1], pts[2], pts[3], swipeDuration)
		})
	},
}

var sendHoldCmd = &cobra.Command{
	Use:   "hold <x> <y>",
	Short: "Press and hold a native pixel",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pts, err := parseInts(args)
		if err != nil {
			return err
		}
		return withDispatcher(cmd, holdDuration, func(a *cli.App, d *usecase.CommandDispatcher) error {
			hold := holdDuration
			if hold <= 0 {
				hold = a.Config.ADB.HoldTime()
			}
			return d.Hold(a.Ctx(), pts[0], pts[1], hold)
		})
	},
}

var sendKeyCmd = &cobra.Command{
	Use:   "key <keycode>",
	Short: "Send an Android key event (e.g. KEYCODE_BACK or 4)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDispatcher(cmd, 0, func(a *cli.App, d *usecase.CommandDispatcher) error {
			return d.KeyEvent(a.Ctx(), args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.AddCommand(sendTapCmd, sendSwipeCmd, sendHoldCmd, sendKeyCmd)
	sendCmd.PersistentFlags().IntVarP(&sendDisplayID, "display-id", "d", -1, "target display (default device.display_id)")
	sendSwipeCmd.Flags().DurationVar(&swipeDuration, "duration", 300*time.Millisecond, "swipe duration")
	sendHoldCmd.Flags().DurationVar(&holdDuration, "duration", 0, "hold duration (default adb.hold_time_ms)")
}

// withDispatcher opens the control channel and runs fn. The channel is closed
// after settle so a long gesture is not cut short by the shell exiting.
func withDispatcher(cmd *cobra.Command, settle time.Duration, fn func(*cli.App, *usecase.CommandDispatcher) error) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	d := a.NewDispatcher(a.Ctx())
	defer d.Close()
	if sendDisplayID >= 0 {
		d.SetDisplayID(sendDisplayID)
	}

	if err := fn(a, d); err != nil {
		return err
	}
	time.Sleep(settle)
	r := styles.NewKeymapRenderer(a.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), r.RenderSuccess("sent "+cmd.Name()))
	return nil
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, s := range args {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", s)
		}
		if v < 0 {
			return nil, fmt.Errorf("coordinate %d is negative", v)
		}
		out[i] = v
	}
	return out, nil
}
