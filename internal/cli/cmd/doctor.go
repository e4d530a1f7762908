package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/tapmap/internal/application/port"
	"github.com/bnema/tapmap/internal/application/usecase"
	"github.com/bnema/tapmap/internal/cli/styles"
	"github.com/bnema/tapmap/internal/infrastructure/adb"
)

var doctorSkipKeyboard bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that input can reach the device",
	Long: `Doctor checks the prerequisites for sending input to the device:
the adb executable, the attached device and the soft keyboard probe.

Examples:
  tapmap doctor
  tapmap doctor --skip-keyboard`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorSkipKeyboard, "skip-keyboard", false, "Do not probe the soft keyboard state")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	opts := app.ADBOptions()
	var keyboard port.KeyboardStatusProbe
	if !doctorSkipKeyboard {
		keyboard = adb.NewDumpsysProbe(opts)
	}

	out, err := usecase.NewCheckDeviceUseCase(adb.NewHostProbe(opts), keyboard).
		Execute(app.Ctx(), usecase.CheckDeviceInput{Serial: opts.Serial})
	if err != nil {
		return err
	}

	report := styles.DoctorReport{
		OK:     out.OK,
		Serial: opts.Serial,
		Checks: make([]styles.DoctorCheck, 0, len(out.Checks)),
	}
	for _, c := range out.Checks {
		report.Checks = append(report.Checks, styles.DoctorCheck{
			Name:            c.DisplayName,
			Found:           c.Found,
			Detail:          c.Detail,
			RequiredVersion: c.RequiredVersion,
			OK:              c.OK,
			Error:           c.Error,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.NewDoctorRenderer(app.Theme).Render(report))

	if !out.OK {
		return fmt.Errorf("device requirements not met")
	}
	return nil
}
