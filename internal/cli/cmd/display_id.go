package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bnema/tapmap/internal/cli/styles"
	"github.com/bnema/tapmap/internal/infrastructure/adb"
	"github.com/bnema/tapmap/internal/infrastructure/config"
)

var (
	displayIDTimeout time.Duration
	displayIDSave    bool
)

var displayIDCmd = &cobra.Command{
	Use:   "display-id",
	Short: "Detect the mirrored display id from mirror output on stdin",
	Long: `Read the output of the screen mirroring tool from stdin and report the
id of the virtual display it created (the first "(id=N)" occurrence).

Examples:
  scrcpy --new-display 2>&1 | tapmap display-id --save`,
	RunE: runDisplayID,
}

func init() {
	rootCmd.AddCommand(displayIDCmd)
	displayIDCmd.Flags().DurationVarP(&displayIDTimeout, "timeout", "t", 30*time.Second, "give up after this long")
	displayIDCmd.Flags().BoolVarP(&displayIDSave, "save", "s", false, "store the id as device.display_id")
}

func runDisplayID(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(a.Ctx(), displayIDTimeout)
	defer cancel()

	var id int
	if term.IsTerminal(int(os.Stderr.Fd())) {
		id, err = detectWithSpinner(ctx, a.Theme, os.Stdin)
	} else {
		id, err = adb.DetectDisplayID(ctx, os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("detect display id: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)

	if !displayIDSave {
		return nil
	}
	cfg := *a.Config
	cfg.Device.DisplayID = id
	if err := config.WriteConfigOrdered(&cfg, a.ConfigFile); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), a.Theme.RenderInfo(styles.IconMobile, "display id saved to", a.ConfigFile))
	return nil
}

// detectModel shows a spinner on stderr while the mirror output is scanned.
type detectModel struct {
	loading styles.LoadingModel
	detect  func() (int, error)

	id   int
	err  error
	done bool
}

type detectResultMsg struct {
	id  int
	err error
}

func (m detectModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Spinner.Tick, func() tea.Msg {
		id, err := m.detect()
		return detectResultMsg{id: id, err: err}
	})
}

func (m detectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.loading.Spinner, cmd = m.loading.Spinner.Update(msg)
		return m, cmd
	case detectResultMsg:
		m.id, m.err, m.done = msg.id, msg.err, true
		return m, tea.Quit
	}
	return m, nil
}

func (m detectModel) View() string {
	if m.done {
		return ""
	}
	return m.loading.View() + "\n"
}

func detectWithSpinner(ctx context.Context, theme *styles.Theme, r io.Reader) (int, error) {
	m := detectModel{
		loading: styles.NewLoading(theme, "waiting for the mirror to report its display"),
		detect:  func() (int, error) { return adb.DetectDisplayID(ctx, r) },
	}
	// stdin carries the mirror output, so the program must not read it
	p := tea.NewProgram(m, tea.WithInput(nil), tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	result := final.(detectModel)
	return result.id, result.err
}
