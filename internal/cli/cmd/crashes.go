package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bnema/tapmap/internal/bootstrap"
	"github.com/bnema/tapmap/internal/cli/styles"
	"github.com/bnema/tapmap/internal/infrastructure/config"
)

var crashesRaw bool

var crashesCmd = &cobra.Command{
	Use:   "crashes",
	Short: "Inspect crash reports of play sessions",
	Long: `List and display the reports written when a play session crashed.

Examples:
  tapmap crashes
  tapmap crashes show latest
  tapmap crashes issue latest > issue.md`,
	RunE: runCrashesList,
}

var crashesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List crash reports, newest first",
	Args:  cobra.NoArgs,
	RunE:  runCrashesList,
}

var crashesShowCmd = &cobra.Command{
	Use:   "show <id|latest>",
	Short: "Show a crash report",
	Args:  cobra.ExactArgs(1),
	RunE:  runCrashesShow,
}

var crashesIssueCmd = &cobra.Command{
	Use:   "issue <id|latest>",
	Short: "Print the issue template of a crash report",
	Args:  cobra.ExactArgs(1),
	RunE:  runCrashesIssue,
}

func init() {
	rootCmd.AddCommand(crashesCmd)
	crashesCmd.AddCommand(crashesListCmd, crashesShowCmd, crashesIssueCmd)
	crashesShowCmd.Flags().BoolVar(&crashesRaw, "raw", false, "Print markdown without terminal styling")
}

func runCrashesList(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	logDir, err := config.GetLogDir()
	if err != nil {
		return err
	}

	reports, err := bootstrap.ListCrashReports(logDir)
	if err != nil {
		return fmt.Errorf("list crash reports: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(reports) == 0 {
		fmt.Fprintln(out, app.Theme.RenderInfo(styles.IconCheck, "Crash reports", "none"))
		return nil
	}

	rows := make([]styles.CrashRow, 0, len(reports))
	for _, r := range reports {
		generated := "-"
		if !r.GeneratedAt.IsZero() {
			generated = r.GeneratedAt.Local().Format(time.DateTime)
		}
		rows = append(rows, styles.CrashRow{ID: r.ID(), GeneratedAt: generated, Panic: r.Panic})
	}
	fmt.Fprintln(out, styles.NewCrashRenderer(app.Theme).RenderList(bootstrap.CrashReportsDir(logDir), rows))
	return nil
}

func runCrashesShow(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	md, err := readCrashMarkdown(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if crashesRaw || !stdoutIsTerminal(cmd) {
		_, err = fmt.Fprint(out, md)
		return err
	}
	width, _, sizeErr := term.GetSize(int(os.Stdout.Fd()))
	if sizeErr != nil {
		width = 0
	}
	_, err = fmt.Fprint(out, styles.NewCrashRenderer(app.Theme).RenderMarkdown(md, width))
	return err
}

func runCrashesIssue(cmd *cobra.Command, args []string) error {
	if _, err := requireApp(); err != nil {
		return err
	}
	md, err := readCrashMarkdown(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), bootstrap.IssueSection(md))
	return err
}

func readCrashMarkdown(query string) (string, error) {
	logDir, err := config.GetLogDir()
	if err != nil {
		return "", err
	}
	report, err := bootstrap.ResolveCrashReport(logDir, query)
	if err != nil {
		if errors.Is(err, bootstrap.ErrNoCrashReports) {
			return "", fmt.Errorf("%w in %s", err, bootstrap.CrashReportsDir(logDir))
		}
		return "", err
	}
	data, err := os.ReadFile(report.MarkdownPath)
	if err != nil {
		return "", fmt.Errorf("read crash report: %w", err)
	}
	return string(data), nil
}

// stdoutIsTerminal is false when output was redirected, including in tests.
func stdoutIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
