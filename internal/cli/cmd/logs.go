package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/tapmap/internal/cli/styles"
	"github.com/bnema/tapmap/internal/infrastructure/config"
	"github.com/bnema/tapmap/internal/logging"
)

const (
	defaultLogsLines = 50
	followInterval   = 100 * time.Millisecond
)

var (
	logsFollow   bool
	logsLines    int
	logsClearAll bool
)

var logsCmd = &cobra.Command{
	Use:   "logs [session]",
	Short: "View play session logs",
	Long: `View the log of a play session.

Without arguments, lists all sessions.
With a session ID (or partial match), shows the end of that session's log.

Examples:
  tapmap logs                 # List all sessions
  tapmap logs a7b3            # View logs for session ending in 'a7b3'
  tapmap logs -f a7b3         # Follow logs in real-time
  tapmap logs -n 100 a7b3     # Show last 100 lines`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogs,
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove old session logs",
	Long: `Remove session logs older than logging.max_age days (default 7).
Use --all to remove every session log.`,
	Args: cobra.NoArgs,
	RunE: runLogsClear,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsClearCmd)

	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow log output in real-time")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", defaultLogsLines, "number of lines to show")
	logsClearCmd.Flags().BoolVar(&logsClearAll, "all", false, "remove all session logs")
}

// sessionLog is a session log file found on disk.
type sessionLog struct {
	SessionID string
	ShortID   string
	Path      string
	Size      int64
	ModTime   time.Time
}

func runLogs(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	logDir, err := config.GetLogDir()
	if err != nil {
		return err
	}
	renderer := styles.NewLogRenderer(app.Theme)
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		sessions, err := listSessionLogs(logDir)
		if err != nil {
			return err
		}
		rows := make([]styles.LogSessionRow, 0, len(sessions))
		for _, s := range sessions {
			rows = append(rows, styles.LogSessionRow{ShortID: s.ShortID, Modified: s.ModTime, Size: s.Size})
		}
		fmt.Fprintln(out, renderer.RenderSessions(rows))
		return nil
	}

	session, err := findSessionLog(logDir, args[0])
	if err != nil {
		return err
	}
	if logsFollow {
		fmt.Fprintln(out, app.Theme.Subtle.Render("Following logs... (Ctrl+C to stop)"))
		return followSessionLog(app.Ctx(), session.Path, out, renderer)
	}
	return showSessionLog(session.Path, logsLines, out, renderer)
}

func listSessionLogs(logDir string) ([]sessionLog, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read log directory: %w", err)
	}

	var sessions []sessionLog
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := logging.ParseSessionFilename(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		sessions = append(sessions, sessionLog{
			SessionID: id,
			ShortID:   logging.ShortSessionID(id),
			Path:      filepath.Join(logDir, entry.Name()),
			Size:      info.Size(),
			ModTime:   info.ModTime(),
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ModTime.After(sessions[j].ModTime)
	})
	return sessions, nil
}

// findSessionLog resolves query against the short IDs first, then as a
// substring of the full session IDs.
func findSessionLog(logDir, query string) (*sessionLog, error) {
	sessions, err := listSessionLogs(logDir)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, errors.New("no sessions found")
	}

	q := strings.ToLower(strings.TrimSpace(query))
	for i := range sessions {
		if strings.EqualFold(sessions[i].ShortID, q) {
			return &sessions[i], nil
		}
	}

	var matches []int
	for i := range sessions {
		if strings.Contains(strings.ToLower(sessions[i].SessionID), q) {
			matches = append(matches, i)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no session matching '%s' found", query)
	case 1:
		return &sessions[matches[0]], nil
	default:
		ids := make([]string, 0, len(matches))
		for _, i := range matches {
			ids = append(ids, sessions[i].ShortID)
		}
		return nil, fmt.Errorf("multiple sessions match '%s': %s", query, strings.Join(ids, ", "))
	}
}

func showSessionLog(path string, lines int, out io.Writer, renderer *styles.LogRenderer) (retErr error) {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close log file: %w", closeErr)
		}
	}()

	var all []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		all = append(all, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	start := 0
	if lines > 0 && len(all) > lines {
		start = len(all) - lines
	}
	for _, line := range all[start:] {
		fmt.Fprintln(out, renderer.RenderLine(line))
	}
	return nil
}

// followSessionLog prints lines appended to path until ctx is done.
func followSessionLog(ctx context.Context, path string, out io.Writer, renderer *styles.LogRenderer) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek log file: %w", err)
	}

	reader := bufio.NewReader(file)
	var pending strings.Builder
	for {
		chunk, err := reader.ReadString('\n')
		pending.WriteString(chunk)
		switch {
		case err == nil:
			line := strings.TrimSuffix(pending.String(), "\n")
			pending.Reset()
			fmt.Fprintln(out, renderer.RenderLine(line))
			continue
		case !errors.Is(err, io.EOF):
			return fmt.Errorf("read log file: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(followInterval):
		}
	}
}

func runLogsClear(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	logDir, err := config.GetLogDir()
	if err != nil {
		return err
	}
	sessions, err := listSessionLogs(logDir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, app.Theme.Subtle.Render("No logs to clear"))
		return nil
	}

	maxAge := config.DefaultConfig().Logging.MaxAge
	if app.Config != nil && app.Config.Logging.MaxAge > 0 {
		maxAge = app.Config.Logging.MaxAge
	}
	cutoff := time.Now().AddDate(0, 0, -maxAge)

	removed := 0
	for _, s := range sessions {
		if !logsClearAll && !s.ModTime.Before(cutoff) {
			continue
		}
		if err := os.Remove(s.Path); err != nil {
			fmt.Fprintln(out, app.Theme.RenderError(fmt.Errorf("%s: %w", s.ShortID, err)))
			continue
		}
		fmt.Fprintf(out, "  %s %s (%s)\n",
			app.Theme.SuccessStyle.Render(styles.IconCheck), s.ShortID, styles.FormatSize(s.Size))
		removed++
	}

	if removed == 0 {
		fmt.Fprintln(out, app.Theme.Subtle.Render(fmt.Sprintf("No sessions older than %d days", maxAge)))
		return nil
	}
	fmt.Fprintln(out, app.Theme.SuccessStyle.Render(fmt.Sprintf("Cleared %d session(s)", removed)))
	return nil
}
