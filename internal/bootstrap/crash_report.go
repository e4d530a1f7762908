// Package bootstrap writes the crash report of a play session that ended in a
// panic, next to the session log it was recording.
package bootstrap

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"time"

	corelogging "github.com/bnema/tapmap/internal/logging"
)

const (
	crashReportsDirName = "crashes"
	logTailLineCount    = 120
	maxCrashReportsKept = 20
	scannerMaxTokenSize = 256 * 1024

	reportDirPerm  = 0o700
	reportFilePerm = 0o600
)

type crashReport struct {
	ReportVersion        int                `json:"report_version"`
	GeneratedAt          string             `json:"generated_at"`
	SessionID            string             `json:"session_id"`
	Panic                string             `json:"panic"`
	Stack                []string           `json:"stack"`
	SessionLogFile       string             `json:"session_log_file,omitempty"`
	SessionLogTail       []string           `json:"session_log_tail_redacted,omitempty"`
	ReporterProcess      crashReporter      `json:"reporter_process"`
	CoreDumpDiagnostics  crashCoreDump      `json:"core_dump_diagnostics"`
	IssueTemplate        crashIssueTemplate `json:"issue_template"`
	GeneratedMarkdownRef string             `json:"generated_markdown_ref,omitempty"`
}

type crashReporter struct {
	GeneratedBy string `json:"generated_by"`
	GoVersion   string `json:"go_version"`
	GOOS        string `json:"goos"`
	GOARCH      string `json:"goarch"`
	PID         int    `json:"pid"`
	PPID        int    `json:"ppid"`
}

type crashCoreDump struct {
	RLimitCoreSoft string `json:"rlimit_core_soft"`
	RLimitCoreHard string `json:"rlimit_core_hard"`
	Hint           string `json:"hint"`
}

type crashIssueTemplate struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// WriteCrashReport records a panic of session sessionID under
// logDir/crashes as a JSON report and a markdown twin, and returns the JSON
// path. The redacted tail of the session log in logDir is included when the
// log exists. Older reports beyond the retention limit are pruned.
func WriteCrashReport(logDir, sessionID string, recovered any, stack []byte) (string, error) {
	if logDir == "" || sessionID == "" {
		return "", errors.New("logDir and sessionID are required")
	}

	reportsDir := filepath.Join(logDir, crashReportsDirName)
	if err := os.MkdirAll(reportsDir, reportDirPerm); err != nil {
		return "", err
	}

	pruneOldCrashReports(reportsDir, maxCrashReportsKept-1)

	jsonPath := filepath.Join(reportsDir, fmt.Sprintf("session_%s.crash.json", sessionID))
	markdownPath := filepath.Join(reportsDir, fmt.Sprintf("session_%s.crash.md", sessionID))

	report := crashReport{
		ReportVersion:       1,
		GeneratedAt:         time.Now().UTC().Format(time.RFC3339Nano),
		SessionID:           sessionID,
		Panic:               redactSensitiveContent(fmt.Sprint(recovered)),
		Stack:               strings.Split(strings.TrimRight(string(stack), "\n"), "\n"),
		ReporterProcess:     currentReporter(),
		CoreDumpDiagnostics: collectCoreDumpDiagnostics(),
		IssueTemplate: crashIssueTemplate{
			Title:   fmt.Sprintf("Play session %s crashed", sessionID),
			Summary: "tapmap stopped on a panic and generated this report automatically.",
		},
		GeneratedMarkdownRef: markdownPath,
	}

	logPath := filepath.Join(logDir, corelogging.SessionFilename(sessionID))
	if _, statErr := os.Stat(logPath); statErr == nil {
		report.SessionLogFile = logPath
		report.SessionLogTail = readRedactedLogTail(logPath, logTailLineCount)
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	payload = append(payload, '\n')
	if err := os.WriteFile(jsonPath, payload, reportFilePerm); err != nil {
		return "", err
	}

	if err := os.WriteFile(markdownPath, []byte(buildCrashMarkdown(report)), reportFilePerm); err != nil {
		return "", err
	}
	return jsonPath, nil
}

func currentReporter() crashReporter {
	return crashReporter{
		GeneratedBy: "tapmap",
		GoVersion:   runtime.Version(),
		GOOS:        runtime.GOOS,
		GOARCH:      runtime.GOARCH,
		PID:         os.Getpid(),
		PPID:        os.Getppid(),
	}
}

func readRedactedLogTail(path string, lines int) []string {
	if lines <= 0 {
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = file.Close() }()

	ring := make([]string, lines)
	count := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, scannerMaxTokenSize), scannerMaxTokenSize)
	for scanner.Scan() {
		ring[count%lines] = redactSensitiveContent(scanner.Text())
		count++
	}

	var result []string
	if count <= lines {
		result = make([]string, count)
		copy(result, ring[:count])
	} else {
		result = make([]string, lines)
		start := count % lines
		copy(result, ring[start:])
		copy(result[lines-start:], ring[:start])
	}

	if scanner.Err() != nil {
		result = append(result, fmt.Sprintf("[log tail truncated: %v]", scanner.Err()))
	}
	return result
}

func buildCrashMarkdown(report crashReport) string {
	lines := []string{
		"# Crash Report",
		"",
		fmt.Sprintf("Generated: `%s`", report.GeneratedAt),
		fmt.Sprintf("Session: `%s`", report.SessionID),
		fmt.Sprintf("Panic: `%s`", report.Panic),
		"",
		"## Process Context",
		fmt.Sprintf("- pid: `%d`", report.ReporterProcess.PID),
		fmt.Sprintf("- ppid: `%d`", report.ReporterProcess.PPID),
		fmt.Sprintf("- go: `%s` %s/%s", report.ReporterProcess.GoVersion, report.ReporterProcess.GOOS, report.ReporterProcess.GOARCH),
		"",
		"## Core Dump Diagnostics",
		fmt.Sprintf("- RLIMIT_CORE soft: `%s`", report.CoreDumpDiagnostics.RLimitCoreSoft),
		fmt.Sprintf("- RLIMIT_CORE hard: `%s`", report.CoreDumpDiagnostics.RLimitCoreHard),
		fmt.Sprintf("- hint: %s", report.CoreDumpDiagnostics.Hint),
		"",
		"## Stack",
		"```text",
	}
	lines = append(lines, report.Stack...)
	lines = append(lines, "```")

	if len(report.SessionLogTail) > 0 {
		lines = append(lines,
			"",
			"## Redacted Log Tail",
			"```text",
		)
		lines = append(lines, report.SessionLogTail...)
		lines = append(lines, "```")
	}

	lines = append(lines,
		"",
		"## GitHub Issue Template",
		fmt.Sprintf("Title: %s", report.IssueTemplate.Title),
		"",
		"```markdown",
		"### What happened",
		"Describe what you were doing in the overlay just before it crashed.",
		"",
		"### Crash report",
		fmt.Sprintf("- session id: `%s`", report.SessionID),
		fmt.Sprintf("- panic: `%s`", report.Panic),
		"",
		"### Additional context",
		"- device model / Android version:",
		"- mirroring tool and version:",
		"- steps to reproduce:",
		"```",
	)

	return strings.Join(lines, "\n") + "\n"
}

// Device serials of network-attached devices are host:port pairs.
var ipv4Regex = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}(?::\d+)?\b`)

var secretKeyRegex = regexp.MustCompile(`(?i)(token|password|passwd|secret|authorization)=([^&\s]+)`)

var secretJSONRegex = regexp.MustCompile(`(?i)"(device|serial|token|password|secret)"\s*:\s*"(.*?)"`)

func redactSensitiveContent(line string) string {
	redacted := secretJSONRegex.ReplaceAllString(line, `"$1":"[REDACTED]"`)
	redacted = secretKeyRegex.ReplaceAllString(redacted, "$1=[REDACTED]")
	redacted = ipv4Regex.ReplaceAllString(redacted, "[REDACTED-ADDR]")
	return redacted
}

func pruneOldCrashReports(reportsDir string, maxKeep int) {
	matches, err := filepath.Glob(filepath.Join(reportsDir, "session_*.crash.json"))
	if err != nil || len(matches) <= maxKeep {
		return
	}

	type reportEntry struct {
		path    string
		modTime time.Time
	}
	entries := make([]reportEntry, 0, len(matches))
	for _, p := range matches {
		info, statErr := os.Stat(p)
		if statErr != nil {
			continue
		}
		entries = append(entries, reportEntry{path: p, modTime: info.ModTime()})
	}
	if len(entries) <= maxKeep {
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].modTime.After(entries[j].modTime)
	})

	for _, e := range entries[maxKeep:] {
		_ = os.Remove(e.path)
		mdPath := strings.TrimSuffix(e.path, ".json") + ".md"
		_ = os.Remove(mdPath)
	}
}
