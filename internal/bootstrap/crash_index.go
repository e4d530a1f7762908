package bootstrap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNoCrashReports is returned by ResolveCrashReport when none exist.
var ErrNoCrashReports = errors.New("no crash reports found")

// CrashReportFile locates one written report.
type CrashReportFile struct {
	Path         string
	MarkdownPath string
	SessionID    string
	GeneratedAt  time.Time
	Panic        string
}

// ID is the short report name used on the command line.
func (f CrashReportFile) ID() string {
	base := filepath.Base(f.Path)
	base = strings.TrimSuffix(base, ".crash.json")
	return strings.TrimPrefix(base, "session_")
}

// CrashReportsDir returns the directory WriteCrashReport writes to.
func CrashReportsDir(logDir string) string {
	return filepath.Join(logDir, crashReportsDirName)
}

// ListCrashReports returns the reports under logDir, newest first. Unreadable
// reports are skipped.
func ListCrashReports(logDir string) ([]CrashReportFile, error) {
	dir := CrashReportsDir(logDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	reports := make([]CrashReportFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".crash.json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			continue
		}
		var parsed crashReport
		if unmarshalErr := json.Unmarshal(raw, &parsed); unmarshalErr != nil {
			continue
		}
		generated, _ := time.Parse(time.RFC3339Nano, parsed.GeneratedAt)
		reports = append(reports, CrashReportFile{
			Path:         path,
			MarkdownPath: strings.TrimSuffix(path, ".json") + ".md",
			SessionID:    parsed.SessionID,
			GeneratedAt:  generated,
			Panic:        parsed.Panic,
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].GeneratedAt.Equal(reports[j].GeneratedAt) {
			return reports[i].GeneratedAt.After(reports[j].GeneratedAt)
		}
		return reports[i].Path > reports[j].Path
	})
	return reports, nil
}

// ResolveCrashReport finds a report by "latest", its exact id, or a unique
// substring of its file name or session id.
func ResolveCrashReport(logDir, query string) (*CrashReportFile, error) {
	reports, err := ListCrashReports(logDir)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, ErrNoCrashReports
	}
	if strings.EqualFold(query, "latest") {
		return &reports[0], nil
	}

	query = strings.TrimSpace(strings.ToLower(query))
	for i := range reports {
		if strings.ToLower(reports[i].ID()) == query {
			return &reports[i], nil
		}
	}

	var matches []int
	for i := range reports {
		full := strings.ToLower(filepath.Base(reports[i].Path))
		if strings.Contains(full, query) || strings.Contains(strings.ToLower(reports[i].SessionID), query) {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 1:
		return &reports[matches[0]], nil
	case 0:
		return nil, fmt.Errorf("no crash report matching '%s' found", query)
	default:
		ids := make([]string, 0, len(matches))
		for _, idx := range matches {
			ids = append(ids, reports[idx].ID())
		}
		return nil, fmt.Errorf("multiple reports match '%s': %s", query, strings.Join(ids, ", "))
	}
}

// IssueSection returns the issue template part of a markdown report, or the
// whole report when it has none.
func IssueSection(markdown string) string {
	start := strings.Index(markdown, "## GitHub Issue Template")
	if start < 0 {
		return markdown
	}
	return strings.TrimSpace(markdown[start:]) + "\n"
}
