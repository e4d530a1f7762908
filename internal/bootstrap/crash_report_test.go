package bootstrap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corelogging "github.com/bnema/tapmap/internal/logging"
)

func TestRedactSensitiveContent(t *testing.T) {
	line := `{"level":"info","device":"192.168.1.20:5555","message":"adb -s 192.168.1.20:5555 shell password=hunter2"}`
	redacted := redactSensitiveContent(line)

	assert.NotContains(t, redacted, "192.168.1.20")
	assert.NotContains(t, redacted, "hunter2")
	assert.Contains(t, redacted, `"device":"[REDACTED]"`)
	assert.Contains(t, redacted, `"level":"info"`)
}

func TestWriteCrashReport(t *testing.T) {
	logDir := t.TempDir()
	sessionID := "20261018_101500_ab12"

	logPath := filepath.Join(logDir, corelogging.SessionFilename(sessionID))
	logBody := `{"level":"info","device":"10.0.0.7:5555","message":"overlay running"}` +
		"\n" +
		`{"level":"debug","message":"adb shell output","line":"input -d 3 tap 10 20"}` +
		"\n"
	require.NoError(t, os.WriteFile(logPath, []byte(logBody), reportFilePerm))

	jsonPath, err := WriteCrashReport(logDir, sessionID, "index out of range", []byte("goroutine 1 [running]:\nmain.main()\n"))
	require.NoError(t, err)
	assert.FileExists(t, jsonPath)

	mdPath := strings.TrimSuffix(jsonPath, ".json") + ".md"
	assert.FileExists(t, mdPath)

	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, sessionID, payload["session_id"])
	assert.Equal(t, "index out of range", payload["panic"])
	assert.Equal(t, logPath, payload["session_log_file"])

	tail := payload["session_log_tail_redacted"].([]any)
	require.Len(t, tail, 2)
	assert.NotContains(t, tail[0].(string), "10.0.0.7")
	assert.Contains(t, tail[1].(string), "tap 10 20")

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "main.main()")
}

func TestWriteCrashReport_WithoutSessionLog(t *testing.T) {
	jsonPath, err := WriteCrashReport(t.TempDir(), "s1", fmt.Errorf("boom"), nil)
	require.NoError(t, err)

	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "session_log_file")
}

func TestWriteCrashReport_RequiresSession(t *testing.T) {
	_, err := WriteCrashReport("", "s1", "boom", nil)
	assert.Error(t, err)
}

func TestPruneOldCrashReports(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		p := filepath.Join(dir, fmt.Sprintf("session_%d.crash.json", i))
		require.NoError(t, os.WriteFile(p, []byte("{}"), reportFilePerm))
		require.NoError(t, os.WriteFile(strings.TrimSuffix(p, ".json")+".md", nil, reportFilePerm))
		mt := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, mt, mt))
	}

	pruneOldCrashReports(dir, 2)

	left, err := filepath.Glob(filepath.Join(dir, "session_*.crash.*"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "session_3.crash.json"),
		filepath.Join(dir, "session_3.crash.md"),
		filepath.Join(dir, "session_4.crash.json"),
		filepath.Join(dir, "session_4.crash.md"),
	}, left)
}
