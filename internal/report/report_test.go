package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"agent-workflow/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 9, 5, 7, 0, time.Local)
}

func TestStatusLineFormat(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{Info, "[09:05:07] ℹ hello\n"},
		{Success, "[09:05:07] ✓ hello\n"},
		{Warning, "[09:05:07] ⚠ hello\n"},
		{Error, "[09:05:07] ✗ hello\n"},
	}
	for _, tt := range tests {
		t.Run(tt.sev.String(), func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf, WithClock(fixedClock)).Status(tt.sev, "hello")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Header("Setup Validation")

	rule := strings.Repeat("=", HeaderWidth)
	assert.Equal(t, "\n"+rule+"\nESM Platform - Setup Validation\n"+rule+"\n", buf.String())
}

func TestRecordCollectsMessages(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, WithClock(fixedClock))

	var res CheckResult
	r.Record(&res, Success, "Found: %s", "a")
	r.Record(&res, Error, "Missing: %s", "b")
	r.Record(&res, Warning, "careful")

	require.Len(t, res.Messages, 3)
	assert.Equal(t, Message{Text: "Missing: b", Severity: Error}, res.Messages[1])
	assert.Equal(t, 1, res.Count(Error))
	assert.Equal(t, 1, res.Count(Warning))
	assert.Equal(t, 0, res.Count(Info))
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
}

func TestStatusIsMirroredToLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	l, err := logging.NewLogger(path, "info", 1, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	r := New(&buf, WithLogger(l))
	r.Status(Warning, "No git repository found")
	r.Status(Error, "Missing: database/schema.sql")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[WARN] ⚠ No git repository found")
	assert.Contains(t, string(data), "[ERROR] ✗ Missing: database/schema.sql")
}

func TestRenderWithoutColorIsPlain(t *testing.T) {
	r := New(&bytes.Buffer{})
	assert.False(t, r.Color())
	assert.Equal(t, "text", r.Render(r.Styles().Error, "text"))
}
