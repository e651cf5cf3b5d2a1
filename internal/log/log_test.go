package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormat_FieldsAndOrphanKey(t *testing.T) {
	ts := time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC)

	got := format(ts, LevelError, CatAPI, "request failed", "status", 400, "attempt")
	require.Equal(t, "2025-12-06T10:45:00 [ERROR] [api] request failed status=400 attempt=<missing>\n", got)
}

func TestNoopWithoutLogger(t *testing.T) {
	Reset()
	// Must not panic when nothing is installed.
	Debug(CatForm, "ignored")
	ErrorErr(CatForm, "ignored", errors.New("boom"))
}

func TestInitWriter_RespectsLevelAndEnabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	SetMinLevel(LevelWarn)
	Info(CatForm, "hidden")
	Warn(CatForm, "shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "[WARN] [form] shown")

	buf.Reset()
	SetEnabled(false)
	Error(CatForm, "muted")
	require.Empty(t, buf.String())
}

func TestErrorErr_NilError(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	ErrorErr(CatUI, "odd", nil)
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestInit_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	cleanup, err := Init(path)
	require.NoError(t, err)
	Info(CatConfig, "first")
	Info(CatConfig, "second")
	cleanup()
	Reset()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[1], "[INFO] [config] second")
}

func TestInit_BadPath(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "missing", "debug.log"))
	require.Error(t, err)
}
