package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(level)
	l.SetOutput(&buf)
	l.EnableColors(false)
	return l, &buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := bufferLogger("warn")

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warnf("battery at %d%%", 15)
	l.Error("boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN ]")
	assert.Contains(t, out, "battery at 15%")
	assert.Contains(t, out, "[ERROR]")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestCallerIsReported(t *testing.T) {
	l, buf := bufferLogger("debug")
	l.Info("where")
	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestWithPrefix(t *testing.T) {
	l, buf := bufferLogger("info")
	l.WithPrefix("vcr").WithPrefix("seq").Info("tick")
	assert.Contains(t, buf.String(), "[vcr/seq] tick")
}

var parseLevelCases = []struct {
	In     string
	Expect LogLevel
}{
	{"debug", DEBUG},
	{"INFO", INFO},
	{" warning ", WARN},
	{"error", ERROR},
	{"fatal", FATAL},
	{"nonsense", INFO},
}

func TestParseLevel(t *testing.T) {
	for _, tc := range parseLevelCases {
		assert.Equal(t, tc.Expect, ParseLevel(tc.In), tc.In)
	}
	assert.Equal(t, "WARN", WARN.String())
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "vcr.log")
	l, err := NewFileLogger("info", path)
	require.NoError(t, err)

	l.Info("to disk")
	l.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to disk")
	assert.NotContains(t, string(data), "\033[")
}
