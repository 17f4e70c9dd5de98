package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevelFilter(t *testing.T) {
	tests := []struct {
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{LogInfo, func(l *log.Logger) { l.Info("fetched snapshot", "skills", 3) }, true},
		{LogInfo, func(l *log.Logger) { l.Debug("cache hit", "key", "snapshot:abc") }, false},
		{LogDebug, func(l *log.Logger) { l.Debug("cache hit", "key", "snapshot:abc") }, true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		tt.emit(newLogger(&buf, tt.level))
		if got := buf.Len() > 0; got != tt.want {
			t.Errorf("level %v: wrote %v, want %v (%q)", tt.level, got, tt.want, buf.String())
		}
	}
}

func TestCommandLoggerPrefix(t *testing.T) {
	var buf bytes.Buffer
	base := newLogger(&buf, LogInfo)

	commandLogger(base, "render").Info("computed layout", "bubbles", 4)
	if !strings.Contains(buf.String(), "render") {
		t.Errorf("missing command prefix: %q", buf.String())
	}

	if commandLogger(base, appName) != base || commandLogger(base, "") != base {
		t.Error("root command should log without a prefix")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.done("rendered talent map", "files", 2)

	for _, want := range []string{"rendered talent map", "files=2", "elapsed="} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("progress output missing %q: %q", want, buf.String())
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}

	l := newLogger(io.Discard, LogInfo)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("loggerFromContext did not return the attached logger")
	}
}

func TestRenderLogsUnderCommandPrefix(t *testing.T) {
	_, snapshot, cfg := writeFixtures(t)
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", cfg, "render", "-i", snapshot, "--no-cache", "-o", t.TempDir() + "/map"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"render", "computed layout", "rendered talent map"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log missing %q:\n%s", want, buf.String())
		}
	}
}
