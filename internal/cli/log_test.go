package cli

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerLineFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("resumed tour", "tour", "welcome", "position", 3)

	line := strings.TrimSpace(buf.String())
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(line) {
		t.Errorf("log line %q should start with an HH:MM:SS.ms timestamp", line)
	}
	for _, want := range []string{"resumed tour", "tour=welcome", "position=3"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	emit := map[string]func(*log.Logger){
		"debug": func(l *log.Logger) { l.Debug("frame rendered") },
		"info":  func(l *log.Logger) { l.Info("step advanced") },
		"warn":  func(l *log.Logger) { l.Warn("checkpoint save failed") },
	}
	tests := []struct {
		level log.Level
		shown []string
	}{
		{level: LogDebug, shown: []string{"debug", "info", "warn"}},
		{level: LogInfo, shown: []string{"info", "warn"}},
		{level: log.WarnLevel, shown: []string{"warn"}},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			for name, fn := range emit {
				var buf bytes.Buffer
				fn(newLogger(&buf, tt.level))
				want := false
				for _, s := range tt.shown {
					want = want || s == name
				}
				if got := buf.Len() > 0; got != want {
					t.Errorf("%s message at %s level: written = %v, want %v", name, tt.level, got, want)
				}
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output at info level: %q", buf.String())
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("watching script")
	if !strings.Contains(buf.String(), "watching script") {
		t.Errorf("debug output after SetLogLevel(debug) = %q", buf.String())
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, LogInfo)).done("Rendered statechart")

	if !regexp.MustCompile(`Rendered statechart \(\d+(\.\d+)?[µnm]?s\)`).MatchString(buf.String()) {
		t.Errorf("progress output = %q, want message with elapsed time", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	t.Run("attached", func(t *testing.T) {
		l := newLogger(io.Discard, LogInfo)
		if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
			t.Errorf("loggerFromContext() = %p, want %p", got, l)
		}
	})
	t.Run("missing", func(t *testing.T) {
		if got := loggerFromContext(context.Background()); got != log.Default() {
			t.Errorf("loggerFromContext() = %p, want log.Default()", got)
		}
	})
	t.Run("set by root command", func(t *testing.T) {
		var buf bytes.Buffer
		c := New(&buf, LogInfo)
		root := c.RootCommand()
		root.SetOut(io.Discard)
		root.SetArgs([]string{"completion", "fish"})
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		cmd, _, _ := root.Find([]string{"completion"})
		if got := loggerFromContext(cmd.Context()); got != c.Logger {
			t.Errorf("command logger = %p, want the CLI logger %p", got, c.Logger)
		}
	})
}
