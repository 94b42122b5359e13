package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/coachmark/pkg/checkpoint"
	"github.com/matzehuels/coachmark/pkg/errors"
	"github.com/matzehuels/coachmark/pkg/placement"
	"github.com/matzehuels/coachmark/pkg/script"
)

var welcome = filepath.Join("..", "..", "examples", "welcome.toml")

func TestPlace(t *testing.T) {
	var buf bytes.Buffer
	err := New(io.Discard, LogInfo).runPlace(context.Background(), &buf, welcome, placeOpts{step: 3, plain: true})
	if err != nil {
		t.Fatalf("runPlace() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Editor", "Your document lives here.", "25.5,19 29x4", "BottomCenter", "band"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("--plain output should have no escape sequences")
	}
}

func TestPlaceUnknownStep(t *testing.T) {
	err := New(io.Discard, LogInfo).runPlace(context.Background(), io.Discard, welcome, placeOpts{step: 9})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("runPlace(step 9) error = %v, want NOT_FOUND", err)
	}
}

func TestGraphDOT(t *testing.T) {
	var buf bytes.Buffer
	if err := New(io.Discard, LogInfo).runGraph(context.Background(), &buf, welcome, graphOpts{format: "dot", detailed: true}); err != nil {
		t.Fatalf("runGraph() error = %v", err)
	}
	for _, want := range []string{
		`"step1" -> "step2" [label="next"];`,
		`"step4" -> "hidden" [label="complete"];`,
		`label="2\nSearch"`,
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("DOT missing %s", want)
		}
	}
}

func TestGraphFormatErrors(t *testing.T) {
	c := New(io.Discard, LogInfo)
	tests := []struct {
		name string
		opts graphOpts
	}{
		{"unknown format", graphOpts{format: "pdf"}},
		{"png to stdout", graphOpts{format: "png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.runGraph(context.Background(), io.Discard, welcome, tt.opts)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("runGraph() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestValidateScripts(t *testing.T) {
	if err := validateScripts([]string{welcome, filepath.Join("..", "..", "examples", "settings.yaml")}); err != nil {
		t.Fatalf("validateScripts(examples) error = %v", err)
	}

	bad := writeFile(t, "bad.toml", `
title = "Broken"
[screen]
width = 40
height = 10
[[box]]
name = "menu"
x = 1
y = 1
w = 5
h = 2
[[step]]
position = 1
target = "mneu"
alignment = "sideways"
`)
	err := validateScripts([]string{welcome, bad})
	if !errors.Is(err, errors.ErrCodeInvalidScript) {
		t.Errorf("validateScripts() error = %v, want INVALID_SCRIPT", err)
	}
}

func TestStrategyFor(t *testing.T) {
	sc := &script.Script{Strategy: "search"}
	tests := []struct {
		flag    string
		want    placement.Strategy
		wantErr bool
	}{
		{"", placement.StrategySearch, false},
		{"band", placement.StrategyBand, false},
		{"zigzag", 0, true},
	}
	for _, tt := range tests {
		got, err := strategyFor(sc, tt.flag)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("strategyFor(%q) = %v, %v", tt.flag, got, err)
		}
	}
}

func TestResolveTourID(t *testing.T) {
	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{welcome, "welcome", false},
		{"billing-v2", "billing-v2", false},
		{"../etc/passwd", "", true},
	}
	for _, tt := range tests {
		got, err := resolveTourID(tt.arg)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("resolveTourID(%q) = %q, %v; want %q", tt.arg, got, err, tt.want)
		}
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&buf)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestCheckpointCommands(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv(envBackend, "")

	if _, err := execute(t, "checkpoint", "show", welcome); !errors.Is(err, errors.ErrCodeCheckpointNotFound) {
		t.Fatalf("show before save error = %v, want CHECKPOINT_NOT_FOUND", err)
	}

	store, err := checkpoint.NewFileStore(filepath.Join(home, appName, "checkpoints"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	store.Save(ctx, checkpoint.Checkpoint{TourID: "welcome", Position: 2, SavedAt: time.Now()})
	store.Save(ctx, checkpoint.Checkpoint{TourID: "settings", Hidden: true, Position: -1})

	out, err := execute(t, "checkpoint", "show", welcome)
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if !strings.Contains(out, "welcome") || !strings.Contains(out, "at 2") || !strings.Contains(out, "just now") {
		t.Errorf("show output:\n%s", out)
	}

	out, err = execute(t, "checkpoint", "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "settings") || !strings.Contains(out, "finished") {
		t.Errorf("list output:\n%s", out)
	}

	if _, err := execute(t, "checkpoint", "clear", "welcome"); err != nil {
		t.Fatalf("clear error = %v", err)
	}
	if _, err := execute(t, "checkpoint", "show", "welcome"); !errors.Is(err, errors.ErrCodeCheckpointNotFound) {
		t.Errorf("show after clear error = %v, want CHECKPOINT_NOT_FOUND", err)
	}
}

func TestFormatSavedAt(t *testing.T) {
	now := time.Now()
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Time{}, "—"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
	}
	for _, tt := range tests {
		if got := formatSavedAt(tt.at); got != tt.want {
			t.Errorf("formatSavedAt(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}
