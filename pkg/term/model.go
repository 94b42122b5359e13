package term

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/coachmark/pkg/errors"
	"github.com/matzehuels/coachmark/pkg/overlay"
)

// ReloadMsg replaces the screen under the overlay, for instance after the
// script was edited and its targets re-registered.
type ReloadMsg struct {
	Screen Screen
}

type frameMsg struct{}

type navMsg struct {
	action string
	ok     bool
	err    error
}

// Model is the bubbletea model of an interactive tour.
type Model struct {
	ctx     context.Context
	overlay *overlay.Overlay
	screen  Screen
	bubble  Bubble
	status  string
	done    bool
	quit    bool
}

// NewModel creates a model driving o over screen. ctx bounds navigation and
// repaint waits.
func NewModel(ctx context.Context, o *overlay.Overlay, screen Screen, bubble Bubble) Model {
	return Model{ctx: ctx, overlay: o, screen: screen, bubble: bubble}
}

// Completed reports whether the tour ended while the program ran.
func (m Model) Completed() bool { return m.done }

func (m Model) Init() tea.Cmd {
	return m.waitFrame()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		case "n", "right", "enter", " ":
			return m, m.nav("next", m.overlay.Next)
		case "b", "left":
			return m, m.nav("back", m.overlay.Back)
		case "s", "esc":
			return m, m.nav("skip", m.overlay.Skip)
		case "r":
			return m, m.nav("restart", m.overlay.Reset)
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			p := CellCenter(msg.X, msg.Y)
			return m, m.nav("tap", func(ctx context.Context) (bool, error) {
				return m.overlay.Tap(ctx, p)
			})
		}
	case navMsg:
		switch {
		case msg.err != nil:
			m.status = errors.UserMessage(msg.err)
		case msg.ok:
			m.status = msg.action
		default:
			m.status = ""
		}
		if m.overlay.Tour().IsHidden() {
			m.done = true
			return m, tea.Quit
		}
	case frameMsg:
		return m, m.waitFrame()
	case ReloadMsg:
		m.screen = msg.Screen
		m.status = "reloaded"
	}
	return m, nil
}

func (m Model) View() string {
	if m.done || m.quit {
		return ""
	}
	view, _, _ := Snapshot(m.overlay, m.screen, m.bubble)

	var b strings.Builder
	b.WriteString(view)
	b.WriteString("\n")
	b.WriteString(styleHelp.Render("n/→ next  b/← back  s skip  r restart  q quit  click to tap"))
	if m.status != "" {
		b.WriteString("  ")
		b.WriteString(styleHelp.Render(m.status))
	}
	return b.String()
}

// nav runs a blocking navigation call off the event loop.
func (m Model) nav(action string, fn func(context.Context) (bool, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		ok, err := fn(ctx)
		return navMsg{action: action, ok: ok, err: err}
	}
}

// waitFrame turns overlay repaint signals into messages.
func (m Model) waitFrame() tea.Cmd {
	ctx, frames := m.ctx, m.overlay.Listen()
	return func() tea.Msg {
		select {
		case <-frames:
			return frameMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}
