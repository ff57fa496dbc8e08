package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestModelPauseAndTick(t *testing.T) {
	w := newWorld(t)
	m := NewModel(w, nil)

	m = update(t, m, TickMsg{})
	if w.Ticks() != 0 {
		t.Fatalf("expected no ticks while paused, got %d", w.Ticks())
	}

	m = update(t, m, key(' '))
	if w.Paused() {
		t.Fatal("expected space to resume")
	}
	for i := 0; i < 3; i++ {
		m = update(t, m, TickMsg{})
	}
	if w.Ticks() != 3 {
		t.Errorf("expected 3 ticks, got %d", w.Ticks())
	}
	if len(m.speeds) != 3 {
		t.Errorf("expected 3 speed samples, got %d", len(m.speeds))
	}
}

func TestModelSpeedHistoryBounded(t *testing.T) {
	w := newWorld(t)
	m := NewModel(w, nil)
	w.SetPaused(false)

	for i := 0; i < historyCapacity+25; i++ {
		m.step()
	}

	if len(m.speeds) != historyCapacity {
		t.Fatalf("expected %d samples, got %d", historyCapacity, len(m.speeds))
	}
	if cap(m.speeds) != historyCapacity {
		t.Errorf("history grew to capacity %d", cap(m.speeds))
	}
	if m.speeds[len(m.speeds)-1] != w.Station().Speed() {
		t.Error("expected the newest speed last")
	}
}

func TestModelToggles(t *testing.T) {
	m := NewModel(newWorld(t), nil)

	m = update(t, m, key('v'))
	m = update(t, m, key('g'))
	if !m.layers.Vectors || m.layers.Grid {
		t.Errorf("unexpected layers %+v", m.layers)
	}

	name := m.theme.Name
	m = update(t, m, key('t'))
	if m.theme.Name == name {
		t.Error("expected theme to change")
	}

	m = update(t, m, key('i'))
	if m.showInfo {
		t.Error("expected info hidden")
	}
}

func TestModelMouseThrust(t *testing.T) {
	w := newWorld(t)
	m := NewModel(w, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m = update(t, m, tea.MouseMsg{X: 5, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if !w.Particles().Active() {
		t.Error("expected left click to start a thrust episode")
	}

	scale := w.Camera().Scale
	m = update(t, m, tea.MouseMsg{X: 5, Y: 5, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if w.Camera().Scale <= scale {
		t.Error("expected wheel up to zoom in")
	}

	m = update(t, m, tea.MouseMsg{X: 10, Y: 10, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	update(t, m, tea.MouseMsg{X: 20, Y: 10, Button: tea.MouseButtonRight, Action: tea.MouseActionMotion})
	if w.Camera().X >= 0 {
		t.Errorf("expected drag right to move the camera left, got %f", w.Camera().X)
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(newWorld(t), nil)
	out := m.View()
	if !strings.Contains(out, "PAUSED") {
		t.Error("expected paused status in HUD")
	}

	m = update(t, m, key('?'))
	if !strings.Contains(m.View(), "KEYBOARD") {
		t.Error("expected help overlay")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(newWorld(t), nil)
	_, cmd := m.Update(key('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
