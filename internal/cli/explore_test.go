package cli

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/primetree/pkg/render"
	"github.com/matzehuels/primetree/pkg/state"
)

func newTestModel(t *testing.T) exploreModel {
	t.Helper()
	opts := DefaultConfig().PipelineOptions()
	opts.Start, opts.End = 1, 20
	cfg, err := stateConfig(opts)
	if err != nil {
		t.Fatalf("stateConfig: %v", err)
	}
	g, err := state.New(cfg)
	if err != nil {
		t.Fatalf("state.New: %v", err)
	}
	m := newExploreModel(g, false)
	return update(t, m, tea.WindowSizeMsg{Width: 80, Height: 26})
}

func update(t *testing.T, m exploreModel, msg tea.Msg) exploreModel {
	t.Helper()
	next, _ := m.Update(msg)
	em, ok := next.(exploreModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return em
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestExploreResize(t *testing.T) {
	m := newTestModel(t)
	if m.cols != 80 || m.rows != 26-statusLines {
		t.Fatalf("cells = %dx%d", m.cols, m.rows)
	}
	w, h := m.g.Canvas()
	if w != 80*cellWidth || h != float64(m.rows)*cellHeight {
		t.Errorf("canvas = %gx%g", w, h)
	}
	if m.frame == "" {
		t.Error("resize should draw a frame")
	}
	if m.View() == "" {
		t.Error("View is empty")
	}
}

func TestExploreKeys(t *testing.T) {
	m := newTestModel(t)
	zoom := m.g.Transform().Zoom

	m = update(t, m, runeKey("+"))
	if !m.g.Manual() || m.g.Transform().Zoom <= zoom {
		t.Errorf("zoom in: manual=%v zoom=%v", m.g.Manual(), m.g.Transform().Zoom)
	}

	m = update(t, m, runeKey("e"))
	if m.g.End() != 40 {
		t.Errorf("double end: End = %d, want 40", m.g.End())
	}
	m = update(t, m, runeKey("E"))
	if m.g.End() != 20 {
		t.Errorf("halve end: End = %d, want 20", m.g.End())
	}

	m = update(t, m, runeKey("n"))
	if m.g.Display().Nodes != render.NodeFactors {
		t.Errorf("node mode = %q, want %q", m.g.Display().Nodes, render.NodeFactors)
	}
	m = update(t, m, runeKey("d"))
	if m.g.Display().Edges != render.EdgeHidden {
		t.Errorf("edge mode = %q, want %q", m.g.Display().Edges, render.EdgeHidden)
	}
	m = update(t, m, runeKey("y"))
	if !m.g.Display().SymmetryLine {
		t.Error("symmetry line not toggled on")
	}
}

func TestExploreRangeErrorKeepsTree(t *testing.T) {
	m := newTestModel(t)
	before := m.g.Tree().Len()

	// Halving the end below the start is rejected.
	for range 6 {
		m = update(t, m, runeKey("E"))
	}
	if m.g.Tree().Len() == 0 || m.g.Tree().Len() > before {
		t.Errorf("tree len = %d after invalid ranges", m.g.Tree().Len())
	}
	if m.messageLine() == "" {
		t.Error("message line is empty")
	}
}

func TestExploreQuit(t *testing.T) {
	m := newTestModel(t)
	for _, k := range []tea.KeyMsg{runeKey("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Errorf("%q should quit", k.String())
		}
	}
}

func TestExploreMouse(t *testing.T) {
	m := newTestModel(t)
	zoom := m.g.Transform().Zoom

	m = update(t, m, tea.MouseMsg{X: 40, Y: 10, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if m.g.Transform().Zoom <= zoom {
		t.Errorf("wheel up: zoom %v -> %v", zoom, m.g.Transform().Zoom)
	}

	m = update(t, m, tea.MouseMsg{X: 40, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if !m.g.Dragging() {
		t.Fatal("left press should start a drag")
	}
	panX := m.g.Transform().PanX
	m = update(t, m, tea.MouseMsg{X: 45, Y: 10, Action: tea.MouseActionMotion})
	if m.g.Transform().PanX == panX {
		t.Error("drag should pan")
	}
	m = update(t, m, tea.MouseMsg{X: 45, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if m.g.Dragging() {
		t.Error("release should end the drag")
	}

	// Clicks on the status lines are ignored.
	m = update(t, m, tea.MouseMsg{X: 1, Y: 25, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if m.g.Dragging() {
		t.Error("press below the canvas started a drag")
	}
}

func TestExploreRecenterAnimates(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, runeKey("+"))
	m = update(t, m, runeKey("c"))
	if m.g.Manual() {
		t.Error("recenter should leave manual mode")
	}

	now := time.Now()
	m = update(t, m, tickMsg(now))
	m = update(t, m, tickMsg(now.Add(time.Second)))
	if m.g.Animating() {
		t.Error("animation still running after a second")
	}
}

func TestNextModesWrap(t *testing.T) {
	if got := nextNodeMode(render.NodeDot); got != render.NodeValue {
		t.Errorf("nextNodeMode(dot) = %q", got)
	}
	if got := nextEdgeMode(render.EdgePrime); got != render.EdgeLine {
		t.Errorf("nextEdgeMode(prime) = %q", got)
	}
}
