package render

import (
	"image/color"
	"testing"

	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/hit"
	"github.com/matzehuels/primetree/pkg/tree"
	"github.com/matzehuels/primetree/pkg/view"
)

func buildTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr, err := tree.Build(1, 12, tree.Zero, tree.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestLabel(t *testing.T) {
	tr := buildTree(t)
	n, _ := tr.Find(12)

	tests := []struct {
		mode NodeMode
		want string
	}{
		{NodeValue, "12"},
		{NodeFactors, "2^2·3"},
		{NodeDot, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			s := NewScene(tr, view.Identity(), 800, 600, Display{Nodes: tt.mode})
			if got := s.Label(n); got != tt.want {
				t.Errorf("Label = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEdgeVisible(t *testing.T) {
	tr := buildTree(t)
	// 1→2 and 2→5 are the first and fourth edges in fill order.
	first, primePair := tr.Edges[0], tr.Edges[3]
	if v := tr.Node(primePair.From).Value; v != 2 {
		t.Fatalf("edge 3 starts at %d, want 2", v)
	}

	tests := []struct {
		mode        EdgeMode
		first, pair bool
	}{
		{EdgeLine, true, true},
		{EdgeHidden, false, false},
		{EdgePrime, false, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			s := NewScene(tr, view.Identity(), 800, 600, Display{Edges: tt.mode})
			if got := s.EdgeVisible(first); got != tt.first {
				t.Errorf("EdgeVisible(1→2) = %v, want %v", got, tt.first)
			}
			if got := s.EdgeVisible(primePair); got != tt.pair {
				t.Errorf("EdgeVisible(2→5) = %v, want %v", got, tt.pair)
			}
		})
	}
}

func TestNodeFill(t *testing.T) {
	tr := buildTree(t)
	p := DefaultPalette()
	seven, _ := tr.Find(7)
	eight, _ := tr.Find(8)
	if got := p.NodeFill(seven); got != "#f80" {
		t.Errorf("NodeFill(7) = %s, want #f80", got)
	}
	if got := p.NodeFill(eight); got != "#08f" {
		t.Errorf("NodeFill(8) = %s, want #08f", got)
	}
}

func TestSymmetry(t *testing.T) {
	tr := buildTree(t)
	tr.Root().X = 100
	v := view.Transform{Zoom: 2, PanX: 10}

	s := NewScene(tr, v, 800, 600, DefaultDisplay())
	if _, ok := s.Symmetry(); ok {
		t.Error("symmetry line drawn while disabled")
	}
	s.Display.SymmetryLine = true
	x, ok := s.Symmetry()
	if !ok || x != 210 {
		t.Errorf("Symmetry = %v, %v, want 210, true", x, ok)
	}
}

func TestHovered(t *testing.T) {
	tr := buildTree(t)
	s := NewScene(tr, view.Identity(), 800, 600, DefaultDisplay())
	if s.Hovered(0) || s.HoveredEdge(0) {
		t.Error("fresh scene reports a hover")
	}
	s.Hover = hit.Result{Kind: hit.NodeHit, Node: 3, Edge: -1}
	if !s.Hovered(3) || s.Hovered(2) || s.HoveredEdge(3) {
		t.Error("node hover reported wrongly")
	}
}

func TestParseModes(t *testing.T) {
	if m, err := ParseNodeMode(" Factors "); err != nil || m != NodeFactors {
		t.Errorf("ParseNodeMode = %q, %v", m, err)
	}
	if m, err := ParseEdgeMode("PRIME"); err != nil || m != EdgePrime {
		t.Errorf("ParseEdgeMode = %q, %v", m, err)
	}
	if _, err := ParseNodeMode("square"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseNodeMode(square) err = %v, want INVALID_INPUT", err)
	}
	if err := (Display{Nodes: NodeDot, Edges: "dashed"}).Validate(); err == nil {
		t.Error("Validate accepted an unknown edge mode")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#f80", color.RGBA{0xff, 0x88, 0x00, 0xff}},
		{"#0088ff", color.RGBA{0x00, 0x88, 0xff, 0xff}},
		{"nope", color.RGBA{A: 0xff}},
	}
	for _, tt := range tests {
		if got := ParseHex(tt.in); got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
