package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/primetree/pkg/hit"
	"github.com/matzehuels/primetree/pkg/layout"
	"github.com/matzehuels/primetree/pkg/tree"
	"github.com/matzehuels/primetree/pkg/view"
)

// Palette holds the scene colours as CSS hex strings.
type Palette struct {
	Prime     string `json:"prime"`
	Composite string `json:"composite"`
	Edge      string `json:"edge"`
	Label     string `json:"label"`
	Highlight string `json:"highlight"`
	Symmetry  string `json:"symmetry"`
}

// DefaultPalette is orange for primes and blue for everything else.
func DefaultPalette() Palette {
	return Palette{
		Prime:     "#f80",
		Composite: "#08f",
		Edge:      "#000",
		Label:     "#fff",
		Highlight: "#f00",
		Symmetry:  "#888",
	}
}

// NodeFill returns the fill colour for n.
func (p Palette) NodeFill(n *tree.Node) string {
	if n.Prime {
		return p.Prime
	}
	return p.Composite
}

// Scene is a drawable snapshot of a graph.
type Scene struct {
	Tree       *tree.Tree
	View       view.Transform
	Width      float64
	Height     float64
	Display    Display
	Palette    Palette
	NodeRadius float64
	Hover      hit.Result
}

// NewScene returns a scene with the default palette and node radius and no
// hover.
func NewScene(t *tree.Tree, v view.Transform, width, height float64, d Display) Scene {
	d.SetDefaults()
	return Scene{
		Tree:       t,
		View:       v,
		Width:      width,
		Height:     height,
		Display:    d,
		Palette:    DefaultPalette(),
		NodeRadius: hit.DefaultNodeRadius,
		Hover:      hit.Result{Kind: hit.None, Node: tree.NoParent, Edge: -1},
	}
}

// Empty reports whether there is nothing to draw.
func (s Scene) Empty() bool { return s.Tree == nil || s.Tree.Len() == 0 }

// Screen maps a node to screen coordinates.
func (s Scene) Screen(n *tree.Node) (float64, float64) {
	return s.View.ModelToScreen(n.X, n.Y)
}

// Label returns the text drawn inside n, empty in dot mode.
func (s Scene) Label(n *tree.Node) string {
	switch s.Display.Nodes {
	case NodeDot:
		return ""
	case NodeFactors:
		parts := make([]string, len(n.Factors))
		for i, f := range n.Factors {
			if f.Exponent == 1 {
				parts[i] = strconv.Itoa(f.Base)
			} else {
				parts[i] = f.String()
			}
		}
		return strings.Join(parts, "·")
	}
	return strconv.Itoa(n.Value)
}

// Radius is the drawn radius in screen pixels. Dots are drawn smaller.
func (s Scene) Radius() float64 {
	r := s.NodeRadius
	if r <= 0 {
		r = hit.DefaultNodeRadius
	}
	if s.Display.Nodes == NodeDot {
		return r / 4
	}
	return r
}

// EdgeVisible reports whether e is drawn under the edge mode.
func (s Scene) EdgeVisible(e tree.Edge) bool {
	switch s.Display.Edges {
	case EdgeHidden:
		return false
	case EdgePrime:
		return s.Tree.Node(e.From).Prime && s.Tree.Node(e.To).Prime
	}
	return true
}

// Hovered reports whether node id is the hovered node.
func (s Scene) Hovered(id tree.NodeID) bool {
	return s.Hover.Kind == hit.NodeHit && s.Hover.Node == id
}

// HoveredEdge reports whether the edge at index i is the hovered edge.
func (s Scene) HoveredEdge(i int) bool {
	return s.Hover.Kind == hit.EdgeHit && s.Hover.Edge == i
}

// Symmetry returns the screen x of the line of symmetry and whether it is
// drawn.
func (s Scene) Symmetry() (float64, bool) {
	if !s.Display.SymmetryLine || s.Empty() {
		return 0, false
	}
	x, _ := s.View.ModelToScreen(layout.SymmetryAxis(s.Tree), 0)
	return x, true
}

// ParseHex parses "#rgb" or "#rrggbb". Unparseable input yields black.
func ParseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
