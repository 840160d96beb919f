package sink

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/render"
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellSymmetry
	cellEdge
	cellEdgeHover
	cellComposite
	cellPrime
	cellHover
)

const (
	runeEdge     = '·'
	runeSymmetry = '│'
	runeDot      = '●'
)

// TextOption configures [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	color bool
}

// WithColor styles nodes and edges with the scene palette using ANSI
// escapes.
func WithColor() TextOption { return func(r *textRenderer) { r.color = true } }

type cell struct {
	r    rune
	kind cellKind
}

type grid struct {
	cols, rows int
	sx, sy     float64
	cells      [][]cell
}

func newGrid(s render.Scene, cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows, sx: float64(cols) / s.Width, sy: float64(rows) / s.Height}
	g.cells = make([][]cell, rows)
	for i := range g.cells {
		g.cells[i] = make([]cell, cols)
		for j := range g.cells[i] {
			g.cells[i][j] = cell{r: ' '}
		}
	}
	return g
}

func (g *grid) cellOf(x, y float64) (int, int) {
	return int(math.Floor(x * g.sx)), int(math.Floor(y * g.sy))
}

// set writes r at (c, row) unless a cell of higher kind is already there.
func (g *grid) set(c, row int, r rune, kind cellKind) {
	if c < 0 || c >= g.cols || row < 0 || row >= g.rows {
		return
	}
	if g.cells[row][c].kind > kind {
		return
	}
	g.cells[row][c] = cell{r: r, kind: kind}
}

func (g *grid) line(x1, y1, x2, y2 float64, r rune, kind cellKind) {
	x1, y1, x2, y2, ok := g.clip(x1*g.sx, y1*g.sy, x2*g.sx, y2*g.sy)
	if !ok {
		return
	}
	c1, r1 := int(math.Floor(x1)), int(math.Floor(y1))
	c2, r2 := int(math.Floor(x2)), int(math.Floor(y2))
	steps := max(abs(c2-c1), abs(r2-r1))
	if steps == 0 {
		g.set(c1, r1, r, kind)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c := c1 + int(math.Round(t*float64(c2-c1)))
		row := r1 + int(math.Round(t*float64(r2-r1)))
		g.set(c, row, r, kind)
	}
}

// clip cuts the segment, given in cell units, to the grid rectangle
// (Liang–Barsky). It reports false when no part of the segment is on the
// grid, so stepping cost is bounded by the grid size at any zoom.
func (g *grid) clip(x1, y1, x2, y2 float64) (float64, float64, float64, float64, bool) {
	dx, dy := x2-x1, y2-y1
	t0, t1 := 0.0, 1.0
	for _, b := range [4][2]float64{
		{-dx, x1},
		{dx, float64(g.cols) - x1},
		{-dy, y1},
		{dy, float64(g.rows) - y1},
	} {
		p, q := b[0], b[1]
		if math.IsNaN(p) || math.IsNaN(q) {
			return 0, 0, 0, 0, false
		}
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// RenderText draws the scene onto a cols×rows character grid. Each node is
// its label centred on the node's cell, or a dot in dot mode.
func RenderText(s render.Scene, cols, rows int, opts ...TextOption) (string, error) {
	var r textRenderer
	for _, opt := range opts {
		opt(&r)
	}
	if cols <= 0 || rows <= 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "text grid must have positive size, got %dx%d", cols, rows)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "scene must have positive size, got %gx%g", s.Width, s.Height)
	}

	g := newGrid(s, cols, rows)
	if !s.Empty() {
		if x, ok := s.Symmetry(); ok {
			g.line(x, 0, x, s.Height-1/g.sy, runeSymmetry, cellSymmetry)
		}
		for i, e := range s.Tree.Edges {
			if !s.EdgeVisible(e) {
				continue
			}
			x1, y1 := s.Screen(s.Tree.Node(e.From))
			x2, y2 := s.Screen(s.Tree.Node(e.To))
			kind := cellEdge
			if s.HoveredEdge(i) {
				kind = cellEdgeHover
			}
			g.line(x1, y1, x2, y2, runeEdge, kind)
		}
		for i := range s.Tree.Nodes {
			n := &s.Tree.Nodes[i]
			c, row := g.cellOf(s.Screen(n))
			kind := cellComposite
			if n.Prime {
				kind = cellPrime
			}
			if s.Hovered(n.ID) {
				kind = cellHover
			}
			label := []rune(s.Label(n))
			if len(label) == 0 {
				label = []rune{runeDot}
			}
			c -= (len(label) - 1) / 2
			for j, ch := range label {
				g.set(c+j, row, ch, kind)
			}
		}
	}

	styles := textStyles(s.Palette)
	var b strings.Builder
	for i, row := range g.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimRight(renderRow(row, styles, r.color), " "))
	}
	return b.String(), nil
}

func textStyles(p render.Palette) map[cellKind]lipgloss.Style {
	return map[cellKind]lipgloss.Style{
		cellSymmetry:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Symmetry)),
		cellEdge:      lipgloss.NewStyle().Faint(true),
		cellEdgeHover: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Highlight)),
		cellComposite: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Composite)),
		cellPrime:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Prime)),
		cellHover:     lipgloss.NewStyle().Reverse(true).Foreground(lipgloss.Color(p.Highlight)),
	}
}

// renderRow emits runs of equal kind so each run gets one escape sequence.
func renderRow(row []cell, styles map[cellKind]lipgloss.Style, color bool) string {
	var b strings.Builder
	for i := 0; i < len(row); {
		j := i
		var run strings.Builder
		for j < len(row) && row[j].kind == row[i].kind {
			run.WriteRune(row[j].r)
			j++
		}
		if st, ok := styles[row[i].kind]; ok && color {
			b.WriteString(st.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		i = j
	}
	return b.String()
}
