package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/pipeline"
	"github.com/matzehuels/primetree/pkg/render"
	"github.com/matzehuels/primetree/pkg/render/sink"
	"github.com/matzehuels/primetree/pkg/state"
)

const (
	// cellWidth and cellHeight are the canvas pixels one terminal cell
	// stands for. Cells are about twice as tall as wide.
	cellWidth  = 8.0
	cellHeight = 16.0

	frameInterval   = time.Second / 30
	recenterSeconds = 0.4
	// panStep is the share of the canvas one arrow key press pans.
	panStep = 0.1
	// statusLines are reserved below the tree.
	statusLines = 2
)

var (
	statusStyle  = lipgloss.NewStyle().Foreground(colorGray)
	tooltipStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// exploreCommand creates the interactive terminal explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		opts    pipeline.Options
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "explore [start] [end]",
		Short: "Explore the tree of a range interactively in the terminal",
		Long: `Explore the tree of a range interactively in the terminal.

Keys:
  + / -          zoom in / out about the centre
  arrows, hjkl   pan
  s / S          double / halve start
  e / E          double / halve end
  p              cycle root policy
  n              cycle node labels (value, factors, dot)
  d              cycle edges (line, hidden, prime)
  y              toggle the line of symmetry
  c              recenter
  q              quit

The mouse wheel zooms about the cursor, dragging pans, and hovering shows the
factorization of a node or the endpoints of an edge.`,
		Args: cobra.MaximumNArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.applyRangeArgs(cmd, args, &opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := stateConfig(opts)
			if err != nil {
				return err
			}
			g, err := state.New(cfg)
			if err != nil {
				return err
			}
			m := newExploreModel(g, !noColor)
			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
			)
			_, err = p.Run()
			return err
		},
	}

	d := DefaultConfig().PipelineOptions()
	f := cmd.Flags()
	f.IntVar(&opts.Start, "start", d.Start, "first value of the range")
	f.IntVar(&opts.End, "end", d.End, "last value of the range")
	f.StringVarP(&opts.Policy, "policy", "p", d.Policy, "root policy: zero, odd, even")
	f.IntVar(&opts.MaxNodes, "max-nodes", d.MaxNodes, "refuse ranges with more nodes than this")
	f.StringVar(&opts.Nodes, "nodes", d.Nodes, "node labels: value, factors, dot")
	f.StringVar(&opts.Edges, "edges", d.Edges, "edges: line, hidden, prime")
	f.BoolVar(&opts.SymmetryLine, "symmetry", d.SymmetryLine, "draw the line of symmetry through the root")
	f.BoolVar(&noColor, "no-color", false, "disable colours")
	registerValueCompletions(cmd)

	return cmd
}

// stateConfig validates opts and turns them into the seed of an
// interactive graph.
func stateConfig(opts pipeline.Options) (state.Config, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return state.Config{}, err
	}
	return state.Config{
		Start:      opts.Start,
		End:        opts.End,
		Policy:     opts.RootPolicy(),
		Width:      opts.Width,
		Height:     opts.Height,
		Layout:     opts.LayoutOptions(),
		MaxNodes:   opts.MaxNodes,
		Display:    opts.Display(),
		NodeRadius: opts.NodeRadius,
	}, nil
}

// =============================================================================
// exploreModel - bubbletea host for a state.Graph
// =============================================================================

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// exploreModel translates terminal events into graph commands and redraws
// the text canvas when the graph asks for it.
type exploreModel struct {
	g          *state.Graph
	cols, rows int
	color      bool
	frame      string
	err        error
	last       time.Time
}

func newExploreModel(g *state.Graph, color bool) exploreModel {
	return exploreModel{g: g, color: color}
}

func (m exploreModel) Init() tea.Cmd {
	return tick()
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height-statusLines
		if m.rows < 1 {
			m.rows = 1
		}
		m.err = m.g.Resize(float64(m.cols)*cellWidth, float64(m.rows)*cellHeight)
		m.redraw()
	case tea.KeyMsg:
		if quit := m.key(msg.String()); quit {
			return m, tea.Quit
		}
		m.redraw()
	case tea.MouseMsg:
		m.mouse(msg)
		m.redraw()
	case tickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			m.g.Tick(float32(now.Sub(m.last).Seconds()))
		}
		m.last = now
		m.redraw()
		return m, tick()
	}
	return m, nil
}

// key runs the command bound to k and reports whether to quit.
func (m *exploreModel) key(k string) bool {
	w, h := m.g.Canvas()
	m.err = nil
	switch k {
	case "q", "ctrl+c", "esc":
		return true
	case "+", "=":
		m.g.ZoomIn()
	case "-", "_":
		m.g.ZoomOut()
	case "left", "h":
		m.g.PanBy(w*panStep, 0)
	case "right", "l":
		m.g.PanBy(-w*panStep, 0)
	case "up", "k":
		m.g.PanBy(0, h*panStep)
	case "down", "j":
		m.g.PanBy(0, -h*panStep)
	case "s":
		m.err = m.g.DoubleStart()
	case "S":
		m.err = m.g.HalveStart()
	case "e":
		m.err = m.g.DoubleEnd()
	case "E":
		m.err = m.g.HalveEnd()
	case "p":
		m.err = m.g.CyclePolicy()
	case "n":
		m.err = m.g.SetNodeDisplay(nextNodeMode(m.g.Display().Nodes))
	case "d":
		m.err = m.g.SetEdgeDisplay(nextEdgeMode(m.g.Display().Edges))
	case "y":
		m.g.SetSymmetryLine(!m.g.Display().SymmetryLine)
	case "c", "0":
		m.g.RecenterAnimated(recenterSeconds)
	}
	return false
}

func (m *exploreModel) mouse(msg tea.MouseMsg) {
	sx, sy, ok := m.toCanvas(msg.X, msg.Y)
	if !ok {
		if msg.Action == tea.MouseActionRelease {
			m.g.PointerUp()
		}
		return
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.g.Wheel(sx, sy, -1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.g.Wheel(sx, sy, 1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.g.PointerDown(sx, sy)
	case msg.Action == tea.MouseActionRelease:
		m.g.PointerUp()
	case msg.Action == tea.MouseActionMotion:
		if m.g.Dragging() {
			m.g.PointerMove(sx, sy)
		} else {
			m.g.Hover(sx, sy)
		}
	}
}

// toCanvas maps a terminal cell to the canvas point at its centre.
func (m *exploreModel) toCanvas(x, y int) (float64, float64, bool) {
	if m.cols == 0 || y >= m.rows {
		return 0, 0, false
	}
	return (float64(x) + 0.5) * cellWidth, (float64(y) + 0.5) * cellHeight, true
}

func (m *exploreModel) redraw() {
	if m.cols == 0 {
		return
	}
	scene, changed := m.g.Frame()
	if !changed {
		return
	}
	var opts []sink.TextOption
	if m.color {
		opts = append(opts, sink.WithColor())
	}
	frame, err := sink.RenderText(scene, m.cols, m.rows, opts...)
	if err != nil {
		m.err = err
		return
	}
	m.frame = frame
}

func (m exploreModel) View() string {
	if m.cols == 0 {
		return "loading..."
	}
	var b strings.Builder
	b.WriteString(m.frame)
	for i := strings.Count(m.frame, "\n") + 1; i < m.rows; i++ {
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(m.messageLine())
	return b.String()
}

func (m exploreModel) statusLine() string {
	t := m.g.Transform()
	d := m.g.Display()
	view := "auto"
	if m.g.Manual() {
		view = "manual"
	}
	return statusStyle.Render(fmt.Sprintf("%d..%d · %s · %d nodes · zoom %.2f (%s) · nodes %s · edges %s",
		m.g.Start(), m.g.End(), m.g.Policy(), m.g.Tree().Len(), t.Zoom, view, d.Nodes, d.Edges))
}

func (m exploreModel) messageLine() string {
	if err := m.err; err != nil {
		return errorStyle.Render(iconError + " " + errors.UserMessage(err))
	}
	if err := m.g.Err(); err != nil {
		return errorStyle.Render(iconError + " " + errors.UserMessage(err) + " (showing last valid tree)")
	}
	if tip := m.g.Tooltip(); tip != "" {
		return tooltipStyle.Render(tip)
	}
	return StyleDim.Render("q quit · +/- zoom · arrows pan · s/S e/E range · p policy · c recenter")
}

func nextNodeMode(cur render.NodeMode) render.NodeMode {
	for i, mode := range render.NodeModes {
		if mode == cur {
			return render.NodeModes[(i+1)%len(render.NodeModes)]
		}
	}
	return render.NodeValue
}

func nextEdgeMode(cur render.EdgeMode) render.EdgeMode {
	for i, mode := range render.EdgeModes {
		if mode == cur {
			return render.EdgeModes[(i+1)%len(render.EdgeModes)]
		}
	}
	return render.EdgeLine
}
