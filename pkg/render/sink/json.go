package sink

import (
	"encoding/json"

	"github.com/matzehuels/primetree/pkg/prime"
	"github.com/matzehuels/primetree/pkg/render"
	"github.com/matzehuels/primetree/pkg/view"
)

type jsonOutput struct {
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Start     int            `json:"start"`
	End       int            `json:"end"`
	Policy    string         `json:"policy"`
	Transform view.Transform `json:"transform"`
	Display   render.Display `json:"display"`
	Palette   render.Palette `json:"palette"`
	Symmetry  *float64       `json:"symmetry,omitempty"`
	Nodes     []jsonNode     `json:"nodes"`
	Edges     []jsonEdge     `json:"edges"`
}

type jsonNode struct {
	ID      int            `json:"id"`
	Value   int            `json:"value"`
	Prime   bool           `json:"prime"`
	Factors []prime.Factor `json:"factors"`
	Parent  int            `json:"parent"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	ScreenX float64        `json:"screen_x"`
	ScreenY float64        `json:"screen_y"`
	Label   string         `json:"label,omitempty"`
	Tooltip string         `json:"tooltip"`
}

type jsonEdge struct {
	From    int  `json:"from"`
	To      int  `json:"to"`
	Visible bool `json:"visible"`
	Prime   bool `json:"prime"`
}

// RenderJSON exports the scene with both model and screen coordinates.
func RenderJSON(s render.Scene) ([]byte, error) {
	out := jsonOutput{
		Width:     s.Width,
		Height:    s.Height,
		Transform: s.View,
		Display:   s.Display,
		Palette:   s.Palette,
		Nodes:     []jsonNode{},
		Edges:     []jsonEdge{},
	}
	if x, ok := s.Symmetry(); ok {
		out.Symmetry = &x
	}
	if !s.Empty() {
		out.Start, out.End, out.Policy = s.Tree.Start, s.Tree.End, s.Tree.Policy.String()
		for i := range s.Tree.Nodes {
			n := &s.Tree.Nodes[i]
			sx, sy := s.Screen(n)
			out.Nodes = append(out.Nodes, jsonNode{
				ID:      int(n.ID),
				Value:   n.Value,
				Prime:   n.Prime,
				Factors: n.Factors,
				Parent:  int(n.Parent),
				X:       n.X,
				Y:       n.Y,
				ScreenX: sx,
				ScreenY: sy,
				Label:   s.Label(n),
				Tooltip: prime.Format(n.Value, n.Factors),
			})
		}
		for _, e := range s.Tree.Edges {
			out.Edges = append(out.Edges, jsonEdge{
				From:    int(e.From),
				To:      int(e.To),
				Visible: s.EdgeVisible(e),
				Prime:   s.Tree.Node(e.From).Prime && s.Tree.Node(e.To).Prime,
			})
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
