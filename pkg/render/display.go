package render

import (
	"strings"

	"github.com/matzehuels/primetree/pkg/errors"
)

// NodeMode selects how nodes are labelled.
type NodeMode string

const (
	NodeValue   NodeMode = "value"
	NodeFactors NodeMode = "factors"
	NodeDot     NodeMode = "dot"
)

// EdgeMode selects which edges are drawn.
type EdgeMode string

const (
	EdgeLine   EdgeMode = "line"
	EdgeHidden EdgeMode = "hidden"
	EdgePrime  EdgeMode = "prime"
)

// NodeModes and EdgeModes list the accepted names, for flag help text.
var (
	NodeModes = []NodeMode{NodeValue, NodeFactors, NodeDot}
	EdgeModes = []EdgeMode{EdgeLine, EdgeHidden, EdgePrime}
)

// Display holds the user-facing drawing toggles.
type Display struct {
	Nodes        NodeMode `json:"nodes" toml:"nodes"`
	Edges        EdgeMode `json:"edges" toml:"edges"`
	SymmetryLine bool     `json:"symmetry_line" toml:"symmetry_line"`
}

// DefaultDisplay labels nodes by value and draws every edge.
func DefaultDisplay() Display {
	return Display{Nodes: NodeValue, Edges: EdgeLine}
}

// SetDefaults fills empty modes.
func (d *Display) SetDefaults() {
	if d.Nodes == "" {
		d.Nodes = NodeValue
	}
	if d.Edges == "" {
		d.Edges = EdgeLine
	}
}

// Validate rejects unknown modes.
func (d Display) Validate() error {
	if _, err := ParseNodeMode(string(d.Nodes)); err != nil {
		return err
	}
	_, err := ParseEdgeMode(string(d.Edges))
	return err
}

// ParseNodeMode parses a node mode name, ignoring case.
func ParseNodeMode(s string) (NodeMode, error) {
	m := NodeMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case NodeValue, NodeFactors, NodeDot:
		return m, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown node display %q (want value, factors or dot)", s)
}

// ParseEdgeMode parses an edge mode name, ignoring case.
func ParseEdgeMode(s string) (EdgeMode, error) {
	m := EdgeMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case EdgeLine, EdgeHidden, EdgePrime:
		return m, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown edge display %q (want line, hidden or prime)", s)
}
