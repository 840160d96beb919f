package server

import (
	"net/url"
	"strconv"

	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/pipeline"
	"github.com/matzehuels/primetree/pkg/tree"
	"github.com/matzehuels/primetree/pkg/view"
)

// ParseOptions overlays the query parameters of a request on defaults.
// max_nodes may lower the node cap of defaults but never raise it.
//
// Recognised parameters: start, end, policy, max_nodes, width, height,
// nodes, edges, symmetry, radius, scale, tooltips, detailed, pinned, cols,
// rows, refresh, and zoom/pan_x/pan_y for a fixed view (auto-fit when zoom
// is absent). Malformed numbers are INVALID_INPUT.
func ParseOptions(q url.Values, defaults pipeline.Options) (pipeline.Options, error) {
	opts := defaults
	opts.Formats = nil
	p := queryParser{q: q}

	p.int("start", &opts.Start)
	p.int("end", &opts.End)
	p.string("policy", &opts.Policy)
	p.int("max_nodes", &opts.MaxNodes)
	p.float("width", &opts.Width)
	p.float("height", &opts.Height)
	p.string("nodes", &opts.Nodes)
	p.string("edges", &opts.Edges)
	p.bool("symmetry", &opts.SymmetryLine)
	p.float("radius", &opts.NodeRadius)
	p.float("scale", &opts.Scale)
	p.bool("tooltips", &opts.Tooltips)
	p.bool("detailed", &opts.Detailed)
	p.bool("pinned", &opts.Pinned)
	p.int("cols", &opts.TextCols)
	p.int("rows", &opts.TextRows)
	p.bool("refresh", &opts.Refresh)

	if q.Has("zoom") {
		v := view.Identity()
		p.float("zoom", &v.Zoom)
		p.float("pan_x", &v.PanX)
		p.float("pan_y", &v.PanY)
		opts.View = &v
	} else if q.Has("pan_x") || q.Has("pan_y") {
		p.fail("pan_x", "pan requires zoom")
	}

	if p.err != nil {
		return pipeline.Options{}, p.err
	}
	opts.MaxNodes = clampNodes(opts.MaxNodes, defaults.MaxNodes)
	return opts, nil
}

// clampNodes returns the requested cap, bounded by the server's cap. A
// non-positive request means the server's cap.
func clampNodes(requested, limit int) int {
	if limit <= 0 {
		limit = tree.DefaultMaxNodes
	}
	if requested <= 0 || requested > limit {
		return limit
	}
	return requested
}

// parsePoint reads the required screen coordinates of a hit query.
func parsePoint(q url.Values) (float64, float64, error) {
	p := queryParser{q: q}
	for _, name := range []string{"x", "y"} {
		if !q.Has(name) {
			p.fail(name, "missing")
		}
	}
	var x, y float64
	p.float("x", &x)
	p.float("y", &y)
	return x, y, p.err
}

// queryParser keeps the first error so callers can parse a batch of
// parameters and check once.
type queryParser struct {
	q   url.Values
	err error
}

func (p *queryParser) fail(name, reason string) {
	if p.err == nil {
		p.err = errors.New(errors.ErrCodeInvalidInput, "query parameter %q: %s", name, reason)
	}
}

func (p *queryParser) string(name string, dst *string) {
	if v := p.q.Get(name); v != "" {
		*dst = v
	}
}

func (p *queryParser) int(name string, dst *int) {
	v := p.q.Get(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(name, "not an integer: "+strconv.Quote(v))
		return
	}
	*dst = n
}

func (p *queryParser) float(name string, dst *float64) {
	v := p.q.Get(name)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(name, "not a number: "+strconv.Quote(v))
		return
	}
	*dst = f
}

func (p *queryParser) bool(name string, dst *bool) {
	v := p.q.Get(name)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(name, "not a boolean: "+strconv.Quote(v))
		return
	}
	*dst = b
}
