// Package pipeline provides the build → layout → render pipeline for primetree.
//
// This package implements the complete pipeline used by the CLI render
// command and the HTTP server. Centralizing it keeps option defaults, cache
// keys and rendering identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Turn a range and root policy into a tree (cached as JSON)
//  2. Layout: Place the tree on the canvas and fit the view to it
//  3. Render: Generate output in various formats (SVG, PNG, JSON, DOT, text)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Start:   1,
//	    End:     100,
//	    Policy:  "odd",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/matzehuels/primetree/pkg/cache"
	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/layout"
	"github.com/matzehuels/primetree/pkg/render"
	"github.com/matzehuels/primetree/pkg/tree"
	"github.com/matzehuels/primetree/pkg/view"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultStart and DefaultEnd are the range shown when none is given.
	DefaultStart = 1
	DefaultEnd   = 10

	// DefaultPolicy is the default root policy name.
	DefaultPolicy = "zero"

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultTextCols and DefaultTextRows size the text output grid.
	DefaultTextCols = 120
	DefaultTextRows = 40
)

// Upper bounds on output size. Options past them are INVALID_INPUT.
const (
	// MaxCanvasSize bounds the canvas width and height in pixels.
	MaxCanvasSize = 16384.0
	// MaxScale bounds the PNG scale factor.
	MaxScale = 8.0
	// MaxPixels bounds width*height*scale², the PNG raster size.
	MaxPixels = 64 << 20
	// MaxTextCells bounds the text grid's columns and rows.
	MaxTextCells = 1000
)

// Format constants for output formats.
const (
	FormatSVG    = "svg"
	FormatPNG    = "png"
	FormatJSON   = "json"
	FormatDOT    = "dot"
	FormatDOTSVG = "dot-svg"
	FormatText   = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:    true,
	FormatPNG:    true,
	FormatJSON:   true,
	FormatDOT:    true,
	FormatDOTSVG: true,
	FormatText:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the render pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Tree options
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Policy   string `json:"policy,omitempty"`
	MaxNodes int    `json:"max_nodes,omitempty"`

	// Layout options
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	HMargin     float64 `json:"h_margin,omitempty"`
	VMargin     float64 `json:"v_margin,omitempty"`
	LeafSpacing float64 `json:"leaf_spacing,omitempty"`

	// View is a fixed transform. Nil means auto-fit.
	View *view.Transform `json:"view,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Nodes        string   `json:"nodes,omitempty"`
	Edges        string   `json:"edges,omitempty"`
	SymmetryLine bool     `json:"symmetry_line,omitempty"`
	NodeRadius   float64  `json:"node_radius,omitempty"`
	Scale        float64  `json:"scale,omitempty"`
	Tooltips     bool     `json:"tooltips,omitempty"`
	Detailed     bool     `json:"detailed,omitempty"` // factorization labels in DOT output
	Pinned       bool     `json:"pinned,omitempty"`   // keep engine positions in DOT output
	TextCols     int      `json:"text_cols,omitempty"`
	TextRows     int      `json:"text_rows,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	policy    tree.RootPolicy
	display   render.Display
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the laid-out tree.
	Tree *tree.Tree

	// TreeKey is the cache key of the tree, stable across runs.
	TreeKey string

	// Scene is what the artifacts show.
	Scene render.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	PrimeCount int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TreeHit   bool // Whether the laid-out tree came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, json, dot, dot-svg, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every option and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
// Range errors are left to the build stage so they carry the tree builder's codes.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Policy == "" {
		o.Policy = DefaultPolicy
	}
	p, err := tree.ParsePolicy(o.Policy)
	if err != nil {
		return err
	}
	o.policy = p
	o.Policy = p.String()

	lo := o.LayoutOptions()
	lo.SetDefaults()
	if err := lo.Validate(); err != nil {
		return err
	}
	o.Width, o.Height = lo.Width, lo.Height
	o.HMargin, o.VMargin, o.LeafSpacing = lo.HMargin, lo.VMargin, lo.LeafSpacing

	if o.View != nil && !o.View.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "view zoom must be positive and finite")
	}

	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	d := render.Display{SymmetryLine: o.SymmetryLine}
	if d.Nodes, err = render.ParseNodeMode(o.Nodes); err != nil {
		return err
	}
	if d.Edges, err = render.ParseEdgeMode(o.Edges); err != nil {
		return err
	}
	o.display = d
	o.Nodes, o.Edges = string(d.Nodes), string(d.Edges)

	if err := o.validateSize(); err != nil {
		return err
	}
	if o.NodeRadius < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "node radius must not be negative, got %g", o.NodeRadius)
	}
	o.validated = true
	return nil
}

// validateSize rejects outputs too large to render in memory.
func (o *Options) validateSize() error {
	if o.Width > MaxCanvasSize || o.Height > MaxCanvasSize {
		return errors.New(errors.ErrCodeInvalidInput,
			"canvas %gx%g exceeds the maximum of %gx%g", o.Width, o.Height, MaxCanvasSize, MaxCanvasSize)
	}
	if !(o.Scale > 0 && o.Scale <= MaxScale) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %g", MaxScale, o.Scale)
	}
	if px := o.Width * o.Height * o.Scale * o.Scale; px > MaxPixels {
		return errors.New(errors.ErrCodeInvalidInput,
			"PNG would have %.0f pixels, more than the maximum of %d", px, MaxPixels)
	}
	for name, n := range map[string]int{"text columns": o.TextCols, "text rows": o.TextRows} {
		if n < 1 || n > MaxTextCells {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be in [1, %d], got %d", name, MaxTextCells, n)
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Nodes == "" {
		o.Nodes = string(render.NodeValue)
	}
	if o.Edges == "" {
		o.Edges = string(render.EdgeLine)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.TextCols == 0 {
		o.TextCols = DefaultTextCols
	}
	if o.TextRows == 0 {
		o.TextRows = DefaultTextRows
	}
}

// RootPolicy returns the parsed policy. Valid after ValidateAndSetDefaults.
func (o *Options) RootPolicy() tree.RootPolicy { return o.policy }

// Display returns the parsed display options. Valid after ValidateAndSetDefaults.
func (o *Options) Display() render.Display { return o.display }

// LayoutOptions returns the canvas settings for the layout engine.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Width:       o.Width,
		Height:      o.Height,
		HMargin:     o.HMargin,
		VMargin:     o.VMargin,
		LeafSpacing: o.LeafSpacing,
	}
}

// TreeKeyOpts returns cache key options for the build and layout stages.
func (o *Options) TreeKeyOpts() cache.TreeKeyOpts {
	return cache.TreeKeyOpts{
		Start:       o.Start,
		End:         o.End,
		Policy:      o.Policy,
		MaxNodes:    o.MaxNodes,
		Width:       o.Width,
		Height:      o.Height,
		HMargin:     o.HMargin,
		VMargin:     o.VMargin,
		LeafSpacing: o.LeafSpacing,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// Only the options that affect that format are included.
func (o *Options) ArtifactKeyOpts(format string, v view.Transform) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:       format,
		Nodes:        o.Nodes,
		Edges:        o.Edges,
		SymmetryLine: o.SymmetryLine,
		Zoom:         v.Zoom,
		PanX:         v.PanX,
		PanY:         v.PanY,
		NodeRadius:   o.NodeRadius,
	}
	switch format {
	case FormatSVG:
		k.Tooltips = o.Tooltips
	case FormatPNG:
		k.Scale = o.Scale
	case FormatDOT, FormatDOTSVG:
		k.Detailed, k.Pinned = o.Detailed, o.Pinned
	case FormatText:
		k.TextCols, k.TextRows = o.TextCols, o.TextRows
	}
	return k
}
