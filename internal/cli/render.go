package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/pipeline"
	"github.com/matzehuels/primetree/pkg/view"
)

// renderFlags holds flags that do not map one-to-one onto pipeline.Options.
type renderFlags struct {
	formats string
	output  string
	noCache bool
	zoom    float64
	panX    float64
	panY    float64
}

// renderCommand creates the render command: range → tree → artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags renderFlags
		opts  pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [start] [end]",
		Short: "Render the tree of a range to SVG, PNG, JSON, DOT or text",
		Long: `Render the tree of a range to one or more files.

The tree is filled breadth-first: each integer after the root becomes a child
of the earliest node that has fewer than two children. The root is chosen by
--policy: zero keeps start, odd and even keep start when its parity matches
and use start+1 otherwise.

Positional start and end override --start/--end and the config file. With a
single format, --output names the file ("-" writes to stdout); with several it
is the base path and each format gets its extension.

Results are cached (see 'primetree cache').`,
		Example: `  primetree render 1 100
  primetree render 2 64 --policy even -f svg,png -o tree
  primetree render 1 30 -f txt -o -`,
		Args: cobra.MaximumNArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.applyRangeArgs(cmd, args, &opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(flags.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if cmd.Flags().Changed("zoom") {
				opts.View = &view.Transform{Zoom: flags.zoom, PanX: flags.panX, PanY: flags.panY}
			}
			return c.runRender(cmd.Context(), opts, flags)
		},
	}

	// Seeded from the config in PreRunE; flags registered here only document defaults.
	d := DefaultConfig().PipelineOptions()
	f := cmd.Flags()
	f.IntVar(&opts.Start, "start", d.Start, "first value of the range")
	f.IntVar(&opts.End, "end", d.End, "last value of the range")
	f.StringVarP(&opts.Policy, "policy", "p", d.Policy, "root policy: zero, odd, even")
	f.IntVar(&opts.MaxNodes, "max-nodes", d.MaxNodes, "refuse ranges with more nodes than this")
	f.Float64Var(&opts.Width, "width", d.Width, "canvas width")
	f.Float64Var(&opts.Height, "height", d.Height, "canvas height")
	f.StringVar(&opts.Nodes, "nodes", d.Nodes, "node labels: value, factors, dot")
	f.StringVar(&opts.Edges, "edges", d.Edges, "edges: line, hidden, prime")
	f.BoolVar(&opts.SymmetryLine, "symmetry", d.SymmetryLine, "draw the line of symmetry through the root")
	f.Float64Var(&opts.NodeRadius, "radius", d.NodeRadius, "node radius in pixels (0 for default)")
	f.BoolVar(&opts.Tooltips, "tooltips", true, "embed hover tooltips in SVG output")
	f.Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	f.BoolVar(&opts.Detailed, "detailed", false, "factorization labels in DOT output")
	f.BoolVar(&opts.Pinned, "pinned", false, "keep layout positions in DOT output")
	f.IntVar(&opts.TextCols, "cols", pipeline.DefaultTextCols, "text output width in characters")
	f.IntVar(&opts.TextRows, "rows", pipeline.DefaultTextRows, "text output height in lines")
	f.Float64Var(&flags.zoom, "zoom", 1, "fixed zoom instead of fitting the tree")
	f.Float64Var(&flags.panX, "pan-x", 0, "horizontal pan with --zoom")
	f.Float64Var(&flags.panY, "pan-y", 0, "vertical pan with --zoom")
	f.StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, json, dot, dot-svg, txt (comma-separated)")
	f.StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	f.BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&opts.Refresh, "refresh", false, "ignore cached results and recompute")
	registerValueCompletions(cmd)

	return cmd
}

// applyRangeArgs layers config, then flags, then positional arguments onto
// opts.
func (c *CLI) applyRangeArgs(cmd *cobra.Command, args []string, opts *pipeline.Options) error {
	base := c.Config.PipelineOptions()
	mergeUnchanged(cmd, opts, base)
	return parseRangeArgs(args, &opts.Start, &opts.End)
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, flags renderFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d..%d...", opts.Start, opts.End))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.Stop()
		if spinner.Cancelled() {
			printInfo("Render cancelled")
			return ctx.Err()
		}
		printError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d..%d", opts.Start, opts.End))

	return writeArtifacts(artifactWriteParams{
		stdout:    os.Stdout,
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		output:    flags.output,
		fallback:  fmt.Sprintf("%s-%d-%d", appName, opts.Start, opts.End),
		stats:     result.Stats,
		cacheHit:  result.CacheInfo.TreeHit && result.CacheInfo.RenderHit,
	})
}

// artifactWriteParams describes one batch of rendered artifacts.
type artifactWriteParams struct {
	stdout    io.Writer
	artifacts map[string][]byte
	formats   []string
	output    string // file, base path, "-" for stdout, or empty
	fallback  string // base path when output is empty
	stats     pipeline.Stats
	cacheHit  bool
}

// writeArtifacts writes artifacts in format order and reports the files.
func writeArtifacts(p artifactWriteParams) error {
	if p.output == "-" {
		if len(p.formats) != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format, got %d", len(p.formats))
		}
		_, err := p.stdout.Write(p.artifacts[p.formats[0]])
		return err
	}

	var paths []string
	for _, format := range p.formats {
		path := outputPath(p.output, p.fallback, format, len(p.formats) == 1)
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.stats.NodeCount, p.stats.EdgeCount, p.stats.PrimeCount, p.cacheHit)
	return nil
}

// outputPath picks the file for one format. A single format writes exactly
// to output when given; otherwise known format extensions are stripped and
// the format's own is appended.
func outputPath(output, fallback, format string, single bool) string {
	if output == "" {
		return fallback + "." + extension(format)
	}
	if single {
		return output
	}
	return basePath(output) + "." + extension(format)
}

// basePath strips a known format extension from path.
func basePath(path string) string {
	ext := filepath.Ext(path)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(path, ext)
	}
	return path
}

func extension(format string) string {
	if format == pipeline.FormatDOTSVG {
		return "dot.svg"
	}
	return format
}

func writeFile(path string, data []byte) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
