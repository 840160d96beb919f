package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/primetree/pkg/errors"
	"github.com/matzehuels/primetree/pkg/pipeline"
)

// configFlags maps flag names onto the pipeline fields the config file also
// sets. Flags the user left alone take the config value.
var configFlags = map[string]func(dst *pipeline.Options, src pipeline.Options){
	"start":     func(d *pipeline.Options, s pipeline.Options) { d.Start = s.Start },
	"end":       func(d *pipeline.Options, s pipeline.Options) { d.End = s.End },
	"policy":    func(d *pipeline.Options, s pipeline.Options) { d.Policy = s.Policy },
	"max-nodes": func(d *pipeline.Options, s pipeline.Options) { d.MaxNodes = s.MaxNodes },
	"width":     func(d *pipeline.Options, s pipeline.Options) { d.Width = s.Width },
	"height":    func(d *pipeline.Options, s pipeline.Options) { d.Height = s.Height },
	"nodes":     func(d *pipeline.Options, s pipeline.Options) { d.Nodes = s.Nodes },
	"edges":     func(d *pipeline.Options, s pipeline.Options) { d.Edges = s.Edges },
	"symmetry":  func(d *pipeline.Options, s pipeline.Options) { d.SymmetryLine = s.SymmetryLine },
	"radius":    func(d *pipeline.Options, s pipeline.Options) { d.NodeRadius = s.NodeRadius },
}

// mergeUnchanged copies config values into opts for every config-backed
// flag the user did not set. Layout margins have no flags and always come
// from the config.
func mergeUnchanged(cmd *cobra.Command, opts *pipeline.Options, base pipeline.Options) {
	for name, apply := range configFlags {
		if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
			apply(opts, base)
		}
	}
	opts.HMargin, opts.VMargin, opts.LeafSpacing = base.HMargin, base.VMargin, base.LeafSpacing
}

// parseRangeArgs reads optional positional [start] [end] arguments.
func parseRangeArgs(args []string, start, end *int) error {
	dst := []*int{start, end}
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "range bound %q is not an integer", arg)
		}
		*dst[i] = n
	}
	return nil
}
