// Package render turns a laid-out prime tree into drawable output.
//
// # Overview
//
// A [Scene] is an immutable snapshot of everything a drawing surface needs:
// the tree with model coordinates, the current [view.Transform], the canvas
// size, display options and the [Palette]. Sinks map model coordinates to
// screen coordinates themselves using the transform, exactly as the hit
// tester does, so what is drawn and what is hovered always agree.
//
// Output formats live in subpackages:
//   - [sink]: SVG, PNG, JSON and terminal text
//   - [nodelink]: Graphviz DOT export and Graphviz-rendered SVG
//
// # Display Options
//
// Nodes are labelled by value, by factorization or drawn as bare dots.
// Edges are drawn as lines, hidden, or drawn only between two primes.
// The optional line of symmetry is a vertical line through the root.
//
// [sink]: github.com/matzehuels/primetree/pkg/render/sink
// [nodelink]: github.com/matzehuels/primetree/pkg/render/nodelink
package render
