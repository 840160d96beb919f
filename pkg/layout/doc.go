// Package layout assigns model-space coordinates to the nodes of a
// [tree.Tree].
//
// The layout runs in four steps:
//
//  1. Depth: height of the tree, 1 for a single node.
//  2. Vertical: each level gets an evenly spaced row between the top and
//     bottom margins.
//  3. Horizontal: a post-order walk gives every leaf the next slot of a
//     running cursor (LeafSpacing apart) and centres each parent between
//     its first and last child.
//  4. Rescale: x is stretched linearly so the tree spans the full width
//     between the horizontal margins.
//
// [Apply] runs all four steps; [Place] and [Rescale] are exposed so the
// pre-rescale geometry can be inspected. The layout is a pure function of
// the tree shape and the canvas size.
package layout
