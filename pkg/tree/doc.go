// Package tree builds the binary tree that primetree draws from a
// contiguous range of integers.
//
// # Shape
//
// The root value comes from the requested start and a [RootPolicy]. Every
// following value up to the end of the range is attached, in ascending
// order, to the first node (in creation order) that still has fewer than
// two children. The result is a complete binary tree filled breadth-first:
//
//	Build(1, 10, Zero)
//
//	          1
//	       /     \
//	      2       3
//	     / \     / \
//	    4   5   6   7
//	   / \  |
//	  8  9  10
//
// # Storage
//
// Nodes live in an arena ([Tree.Nodes]) indexed by [NodeID]; parent and
// children are ids, not pointers. Node i holds the i-th value of the range,
// so insertion order is value order.
//
// # Values dropped by the root policy
//
// With [Odd] or [Even] the root may be start+1. The start value itself is
// then not part of the tree. This is intended.
package tree
