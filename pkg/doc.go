// Package pkg holds the libraries behind primetree.
//
// # Overview
//
// Primetree fills a binary tree breadth-first with the integers of a range
// and draws it. Each integer after the root is attached to the earliest node
// with fewer than two children. The libraries follow the data flow:
//
//	range + root policy
//	      ↓
//	  [tree] builds the binary tree, [prime] classifies nodes
//	      ↓
//	  [layout] places nodes top-down
//	      ↓
//	  [view] fits or transforms the canvas, [render] builds a scene
//	      ↓
//	  [render/sink] SVG, PNG, JSON, text; [render/nodelink] DOT
//
// [pipeline] runs these steps behind a [cache]. [state] keeps an interactive
// graph (range, policy, view, hover) for hosts like the terminal explorer,
// and [hit] answers what lies under a canvas point.
//
// Supporting packages:
//
//   - [errors] - coded errors shared by every layer
//   - [observability] - hooks for pipeline and HTTP events
//   - [buildinfo] - version information
package pkg
