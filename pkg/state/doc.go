// Package state holds the mutable graph state behind an interactive view
// and the command handlers that change it.
//
// A [Graph] is owned by a single host event loop. Handlers never draw:
// they update the state and raise two flags. graphDirty means geometry
// must be recomputed (layout, and auto-fit unless the user has taken
// manual control of the view); needsRedraw means a frame is due. The host
// calls [Graph.Frame] once per tick, which folds any number of handler
// calls since the last tick into one recompute and at most one [render.Scene].
//
// A failed rebuild, such as start greater than end, records the error and
// keeps the last valid tree on screen. The requested inputs are kept, so a
// later handler can complete a valid range.
//
// Graph is not safe for concurrent use.
package state
