// Package sink writes a [render.Scene] in a concrete output format.
//
// All sinks map model coordinates through the scene's transform, so the
// output shows exactly what an interactive view with the same transform
// would show:
//
//   - [RenderSVG]: standalone SVG with hover tooltips
//   - [RenderPNG]: raster image drawn with fogleman/gg
//   - [RenderJSON]: scene export for other renderers
//   - [RenderText]: character grid for terminals
//
// [render.Scene]: github.com/matzehuels/primetree/pkg/render.Scene
package sink
