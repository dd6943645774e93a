// Package sampler turns SVG artwork into a [grid.Grid].
//
// The source is rasterized with oksvg onto a white backdrop, stretched to
// exactly cols x rows pixels where rows follows the artwork's own aspect
// ratio, so each cell covers the same proportion of the source as the
// output will. No letterboxing is applied.
package sampler
