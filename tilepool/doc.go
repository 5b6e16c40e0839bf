// Package tilepool implements the tiled binning stage: partitioning a
// color target into a grid of tiles, assigning each triangle to every tile
// its screen-space bounding box overlaps, and a worker pool that dispatches
// one task per non-empty tile across goroutines.
package tilepool
