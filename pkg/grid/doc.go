// Package grid provides the sparse, layered cell model that boardcreator
// paints into, and the click-cycle state machine that mutates it.
//
// # Overview
//
// A board is hand-painted one cell at a time. Each painted cell carries a
// [Tag]: either the reserved [BoardTag] (the cell belongs to the board
// outline) or a group tag made of a group index and an optional color. A
// [Layer] maps [Cell] coordinates to tags, holding at most one tag per cell.
//
// Two independent layers make up a project: the board (base) layer, where
// every tag is [BoardTag], and the group layer, where tags carry the active
// group index and color. Painting one never affects the other; they are only
// composited for display and export.
//
// # Painting
//
// [Paint] applies the three-way click cycle to one cell:
//
//   - absent: the current tag is added
//   - present with a matching tag: the cell is cleared (toggle off)
//   - present with another tag: the cell is re-tagged in place
//
// Matching is decided by a [Matcher]. [SameTag] compares index and color;
// [SameIndex] compares the group index only, which reproduces the early
// single-color behaviour.
//
// A [Tool] carries the active mode, group index and color, and routes a click
// to the right layer via [Tool.Click].
//
// # Bounds
//
// Layers accept any coordinate. Board dimensions are cosmetic and never
// restrict painting.
//
// # Concurrency
//
// Layers are not safe for concurrent mutation. Callers that share a layer
// between goroutines must serialize access.
package grid
