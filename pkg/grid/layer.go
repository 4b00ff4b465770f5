package grid

import (
	"fmt"
	"maps"
	"slices"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X int
	Y int
}

// String returns the cell as "x,y".
func (c Cell) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Shift returns the cell translated by (dx, dy).
func (c Cell) Shift(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// BoardIndex is the reserved group index that marks board membership.
const BoardIndex = -1

// Tag is the value attached to a painted cell. The board sentinel is
// [BoardTag]; group tags have a non-negative Index and an optional Color.
// An empty Color means the tag carries no color.
type Tag struct {
	Index int
	Color string
}

// BoardTag is the reserved tag painted on the board layer.
var BoardTag = Tag{Index: BoardIndex}

// GroupTag returns the tag for group index with the given color.
func GroupTag(index int, color string) Tag {
	return Tag{Index: index, Color: color}
}

// IsBoard reports whether t is the board sentinel.
func (t Tag) IsBoard() bool {
	return t.Index == BoardIndex
}

// Entry is a single (cell, tag) pair read from a [Layer].
type Entry[T any] struct {
	Cell Cell
	Tag  T
}

// Layer is a sparse mapping from [Cell] to a tag value. A layer holds at most
// one tag per cell; [Layer.Set] replaces any existing tag in place.
//
// The zero value is not usable; create layers with [NewLayer].
type Layer[T any] struct {
	cells map[Cell]T
}

// NewLayer creates an empty layer.
func NewLayer[T any]() *Layer[T] {
	return &Layer[T]{cells: make(map[Cell]T)}
}

// Get returns the tag at c and whether the cell is painted.
func (l *Layer[T]) Get(c Cell) (T, bool) {
	t, ok := l.cells[c]
	return t, ok
}

// Set paints c with t, overwriting any existing tag.
func (l *Layer[T]) Set(c Cell, t T) {
	l.cells[c] = t
}

// Remove clears c. Removing an unpainted cell is a no-op.
func (l *Layer[T]) Remove(c Cell) {
	delete(l.cells, c)
}

// Len returns the number of painted cells.
func (l *Layer[T]) Len() int {
	return len(l.cells)
}

// Reset clears every cell.
func (l *Layer[T]) Reset() {
	clear(l.cells)
}

// Entries returns all painted cells ordered by row, then column.
// The returned slice is a copy and may be modified freely.
func (l *Layer[T]) Entries() []Entry[T] {
	keys := slices.SortedFunc(maps.Keys(l.cells), compareCells)
	out := make([]Entry[T], len(keys))
	for i, c := range keys {
		out[i] = Entry[T]{Cell: c, Tag: l.cells[c]}
	}
	return out
}

// Clone returns an independent copy of the layer.
func (l *Layer[T]) Clone() *Layer[T] {
	return &Layer[T]{cells: maps.Clone(l.cells)}
}

func compareCells(a, b Cell) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}
