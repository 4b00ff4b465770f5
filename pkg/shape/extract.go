package shape

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/matzehuels/boardcreator/pkg/errors"
	"github.com/matzehuels/boardcreator/pkg/grid"
)

// MaxSpan is the largest number of rows or columns an extracted matrix may
// have. Partitions spanning more cells are rejected with INVALID_INPUT.
const MaxSpan = 1024

// Position is the board anchor: the smallest painted x and y before
// normalization.
type Position struct {
	XIndex int `json:"xIndex"`
	YIndex int `json:"yIndex"`
}

// Board is the extracted board partition.
type Board struct {
	Position Position `json:"position"`
	Form     Matrix   `json:"form"`
}

// Group is an extracted tile group partition.
type Group struct {
	Form Matrix `json:"form"`
}

// Output is the complete shape file.
type Output struct {
	Board      Board   `json:"board"`
	TileGroups []Group `json:"tileGroups"`
}

// Extract computes the normalized shapes of the board layer and every group of
// the group layer. Groups are ordered by ascending index. With an empty board
// layer the board is reported at (0, 0) with an empty form.
//
// Either layer may be nil, which is treated as empty. Extract fails when a
// partition spans more than [MaxSpan] rows or columns.
func Extract(board, groups *grid.Layer[grid.Tag]) (Output, error) {
	out := Output{
		Board:      Board{Form: Matrix{}},
		TileGroups: []Group{},
	}

	if board != nil && board.Len() > 0 {
		entries := board.Entries()
		form, minX, minY, err := normalize(entries, func(grid.Tag) Mark { return Filled })
		if err != nil {
			return Output{}, fmt.Errorf("board: %w", err)
		}
		out.Board = Board{Position: Position{XIndex: minX, YIndex: minY}, Form: form}
	}

	if groups == nil {
		return out, nil
	}
	parts := partition(groups.Entries())
	for _, idx := range slices.Sorted(maps.Keys(parts)) {
		form, _, _, err := normalize(parts[idx], func(t grid.Tag) Mark { return Colored(t.Color) })
		if err != nil {
			return Output{}, fmt.Errorf("group %d: %w", idx, err)
		}
		out.TileGroups = append(out.TileGroups, Group{Form: form})
	}
	return out, nil
}

// partition splits entries by group index. Board sentinels that ended up in a
// group layer are dropped; the board is extracted from its own layer.
func partition(entries []grid.Entry[grid.Tag]) map[int][]grid.Entry[grid.Tag] {
	parts := make(map[int][]grid.Entry[grid.Tag])
	for _, e := range entries {
		if e.Tag.IsBoard() {
			continue
		}
		parts[e.Tag.Index] = append(parts[e.Tag.Index], e)
	}
	return parts
}

// normalize builds the dense matrix for one non-empty partition and returns
// it with the partition's minimum coordinates.
func normalize(entries []grid.Entry[grid.Tag], mark func(grid.Tag) Mark) (Matrix, int, int, error) {
	minX, minY := entries[0].Cell.X, entries[0].Cell.Y
	maxX, maxY := minX, minY
	for _, e := range entries[1:] {
		minX = min(minX, e.Cell.X)
		minY = min(minY, e.Cell.Y)
		maxX = max(maxX, e.Cell.X)
		maxY = max(maxY, e.Cell.Y)
	}

	cols, okX := span(minX, maxX)
	rows, okY := span(minY, maxY)
	if !okX || !okY {
		return nil, 0, 0, errors.New(errors.ErrCodeInvalidInput,
			"shape spans (%d,%d)..(%d,%d), more than %d rows or columns", minX, minY, maxX, maxY, MaxSpan)
	}

	form := make(Matrix, rows)
	for y := range form {
		form[y] = make([]Mark, cols)
	}
	for _, e := range entries {
		form[e.Cell.Y-minY][e.Cell.X-minX] = mark(e.Tag)
	}
	return form, minX, minY, nil
}

// span returns the number of positions in lo..hi and whether it is within
// MaxSpan. The unsigned difference is exact for any pair of ints.
func span(lo, hi int) (int, bool) {
	d := uint64(hi) - uint64(lo)
	if d >= MaxSpan {
		return 0, false
	}
	return int(d) + 1, true
}

// WriteJSON encodes out as indented JSON and writes it to w.
func WriteJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a shape file from r.
func ReadJSON(r io.Reader) (Output, error) {
	var out Output
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return Output{}, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}

// ExportJSON writes out to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(out Output, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(out, f)
}

// FileName returns the shape file name for a project name.
func FileName(name string) string {
	return name + ".json"
}
