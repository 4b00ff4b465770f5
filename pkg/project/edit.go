package project

import (
	"context"

	"github.com/matzehuels/boardcreator/pkg/errors"
	"github.com/matzehuels/boardcreator/pkg/grid"
	"github.com/matzehuels/boardcreator/pkg/observability"
)

// SetBoard replaces the board configuration.
func (s *Store) SetBoard(ctx context.Context, b BoardConfig) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := s.put(ctx, KeyBoard, b); err != nil {
		return err
	}
	s.board = b
	return nil
}

// SetFileName renames the project. An empty name is allowed but disables
// shape export.
func (s *Store) SetFileName(ctx context.Context, name string) error {
	if name != "" {
		if err := errors.ValidateFileName(name); err != nil {
			return err
		}
	}
	if err := s.put(ctx, KeyFileName, name); err != nil {
		return err
	}
	s.fileName = name
	return nil
}

// Click paints cell c with tool t and persists the layer it changed.
// A tool without its own matcher uses the store's.
func (s *Store) Click(ctx context.Context, t *grid.Tool, c grid.Cell) (grid.Result, error) {
	tool := *t
	if tool.Match == nil {
		tool.Match = s.match
	}
	res := tool.Click(s.layers, c)
	observability.Project().OnPaint(ctx, tool.Mode.String(), c.X, c.Y, res.String())

	var err error
	if tool.Mode == grid.ModeBoard {
		err = s.put(ctx, KeyBoardTiles, tilesOf(s.layers.Board))
	} else {
		err = s.put(ctx, KeyColorTiles, tilesOf(s.layers.Groups))
	}
	if err != nil {
		return res, err
	}
	s.logger.Debug("painted", "mode", tool.Mode, "cell", c, "result", res)
	return res, nil
}

// PaintBoard toggles cell c on the board layer.
func (s *Store) PaintBoard(ctx context.Context, c grid.Cell) (grid.Result, error) {
	return s.Click(ctx, &grid.Tool{Mode: grid.ModeBoard}, c)
}

// PaintGroup paints cell c on the group layer with the given group tag.
func (s *Store) PaintGroup(ctx context.Context, c grid.Cell, index int, color string) (grid.Result, error) {
	if index < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "group index must not be negative, got %d", index)
	}
	return s.Click(ctx, &grid.Tool{Mode: grid.ModeColour, Index: index, Color: color}, c)
}

// AddColor appends color to the palette. It reports whether the palette
// changed.
func (s *Store) AddColor(ctx context.Context, color string) (bool, error) {
	if color == "" {
		return false, errors.New(errors.ErrCodeInvalidInput, "color cannot be empty")
	}
	if !s.palette.Add(color) {
		return false, nil
	}
	return true, s.savePalette(ctx)
}

// RemoveColor removes color from the palette. It reports whether the
// palette changed.
func (s *Store) RemoveColor(ctx context.Context, color string) (bool, error) {
	if !s.palette.Remove(color) {
		return false, nil
	}
	return true, s.savePalette(ctx)
}

// ReplacePalette replaces every palette color, dropping duplicates.
func (s *Store) ReplacePalette(ctx context.Context, colors []string) error {
	s.palette.ReplaceAll(colors)
	return s.savePalette(ctx)
}

func (s *Store) savePalette(ctx context.Context) error {
	colors := s.palette.List()
	if colors == nil {
		colors = []string{}
	}
	return s.put(ctx, KeyColorBox, colors)
}
