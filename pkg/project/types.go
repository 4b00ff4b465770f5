package project

import (
	"github.com/matzehuels/boardcreator/pkg/errors"
	"github.com/matzehuels/boardcreator/pkg/grid"
)

// Storage keys.
const (
	KeyBoard      = "BOARD"
	KeyFileName   = "FILE_NAME"
	KeyBoardTiles = "BOARD_TILES"
	KeyColorTiles = "COLOR_TILES"
	KeyColorBox   = "COLOR_BOX"
)

// Keys lists every key a project persists.
var Keys = []string{KeyBoard, KeyFileName, KeyBoardTiles, KeyColorTiles, KeyColorBox}

// FileExt is the extension of exported project files.
const FileExt = ".boardcreator"

// BoardConfig describes the visible board area. It does not restrict which
// cells can be painted.
type BoardConfig struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	TileSize int `json:"tileSize"`
}

// Validate checks that every dimension is positive.
func (b BoardConfig) Validate() error {
	return errors.ValidateBoard(b.Width, b.Height, b.TileSize)
}

// Tile is the persisted form of one painted cell.
type Tile struct {
	Index int    `json:"index"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color,omitempty"`
}

// Cell returns the tile's grid cell.
func (t Tile) Cell() grid.Cell {
	return grid.Cell{X: t.X, Y: t.Y}
}

// Defaults are the values used for keys that are missing or corrupt.
type Defaults struct {
	Board    BoardConfig
	FileName string
	Palette  []string
}

// DefaultDefaults returns the built-in defaults: a 30x20 board of 24px tiles
// named Level0 with an empty palette.
func DefaultDefaults() Defaults {
	return Defaults{
		Board:    BoardConfig{Width: 30, Height: 20, TileSize: 24},
		FileName: "Level0",
	}
}

// tilesOf converts a layer to its persisted form, ordered by row then column.
func tilesOf(l *grid.Layer[grid.Tag]) []Tile {
	entries := l.Entries()
	tiles := make([]Tile, len(entries))
	for i, e := range entries {
		tiles[i] = Tile{Index: e.Tag.Index, X: e.Cell.X, Y: e.Cell.Y, Color: e.Tag.Color}
	}
	return tiles
}

// boardLayer builds the board layer. Stored indexes are ignored; every board
// tile carries the board tag.
func boardLayer(tiles []Tile) *grid.Layer[grid.Tag] {
	l := grid.NewLayer[grid.Tag]()
	for _, t := range tiles {
		l.Set(t.Cell(), grid.BoardTag)
	}
	return l
}

func groupLayer(tiles []Tile) *grid.Layer[grid.Tag] {
	l := grid.NewLayer[grid.Tag]()
	for _, t := range tiles {
		l.Set(t.Cell(), grid.GroupTag(t.Index, t.Color))
	}
	return l
}
