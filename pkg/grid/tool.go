package grid

import (
	"slices"

	"github.com/matzehuels/boardcreator/pkg/errors"
)

// Mode selects which layer a click paints.
type Mode int

const (
	// ModeBoard paints the board layer with [BoardTag].
	ModeBoard Mode = iota
	// ModeColour paints the group layer with the tool's group tag.
	ModeColour
)

// Modes lists every supported tool mode in display order.
var Modes = []Mode{ModeBoard, ModeColour}

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBoard:
		return "Board"
	case ModeColour:
		return "Colour"
	}
	return "Unknown"
}

// ParseMode parses a mode name as produced by [Mode.String].
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown tile type %q (must be Board or Colour)", s)
}

// DefaultColor is the group color a new tool starts with.
const DefaultColor = "#ffff00"

// Layers is the pair of independent layers a [Tool] paints into.
type Layers struct {
	Board  *Layer[Tag]
	Groups *Layer[Tag]
}

// NewLayers creates an empty board and group layer pair.
func NewLayers() Layers {
	return Layers{Board: NewLayer[Tag](), Groups: NewLayer[Tag]()}
}

// Tool holds the active painting context: which layer a click targets and,
// for group painting, which tag is applied.
type Tool struct {
	Mode  Mode
	Index int
	Color string

	// Match decides toggle-off for group painting. Nil means [SameTag].
	Match Matcher[Tag]
}

// NewTool returns a tool in board mode on group 0 with [DefaultColor].
func NewTool() *Tool {
	return &Tool{Mode: ModeBoard, Color: DefaultColor}
}

// Current returns the tag a click would paint in the current mode.
func (t *Tool) Current() Tag {
	if t.Mode == ModeBoard {
		return BoardTag
	}
	return GroupTag(t.Index, t.Color)
}

// Click paints cell c on the layer selected by the tool's mode.
//
// An unrecognized mode is a programming error: Click panics with an
// [errors.ErrCodeUnhandledTagMode] error.
func (t *Tool) Click(ls Layers, c Cell) Result {
	switch t.Mode {
	case ModeBoard:
		return Paint(ls.Board, c, BoardTag, SameTag)
	case ModeColour:
		match := t.Match
		if match == nil {
			match = SameTag
		}
		return Paint(ls.Groups, c, t.Current(), match)
	default:
		panic(errors.New(errors.ErrCodeUnhandledTagMode, "unhandled tile type: %d", int(t.Mode)))
	}
}

// NextGroup advances to the next group index. If the group layer already has
// a colored tile in that group, the tool adopts its color.
func (t *Tool) NextGroup(groups *Layer[Tag]) {
	t.selectGroup(groups, t.Index+1)
}

// PrevGroup moves to the previous group index, never below zero. Color
// adoption follows [Tool.NextGroup].
func (t *Tool) PrevGroup(groups *Layer[Tag]) {
	if t.Index > 0 {
		t.selectGroup(groups, t.Index-1)
	}
}

func (t *Tool) selectGroup(groups *Layer[Tag], index int) {
	t.Index = index
	for _, e := range groups.Entries() {
		if e.Tag.Index == index && e.Tag.Color != "" {
			t.Color = e.Tag.Color
			return
		}
	}
}

// GroupColors returns the distinct colors used by tiles of group index, in
// first-seen order (row-major).
func GroupColors(groups *Layer[Tag], index int) []string {
	var colors []string
	for _, e := range groups.Entries() {
		if e.Tag.Index != index || e.Tag.Color == "" {
			continue
		}
		if !slices.Contains(colors, e.Tag.Color) {
			colors = append(colors, e.Tag.Color)
		}
	}
	return colors
}

// GroupIndexes returns the distinct group indexes present in groups, ascending.
func GroupIndexes(groups *Layer[Tag]) []int {
	seen := make(map[int]bool)
	var out []int
	for _, e := range groups.Entries() {
		if !seen[e.Tag.Index] {
			seen[e.Tag.Index] = true
			out = append(out, e.Tag.Index)
		}
	}
	slices.Sort(out)
	return out
}
