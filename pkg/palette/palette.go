// Package palette holds the ordered set of color codes offered to group
// painting.
//
// A [Palette] keeps insertion order and never contains duplicates. Color
// strings are not validated; any string is accepted. Persistence is the
// caller's concern (see the project package).
package palette

import (
	"fmt"
	"slices"
)

// Palette is an insertion-ordered set of color codes.
// The zero value is an empty palette ready to use.
type Palette struct {
	colors []string
}

// New creates a palette holding colors, dropping duplicates.
func New(colors ...string) *Palette {
	p := &Palette{}
	p.ReplaceAll(colors)
	return p
}

// Add appends color unless it is already present. It reports whether the
// palette changed.
func (p *Palette) Add(color string) bool {
	if p.Contains(color) {
		return false
	}
	p.colors = append(p.colors, color)
	return true
}

// Remove deletes color if present. It reports whether the palette changed.
func (p *Palette) Remove(color string) bool {
	i := slices.Index(p.colors, color)
	if i < 0 {
		return false
	}
	p.colors = slices.Delete(p.colors, i, i+1)
	return true
}

// Contains reports whether color is in the palette.
func (p *Palette) Contains(color string) bool {
	return slices.Contains(p.colors, color)
}

// List returns the colors in insertion order. The slice is a copy.
func (p *Palette) List() []string {
	return slices.Clone(p.colors)
}

// Len returns the number of colors.
func (p *Palette) Len() int {
	return len(p.colors)
}

// ReplaceAll overwrites the palette with colors. Later duplicates are dropped
// so the set invariant holds even for hand-edited project files.
func (p *Palette) ReplaceAll(colors []string) {
	p.colors = make([]string, 0, len(colors))
	for _, c := range colors {
		if !slices.Contains(p.colors, c) {
			p.colors = append(p.colors, c)
		}
	}
}

// Next returns the color following current, wrapping around. If current is
// not in the palette the first color is returned. ok is false for an empty
// palette.
func (p *Palette) Next(current string) (color string, ok bool) {
	if len(p.colors) == 0 {
		return "", false
	}
	i := slices.Index(p.colors, current)
	return p.colors[(i+1)%len(p.colors)], true
}

// Hex formats an RGB triple as "#rrggbb". Components are clamped to 0..255.
func Hex(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", clamp(r), clamp(g), clamp(b))
}

func clamp(v int) int {
	return min(max(v, 0), 255)
}
