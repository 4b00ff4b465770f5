package palette

import (
	"slices"
	"testing"
)

func TestPaletteAddRemove(t *testing.T) {
	p := New()

	if !p.Add("#ff0000") || !p.Add("#00ff00") {
		t.Fatal("Add should report a change for new colors")
	}
	if p.Add("#ff0000") {
		t.Error("Add of an existing color should be a no-op")
	}
	if got, want := p.List(), []string{"#ff0000", "#00ff00"}; !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	if p.Remove("#0000ff") {
		t.Error("Remove of an absent color should be a no-op")
	}
	if !p.Remove("#ff0000") {
		t.Error("Remove should report a change")
	}
	if got, want := p.List(), []string{"#00ff00"}; !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestPaletteAcceptsAnyString(t *testing.T) {
	p := New()
	for _, c := range []string{"red", "", "rgb(1,2,3)"} {
		if !p.Add(c) {
			t.Errorf("Add(%q) rejected", c)
		}
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
}

func TestPaletteListIsCopy(t *testing.T) {
	p := New("#111111")
	l := p.List()
	l[0] = "#999999"
	if !p.Contains("#111111") {
		t.Error("mutating List() result changed the palette")
	}
}

func TestPaletteReplaceAll(t *testing.T) {
	p := New("#aaaaaa")
	p.ReplaceAll([]string{"#010101", "#020202", "#010101"})
	if got, want := p.List(), []string{"#010101", "#020202"}; !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	p.ReplaceAll(nil)
	if p.Len() != 0 {
		t.Errorf("Len() = %d after ReplaceAll(nil)", p.Len())
	}
}

func TestPaletteNext(t *testing.T) {
	var empty Palette
	if _, ok := empty.Next("#000000"); ok {
		t.Error("Next on empty palette should fail")
	}

	p := New("#a", "#b", "#c")
	tests := []struct{ current, want string }{
		{"#a", "#b"},
		{"#c", "#a"},
		{"#zzz", "#a"},
	}
	for _, tt := range tests {
		if got, _ := p.Next(tt.current); got != tt.want {
			t.Errorf("Next(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		r, g, b int
		want    string
	}{
		{0, 0, 0, "#000000"},
		{255, 255, 0, "#ffff00"},
		{1, 16, 171, "#0110ab"},
		{300, -5, 128, "#ff0080"},
	}
	for _, tt := range tests {
		if got := Hex(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("Hex(%d,%d,%d) = %q, want %q", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}
