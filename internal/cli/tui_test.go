package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/boardcreator/pkg/errors"
)

func writeProjectFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
		mt := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(path, mt, mt); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestListProjectFiles(t *testing.T) {
	dir := writeProjectFiles(t, "a_1.boardcreator", "notes.txt", "b_2.boardcreator")
	items, err := listProjectFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Title() != "b_2.boardcreator" {
		t.Errorf("first item = %s, want newest first", items[0].Title())
	}
}

func TestPickerModel(t *testing.T) {
	dir := writeProjectFiles(t, "a_1.boardcreator", "b_2.boardcreator")
	items, _ := listProjectFiles(dir)

	t.Run("enter selects", func(t *testing.T) {
		m := NewPickerModel(items)
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		pm := next.(PickerModel)
		if pm.Selected != items[0].path {
			t.Errorf("Selected = %q, want %q", pm.Selected, items[0].path)
		}
		if cmd == nil {
			t.Error("enter should quit")
		}
	})

	t.Run("esc cancels", func(t *testing.T) {
		m := NewPickerModel(items)
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if pm := next.(PickerModel); !pm.Cancelled || pm.Selected != "" {
			t.Errorf("model = %+v, want cancelled", pm)
		}
	})

	t.Run("down moves", func(t *testing.T) {
		m := NewPickerModel(items)
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		next, _ = next.(PickerModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
		if pm := next.(PickerModel); pm.Selected != items[1].path {
			t.Errorf("Selected = %q, want %q", pm.Selected, items[1].path)
		}
	})
}

func TestFilePicker(t *testing.T) {
	dir := writeProjectFiles(t, "a_1.boardcreator")
	ctx := context.Background()

	choose := func(selected string, cancelled bool) func(context.Context, PickerModel) (PickerModel, error) {
		return func(_ context.Context, m PickerModel) (PickerModel, error) {
			m.Selected, m.Cancelled = selected, cancelled
			return m, nil
		}
	}

	t.Run("selected", func(t *testing.T) {
		p := &filePicker{dir: dir, run: choose(filepath.Join(dir, "a_1.boardcreator"), false)}
		f, err := p.Pick(ctx)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if string(data) != "{}" {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		p := &filePicker{dir: dir, run: choose("", true)}
		if _, err := p.Pick(ctx); !errors.Is(err, errors.ErrCodeSelectionCancelled) {
			t.Errorf("error = %v, want SELECTION_CANCELLED", err)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		p := &filePicker{dir: t.TempDir(), run: choose("", false)}
		if _, err := p.Pick(ctx); !errors.Is(err, errors.ErrCodeNotFound) {
			t.Errorf("error = %v, want NOT_FOUND", err)
		}
	})
}
