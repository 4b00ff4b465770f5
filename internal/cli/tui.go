package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/boardcreator/pkg/errors"
	"github.com/matzehuels/boardcreator/pkg/project"
)

// =============================================================================
// fileItem - one project file in the picker
// =============================================================================

type fileItem struct {
	path    string
	size    int64
	modTime time.Time
}

func (i fileItem) Title() string       { return filepath.Base(i.path) }
func (i fileItem) FilterValue() string { return filepath.Base(i.path) }
func (i fileItem) Description() string {
	return fmt.Sprintf("%s · %d bytes", formatRelativeTime(i.modTime, time.Now()), i.size)
}

// listProjectFiles returns the project files in dir, newest first.
func listProjectFiles(dir string) ([]fileItem, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+project.FileExt))
	if err != nil {
		return nil, err
	}
	items := make([]fileItem, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		items = append(items, fileItem{path: p, size: info.Size(), modTime: info.ModTime()})
	}
	slices.SortFunc(items, func(a, b fileItem) int {
		return b.modTime.Compare(a.modTime)
	})
	return items, nil
}

// =============================================================================
// PickerModel - Interactive project file selection
// =============================================================================

// PickerModel is the bubbletea model for choosing a project file.
type PickerModel struct {
	List      list.Model
	Selected  string
	Cancelled bool
}

// NewPickerModel creates a picker over items.
func NewPickerModel(items []fileItem) PickerModel {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	l := list.New(listItems, list.NewDefaultDelegate(), 60, 16)
	l.Title = "Select Project File"
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	l.SetShowStatusBar(true)
	return PickerModel{List: l}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.List.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.Cancelled = true
			return m, tea.Quit
		case "enter":
			if it, ok := m.List.SelectedItem().(fileItem); ok {
				m.Selected = it.path
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.List.SetSize(msg.Width, msg.Height-1)
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

func (m PickerModel) View() string {
	return m.List.View()
}

// =============================================================================
// filePicker - project.Picker backed by PickerModel
// =============================================================================

// filePicker lets the user choose a project file from a directory.
type filePicker struct {
	dir string
	run func(ctx context.Context, m PickerModel) (PickerModel, error)
}

func newFilePicker(dir string) *filePicker {
	return &filePicker{dir: dir, run: runPicker}
}

func runPicker(ctx context.Context, m PickerModel) (PickerModel, error) {
	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return m, err
	}
	return final.(PickerModel), nil
}

// Pick shows the picker and opens the chosen file.
func (p *filePicker) Pick(ctx context.Context) (project.File, error) {
	items, err := listProjectFiles(p.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileRead, err, "list %s", p.dir)
	}
	if len(items) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no %s files in %s", project.FileExt, p.dir)
	}

	m, err := p.run(ctx, NewPickerModel(items))
	if err != nil {
		if ctx.Err() != nil {
			return nil, project.ErrSelectionCancelled
		}
		return nil, errors.Wrap(errors.ErrCodeFileRead, err, "run file picker")
	}
	if m.Cancelled || m.Selected == "" {
		return nil, project.ErrSelectionCancelled
	}
	return project.PathPicker(m.Selected).Pick(ctx)
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
