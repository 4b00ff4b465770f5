package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boardcreator/pkg/errors"
	"github.com/matzehuels/boardcreator/pkg/grid"
	"github.com/matzehuels/boardcreator/pkg/palette"
	"github.com/matzehuels/boardcreator/pkg/project"
)

// editCommand creates the edit command for the interactive editor.
func (c *CLI) editCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Paint the board interactively in the terminal",
		Long: `Edit opens a terminal editor over the configured board area.

Click a cell, or move the cursor and press space, to toggle it. Every change is
saved immediately.

Keys:
  arrows/hjkl  move cursor          space/enter  paint
  tab          board/colour mode    [ ]          previous/next group
  p            next palette color   e            export shapes
  s            export project       q            quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				m := newEditorModel(cmd.Context(), p, dir)
				opts := []tea.ProgramOption{
					tea.WithAltScreen(),
					tea.WithMouseCellMotion(),
					tea.WithContext(cmd.Context()),
				}
				if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
					return fmt.Errorf("run editor: %w", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&dir, "output", "o", ".", "directory for exported files")
	return cmd
}

// Editor layout: two header lines above the grid, two columns per cell.
const (
	editorHeaderLines = 2
	editorCellWidth   = 2
)

var (
	styleBoardCell  = lipgloss.NewStyle().Foreground(colorGray)
	styleEmptyCell  = lipgloss.NewStyle().Foreground(colorDim)
	styleStatusErr  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleModeActive = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// editorModel is the bubbletea model of the interactive editor.
type editorModel struct {
	ctx    context.Context
	proj   *project.Store
	tool   *grid.Tool
	cursor grid.Cell
	outDir string

	status    string
	statusErr bool
}

func newEditorModel(ctx context.Context, p *project.Store, outDir string) *editorModel {
	return &editorModel{ctx: ctx, proj: p, tool: grid.NewTool(), outDir: outDir}
}

func (m *editorModel) Init() tea.Cmd {
	return nil
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		cell := grid.Cell{X: msg.X / editorCellWidth, Y: msg.Y - editorHeaderLines}
		if m.inBoard(cell) {
			m.cursor = cell
			m.paint()
		}
	}
	return m, nil
}

func (m *editorModel) handleKey(key string) tea.Cmd {
	b := m.proj.Board()
	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "up", "k":
		m.cursor.Y = max(m.cursor.Y-1, 0)
	case "down", "j":
		m.cursor.Y = min(m.cursor.Y+1, b.Height-1)
	case "left", "h":
		m.cursor.X = max(m.cursor.X-1, 0)
	case "right", "l":
		m.cursor.X = min(m.cursor.X+1, b.Width-1)
	case " ", "enter":
		m.paint()
	case "tab":
		if m.tool.Mode == grid.ModeBoard {
			m.tool.Mode = grid.ModeColour
		} else {
			m.tool.Mode = grid.ModeBoard
		}
		m.setStatus(false, "%s mode", m.tool.Mode)
	case "]":
		m.tool.NextGroup(m.proj.Layers().Groups)
		m.setStatus(false, "group %d", m.tool.Index)
	case "[":
		m.tool.PrevGroup(m.proj.Layers().Groups)
		m.setStatus(false, "group %d", m.tool.Index)
	case "p":
		next, ok := palette.New(m.proj.Palette()...).Next(m.tool.Color)
		if !ok {
			m.setStatus(true, "palette is empty; add colors with 'boardcreator palette add'")
			return nil
		}
		m.tool.Color = next
		m.setStatus(false, "color %s", next)
	case "e":
		path, err := m.proj.SaveShapes(m.ctx, m.outDir)
		m.report(err, "shapes exported to %s", path)
	case "s":
		path, err := m.proj.SaveProject(m.ctx, m.outDir)
		m.report(err, "project exported to %s", path)
	}
	return nil
}

func (m *editorModel) paint() {
	res, err := m.proj.Click(m.ctx, m.tool, m.cursor)
	m.report(err, "%s %s", m.cursor, res)
}

func (m *editorModel) report(err error, format string, args ...any) {
	if err != nil {
		m.setStatus(true, "%s", errors.UserMessage(err))
		return
	}
	m.setStatus(false, format, args...)
}

func (m *editorModel) setStatus(isErr bool, format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = isErr
}

func (m *editorModel) inBoard(c grid.Cell) bool {
	b := m.proj.Board()
	return c.X >= 0 && c.Y >= 0 && c.X < b.Width && c.Y < b.Height
}

func (m *editorModel) View() string {
	var sb strings.Builder

	name := m.proj.FileName()
	if name == "" {
		name = StyleWarning.Render("(unnamed)")
	}
	modes := make([]string, len(grid.Modes))
	for i, mode := range grid.Modes {
		if mode == m.tool.Mode {
			modes[i] = styleModeActive.Render("[" + mode.String() + "]")
		} else {
			modes[i] = StyleDim.Render(mode.String())
		}
	}
	fmt.Fprintf(&sb, "%s %s  %s  group %s %s\n",
		StyleTitle.Render(appName), StyleValue.Render(name), strings.Join(modes, " "),
		StyleNumber.Render(fmt.Sprint(m.tool.Index)), swatch(m.tool.Color))
	sb.WriteString(StyleDim.Render("space paint · tab mode · [ ] group · p color · e shapes · s project · q quit"))
	sb.WriteString("\n")

	ls := m.proj.Layers()
	b := m.proj.Board()
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			sb.WriteString(m.renderCell(ls, grid.Cell{X: x, Y: y}))
		}
		sb.WriteString("\n")
	}

	if m.status != "" {
		if m.statusErr {
			sb.WriteString(styleStatusErr.Render(iconError + " " + m.status))
		} else {
			sb.WriteString(StyleSuccess.Render(m.status))
		}
	}
	return sb.String()
}

func (m *editorModel) renderCell(ls grid.Layers, c grid.Cell) string {
	var style lipgloss.Style
	text := "· "
	if tag, ok := ls.Groups.Get(c); ok {
		color := tag.Color
		if color == "" {
			color = grid.DefaultColor
		}
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		text = iconSwatch
	} else if _, ok := ls.Board.Get(c); ok {
		style = styleBoardCell
		text = "▓▓"
	} else {
		style = styleEmptyCell
	}
	if c == m.cursor {
		style = style.Reverse(true)
	}
	return style.Render(text)
}
