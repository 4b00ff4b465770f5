package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boardcreator/pkg/errors"
	"github.com/matzehuels/boardcreator/pkg/grid"
	"github.com/matzehuels/boardcreator/pkg/project"
)

// paintCommand creates the paint command.
func (c *CLI) paintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paint",
		Short: "Toggle cells on the board or a tile group",
		Long: `Paint toggles cells given as x,y pairs.

Painting an empty cell adds it. Painting a cell that already carries the same
tag removes it. Painting a cell of another group moves it to the new group.`,
	}
	cmd.AddCommand(c.paintBoardCommand())
	cmd.AddCommand(c.paintGroupCommand())
	return cmd
}

// paintBoardCommand creates the "paint board" subcommand.
func (c *CLI) paintBoardCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "board x,y...",
		Short:   "Toggle board cells",
		Example: "  boardcreator paint board 2,3 3,3",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cells, err := parseCells(args)
			if err != nil {
				return err
			}
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				tool := &grid.Tool{Mode: grid.ModeBoard}
				return paintCells(cmd, p, tool, cells)
			})
		},
	}
}

// paintGroupCommand creates the "paint group" subcommand.
func (c *CLI) paintGroupCommand() *cobra.Command {
	var index int
	var color string

	cmd := &cobra.Command{
		Use:     "group x,y...",
		Short:   "Toggle cells of a colored tile group",
		Example: "  boardcreator paint group --index 1 --color '#ff0000' 0,0 1,1",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if index < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "group index must not be negative, got %d", index)
			}
			cells, err := parseCells(args)
			if err != nil {
				return err
			}
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				tool := &grid.Tool{Mode: grid.ModeColour, Index: index, Color: color}
				return paintCells(cmd, p, tool, cells)
			})
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", 0, "group index")
	cmd.Flags().StringVarP(&color, "color", "c", grid.DefaultColor, "group color")
	return cmd
}

func paintCells(cmd *cobra.Command, p *project.Store, tool *grid.Tool, cells []grid.Cell) error {
	counts := make(map[grid.Result]int)
	for _, cell := range cells {
		res, err := p.Click(cmd.Context(), tool, cell)
		if err != nil {
			return err
		}
		counts[res]++
		printDetail("%s %s", cell, res)
	}
	b := p.Board()
	for _, cell := range cells {
		if cell.X < 0 || cell.Y < 0 || cell.X >= b.Width || cell.Y >= b.Height {
			printWarning("%s is outside the %dx%d board; it is kept and exported", cell, b.Width, b.Height)
		}
	}
	printSuccess("%s: %d added, %d removed, %d retagged", tool.Mode,
		counts[grid.Added], counts[grid.Removed], counts[grid.Retagged])
	return nil
}

// parseCells parses "x,y" arguments.
func parseCells(args []string) ([]grid.Cell, error) {
	cells := make([]grid.Cell, 0, len(args))
	for _, arg := range args {
		cell, err := parseCell(arg)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

func parseCell(s string) (grid.Cell, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Cell{}, errors.New(errors.ErrCodeInvalidInput, "invalid cell %q (want x,y)", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return grid.Cell{}, errors.New(errors.ErrCodeInvalidInput, "invalid cell %q (want integer x,y)", s)
	}
	return grid.Cell{X: x, Y: y}, nil
}

// groupsCommand creates the groups command.
func (c *CLI) groupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List tile groups with their colors and sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				groups := p.Layers().Groups
				indexes := grid.GroupIndexes(groups)
				if len(indexes) == 0 {
					printInfo("No tile groups painted")
					printNextStep("Paint one", "boardcreator paint group --index 0 0,0")
					return nil
				}
				sizes := make(map[int]int)
				for _, e := range groups.Entries() {
					sizes[e.Tag.Index]++
				}
				rows := make([][]string, 0, len(indexes))
				for _, i := range indexes {
					rows = append(rows, []string{
						strconv.Itoa(i),
						strconv.Itoa(sizes[i]),
						swatches(grid.GroupColors(groups, i)),
					})
				}
				fmt.Println(renderTable([]string{"Group", "Tiles", "Colors"}, rows))
				return nil
			})
		},
	}
}
