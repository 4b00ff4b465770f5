package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boardcreator/pkg/grid"
	"github.com/matzehuels/boardcreator/pkg/project"
)

// boardCommand creates the board command.
func (c *CLI) boardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show or change the board dimensions",
	}
	cmd.AddCommand(c.boardShowCommand())
	cmd.AddCommand(c.boardSetCommand())
	return cmd
}

// boardShowCommand creates the "board show" subcommand.
func (c *CLI) boardShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the project summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				printSummary(p)
				return nil
			})
		},
	}
}

func printSummary(p *project.Store) {
	b := p.Board()
	ls := p.Layers()
	name := p.FileName()
	if name == "" {
		name = StyleWarning.Render("(unnamed, shape export disabled)")
	}
	fmt.Println(StyleTitle.Render("Project"))
	printKeyValue("Name", name)
	printKeyValue("Board", fmt.Sprintf("%d x %d", b.Width, b.Height))
	printKeyValue("Tile size", strconv.Itoa(b.TileSize))
	printKeyValue("Board tiles", StyleNumber.Render(strconv.Itoa(ls.Board.Len())))
	printKeyValue("Group tiles", StyleNumber.Render(strconv.Itoa(ls.Groups.Len())))
	printKeyValue("Groups", strconv.Itoa(len(grid.GroupIndexes(ls.Groups))))
	printKeyValue("Palette", swatches(p.Palette()))
}

// boardSetCommand creates the "board set" subcommand.
func (c *CLI) boardSetCommand() *cobra.Command {
	var width, height, tileSize int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change board width, height or tile size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				b := p.Board()
				if cmd.Flags().Changed("width") {
					b.Width = width
				}
				if cmd.Flags().Changed("height") {
					b.Height = height
				}
				if cmd.Flags().Changed("tile-size") {
					b.TileSize = tileSize
				}
				if err := p.SetBoard(cmd.Context(), b); err != nil {
					return err
				}
				printSuccess("Board set to %d x %d, tile size %d", b.Width, b.Height, b.TileSize)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "board width in tiles")
	cmd.Flags().IntVar(&height, "height", 0, "board height in tiles")
	cmd.Flags().IntVar(&tileSize, "tile-size", 0, "tile size in pixels")
	return cmd
}

// nameCommand creates the name command.
func (c *CLI) nameCommand() *cobra.Command {
	var clearName bool

	cmd := &cobra.Command{
		Use:   "name [new-name]",
		Short: "Print or change the project file name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				if len(args) == 0 && !clearName {
					fmt.Println(p.FileName())
					return nil
				}
				name := ""
				if len(args) == 1 {
					name = args[0]
				}
				if err := p.SetFileName(cmd.Context(), name); err != nil {
					return err
				}
				if name == "" {
					printWarning("Project name cleared; shape export is disabled until a name is set")
					return nil
				}
				printSuccess("Project renamed to %s", StyleHighlight.Render(name))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clearName, "clear", false, "clear the name (disables shape export)")
	return cmd
}
