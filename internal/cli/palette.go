package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boardcreator/pkg/errors"
	"github.com/matzehuels/boardcreator/pkg/palette"
	"github.com/matzehuels/boardcreator/pkg/project"
)

// paletteCommand creates the palette command.
func (c *CLI) paletteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Manage the color palette",
	}
	cmd.AddCommand(c.paletteListCommand())
	cmd.AddCommand(c.paletteAddCommand())
	cmd.AddCommand(c.paletteRGBCommand())
	cmd.AddCommand(c.paletteRemoveCommand())
	return cmd
}

// paletteListCommand creates the "palette list" subcommand.
func (c *CLI) paletteListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List palette colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				colors := p.Palette()
				if len(colors) == 0 {
					printInfo("Palette is empty")
					printNextStep("Add a color", "boardcreator palette add '#ff0000'")
					return nil
				}
				for _, color := range colors {
					fmt.Println(swatch(color) + " " + color)
				}
				return nil
			})
		},
	}
}

// paletteAddCommand creates the "palette add" subcommand.
func (c *CLI) paletteAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add color...",
		Short: "Add colors to the palette",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				return addColors(cmd, p, args...)
			})
		},
	}
}

// paletteRGBCommand creates the "palette rgb" subcommand.
func (c *CLI) paletteRGBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rgb r g b",
		Short: "Add a color from red, green and blue components (0-255)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rgb [3]int
			for i, arg := range args {
				v, err := strconv.Atoi(arg)
				if err != nil {
					return errors.New(errors.ErrCodeInvalidInput, "invalid color component %q", arg)
				}
				rgb[i] = v
			}
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				return addColors(cmd, p, palette.Hex(rgb[0], rgb[1], rgb[2]))
			})
		},
	}
}

func addColors(cmd *cobra.Command, p *project.Store, colors ...string) error {
	for _, color := range colors {
		added, err := p.AddColor(cmd.Context(), color)
		if err != nil {
			return err
		}
		if added {
			printSuccess("Added %s %s", swatch(color), color)
		} else {
			printInfo("%s is already in the palette", color)
		}
	}
	return nil
}

// paletteRemoveCommand creates the "palette remove" subcommand.
func (c *CLI) paletteRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "remove color...",
		Short:             "Remove colors from the palette",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completePaletteColors,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				for _, color := range args {
					removed, err := p.RemoveColor(cmd.Context(), color)
					if err != nil {
						return err
					}
					if removed {
						printSuccess("Removed %s", color)
					} else {
						printWarning("%s is not in the palette", color)
					}
				}
				return nil
			})
		},
	}
}
