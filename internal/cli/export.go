package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boardcreator/pkg/project"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	dir       string // output directory
	stdout    bool   // write to stdout instead of a file
	clipboard bool   // copy the shape file to the system clipboard
}

// exportCommand creates the export command for writing the shape file.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export board and tile group shapes as {name}.json",
		Long: `Export writes the shape file: the board outline with its position and one
form matrix per tile group, each cropped to its bounding box.

Shape export is disabled while the project has no name. Shapes spanning more
than 1024 rows or columns are rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				return c.runExport(cmd, p, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "output", "o", ".", "output directory")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "write the shape file to stdout")
	cmd.Flags().BoolVar(&opts.clipboard, "clipboard", false, "copy the shape file to the clipboard")
	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, p *project.Store, opts exportOpts) error {
	prog := newProgress(loggerFromContext(cmd.Context()))

	if opts.stdout || opts.clipboard {
		var buf bytes.Buffer
		if err := p.ExportShapes(cmd.Context(), &buf); err != nil {
			return err
		}
		if opts.stdout {
			_, _ = os.Stdout.Write(buf.Bytes())
		}
		if opts.clipboard {
			if err := clipboard.WriteAll(buf.String()); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			printSuccess("Copied %s to the clipboard", p.ShapeFileName())
		}
		return nil
	}

	path, err := p.SaveShapes(cmd.Context(), opts.dir)
	if err != nil {
		return err
	}
	out, err := p.Shapes()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Exported board and %d tile groups", len(out.TileGroups)))
	printFile(path)
	return nil
}
