package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boardcreator/pkg/errors"
	"github.com/matzehuels/boardcreator/pkg/project"
)

// projectCommand creates the project command.
func (c *CLI) projectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Export, import or clear the whole project",
	}
	cmd.AddCommand(c.projectExportCommand())
	cmd.AddCommand(c.projectImportCommand())
	cmd.AddCommand(c.projectClearCommand())
	return cmd
}

// projectExportCommand creates the "project export" subcommand.
func (c *CLI) projectExportCommand() *cobra.Command {
	var dir string
	var stdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save the project as {name}_{timestamp}.boardcreator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				if stdout {
					return p.ExportProject(cmd.Context(), os.Stdout)
				}
				path, err := p.SaveProject(cmd.Context(), dir)
				if err != nil {
					return err
				}
				printSuccess("Project exported")
				printFile(path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&dir, "output", "o", ".", "output directory")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write the project file to stdout")
	return cmd
}

// projectImportCommand creates the "project import" subcommand.
func (c *CLI) projectImportCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the project with a .boardcreator file",
		Long: `Import replaces the project with the contents of a project file.

Without a file argument, an interactive list of the project files in --dir is
shown. The project is left unchanged when the selection is cancelled or the
file is invalid.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeProjectFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			var picker project.Picker = newFilePicker(dir)
			if len(args) == 1 {
				picker = project.PathPicker(args[0])
			}
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				err := p.ImportFrom(cmd.Context(), picker)
				if errors.Is(err, errors.ErrCodeSelectionCancelled) {
					printInfo("Import cancelled, project unchanged")
					return nil
				}
				if err != nil {
					if errors.Recoverable(err) {
						printError("%s", errors.UserMessage(err))
						printDetail("Project unchanged")
					}
					return err
				}
				printSuccess("Imported %s", StyleHighlight.Render(p.FileName()))
				printSummary(p)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory to list project files from")
	return cmd
}

// projectClearCommand creates the "project clear" subcommand.
func (c *CLI) projectClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset the project to its defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withProject(cmd.Context(), func(p *project.Store) error {
				if err := p.Clear(cmd.Context()); err != nil {
					return err
				}
				printSuccess("Project reset to defaults")
				return nil
			})
		},
	}
}
