package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boardcreator/pkg/config"
	"github.com/matzehuels/boardcreator/pkg/project"
)

// storageCommand creates the storage management command.
func (c *CLI) storageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect and reset the storage backend",
	}

	cmd.AddCommand(c.storageClearCommand())
	cmd.AddCommand(c.storagePathCommand())

	return cmd
}

// storageClearCommand creates the "storage clear" subcommand.
func (c *CLI) storageClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored project key and write the defaults back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := c.clearStorage(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess("Cleared %d stored keys", count)
			printDetail("Backend: %s", c.describeBackend())
			printNewline()
			printNextStep("Defaults restored; inspect them with", "boardcreator board show")
			return nil
		},
	}
}

// clearStorage resets the stored project and returns how many keys were
// present before the reset. The project is cleared without loading it first,
// so keys holding corrupt values are counted and removed as well.
func (c *CLI) clearStorage(ctx context.Context) (int, error) {
	kv, err := c.openStore(ctx)
	if err != nil {
		return 0, err
	}
	defer kv.Close()

	count := 0
	for _, key := range project.Keys {
		_, ok, err := kv.Get(ctx, key)
		if err != nil {
			return 0, err
		}
		if ok {
			count++
		}
	}

	if err := project.New(kv, c.projectOptions()...).Clear(ctx); err != nil {
		return 0, err
	}
	return count, nil
}

// storagePathCommand creates the "storage path" subcommand.
func (c *CLI) storagePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the project is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(c.describeBackend())
			return nil
		},
	}
}

// describeBackend returns a one-line description of the storage location.
func (c *CLI) describeBackend() string {
	st := c.cfg.Storage
	var where string
	switch st.Backend {
	case config.BackendMemory:
		where = "memory (not persisted)"
	case config.BackendRedis:
		where = fmt.Sprintf("redis://%s/%d", st.Redis.Addr, st.Redis.DB)
	case config.BackendMongo:
		where = fmt.Sprintf("mongo %s.%s", st.Mongo.Database, st.Mongo.Collection)
	default:
		dir, err := c.cfg.StoreDir()
		if err != nil {
			return fmt.Sprintf("file (unknown directory: %v)", err)
		}
		where = dir
	}
	if st.Prefix != "" {
		where += " prefix " + st.Prefix
	}
	return where
}
