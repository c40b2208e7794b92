package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/refgraph/pkg/snapshot"
)

// storeCommand creates the store command for snapshot persistence.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stored graph snapshots",
		Long: `Manage stored graph snapshots.

Snapshots are kept as JSON files under the data directory, or in
MongoDB when REFGRAPH_MONGO_URI is set. Stored graphs are also served
by 'refgraph serve'.`,
	}

	cmd.AddCommand(c.storeSaveCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeShowCommand())
	cmd.AddCommand(c.storeDeleteCommand())

	return cmd
}

// storeSaveCommand creates the "store save" subcommand.
func (c *CLI) storeSaveCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save [graph file]",
		Short: "Store a graph snapshot under a fresh id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStoreSave(cmd.Context(), args[0], name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "snapshot name (default: name from the file)")

	return cmd
}

func (c *CLI) runStoreSave(ctx context.Context, input, name string) error {
	st, err := newStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	opts := sourceOptions(input)
	opts.Name = name
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	snap, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	record, err := st.Save(ctx, snap.Name, snap)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	prog.done(fmt.Sprintf("Stored %d vertices and %d edges", record.Vertices, record.Edges))

	printSuccess("Stored %s", StyleHighlight.Render(record.Name))
	printKeyValue("ID", record.ID)
	printStats(record.Vertices, record.Edges, false)
	printNewline()
	printNextStep("Inspect", fmt.Sprintf("%s store show %s", appName, record.ID))

	return nil
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStoreList(cmd.Context())
		},
	}
}

func (c *CLI) runStoreList(ctx context.Context) error {
	st, err := newStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	records, err := st.List(ctx)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	if len(records) == 0 {
		printInfo("No stored snapshots")
		return nil
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.ID,
			r.Name,
			strconv.Itoa(r.Vertices),
			strconv.Itoa(r.Edges),
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Vertices", "Edges", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			}
			if col == 0 {
				return StyleDim
			}
			return StyleValue
		})

	fmt.Println(t.Render())
	return nil
}

// storeShowCommand creates the "store show" subcommand.
func (c *CLI) storeShowCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored snapshot as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStoreShow(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runStoreShow(ctx context.Context, id, output string) error {
	st, err := newStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	entry, err := st.Load(ctx, id)
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := snapshot.Write(out, entry.Graph); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if output != "" {
		printSuccess("Wrote %s", entry.Name)
		printFile(output)
	}
	return nil
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStoreDelete(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runStoreDelete(ctx context.Context, id string) error {
	st, err := newStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.Delete(ctx, id); err != nil {
		return err
	}
	printSuccess("Deleted %s", id)
	return nil
}
