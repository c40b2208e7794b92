package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// exploreCommand creates the explore command for interactive browsing.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "explore [graph file]",
		Short: "Browse a graph interactively",
		Long: `Browse a graph interactively.

Opens a terminal browser over the vertices of the graph. Typing
filters the list; the detail pane shows the children and parents of
the selected vertex.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args[0], noCache, refresh)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the graph even if cached")

	return cmd
}

// runExplore loads the graph and hands it to the terminal UI.
func (c *CLI) runExplore(ctx context.Context, input string, noCache, refresh bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := sourceOptions(input)
	opts.Refresh = refresh
	opts.Logger = c.Logger

	snap, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	g := snap.Materialize()
	if g.Len() == 0 {
		printWarning("Graph %s has no vertices", snap.Name)
		return nil
	}

	items := make([]vertexItem, 0, g.Len())
	for _, v := range g.Vertices() {
		item := vertexItem{ID: v.ID, Label: v.Label}
		for _, child := range g.Children(v) {
			item.Children = append(item.Children, vertexDisplay(child.ID, child.Label))
		}
		for _, parent := range g.Parents(v) {
			item.Parents = append(item.Parents, vertexDisplay(parent.ID, parent.Label))
		}
		items = append(items, item)
	}

	model := newExploreModel(snap.Name, items)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("explore: %w", err)
	}
	return nil
}
