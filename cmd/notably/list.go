package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"notably"
	"notably/pkg/core"
	"notably/pkg/session"
)

var (
	listJSON   bool
	listSearch string
	listWatch  bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long: `List the notes of the active store: the remote server when signed in,
the local collection as a guest. With --watch (guest only) the listing
refreshes whenever the local collection changes on disk.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		ctx := context.Background()

		if listWatch {
			watchList(app)
			return
		}

		notes, err := app.Repository.List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", explain(err))
			os.Exit(1)
		}

		printNotes(filterNotes(notes, listSearch))
	},
}

// filterNotes keeps notes whose title or content contains the query,
// case-insensitively. An empty query keeps everything.
func filterNotes(notes []core.Note, query string) []core.Note {
	if query == "" {
		return notes
	}
	q := strings.ToLower(query)
	var filtered []core.Note
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

func printNotes(notes []core.Note) {
	if listJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(notes); err != nil {
			fmt.Printf("Error encoding JSON: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(notes) == 0 {
		fmt.Println("No notes.")
		return
	}
	for _, n := range notes {
		title := n.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s  %s\n", n.ID, title)
	}
}

func watchList(app *notably.App) {
	sess, err := app.Resolver.Resolve()
	if err != nil {
		fatal("Failed to resolve session", err)
	}
	if sess.Mode != session.ModeGuest {
		fmt.Println("Error: --watch follows the local collection and is only available in guest mode")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events, err := app.Local.Watch(ctx)
	if err != nil {
		fatal("Failed to watch collection", err)
	}

	show := func() {
		notes, err := app.Repository.List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", explain(err))
			return
		}
		printNotes(filterNotes(notes, listSearch))
	}

	show()
	fmt.Fprintln(os.Stderr, "Watching for changes (Ctrl-C to stop)...")
	for range events {
		fmt.Println("---")
		show()
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Filter by substring in title or content")
	listCmd.Flags().BoolVar(&listWatch, "watch", false, "Re-list when the local collection changes (guest only)")
}
