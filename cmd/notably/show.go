package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"notably/pkg/core"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		n, err := app.Repository.Get(context.Background(), args[0])
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "Error: no note with id '%s'\n", args[0])
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "Error: %s\n", explain(err))
			os.Exit(1)
		}

		if n.Title != "" {
			fmt.Printf("# %s\n\n", n.Title)
		}
		fmt.Println(n.Content)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
