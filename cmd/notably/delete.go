package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Long: `Delete a note from the active store. Unlike saves, a failed remote
delete is never retried against the local store; it surfaces so the two
stores cannot drift apart.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		if err := app.Repository.Delete(context.Background(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", explain(err))
			os.Exit(1)
		}

		fmt.Printf("Note '%s' deleted.\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
