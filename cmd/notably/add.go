package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	addTitle   string
	addContent string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	Long: `Create a note in the active store. When signed in and the server is
unreachable, the note is kept locally instead of being lost.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		res, err := app.Repository.Add(context.Background(), addTitle, addContent)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", explain(err))
			os.Exit(1)
		}

		if res.Skipped {
			fmt.Println("Nothing to save: the note is empty.")
			return
		}
		if res.FellBack {
			fmt.Printf("Note '%s' saved locally (server unavailable: %v).\n", res.Note.ID, res.Cause)
			return
		}
		fmt.Printf("Note '%s' saved.\n", res.Note.ID)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Note title")
	addCmd.Flags().StringVarP(&addContent, "content", "c", "", "Note content")
}
