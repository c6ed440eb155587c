package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"notably/pkg/core"
)

var (
	editTitle       string
	editContent     string
	editInteractive bool
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a note, or start a new one",
	Long: `Edit a note. Without an id a new note is started; it is only created
once something non-blank is saved.

With --interactive the command reads the note line by line from stdin
and autosaves in the background: each line replaces the note body and
restarts a quiet timer, and one save fires per pause in typing. End the
input with EOF (Ctrl-D). Edits made within the last quiet interval are
flushed on exit.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		ctx := context.Background()

		id := ""
		if len(args) == 1 {
			id = args[0]
		}

		if editInteractive {
			editLoop(ctx, app.Repository, id)
			return
		}

		if editTitle == "" && editContent == "" {
			fmt.Println("Error: provide --title/--content, or use --interactive")
			cmd.Usage()
			os.Exit(1)
		}

		title, content := editTitle, editContent
		if id != "" {
			var err error
			title, content, err = mergedFields(ctx, app.Repository, id, title, content)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					fmt.Fprintf(os.Stderr, "Error: no note with id '%s'\n", id)
					os.Exit(1)
				}
				fmt.Fprintf(os.Stderr, "Error: %s\n", explain(err))
				os.Exit(1)
			}
		}

		var (
			res core.SaveResult
			err error
		)
		if id == "" {
			res, err = app.Repository.Add(ctx, title, content)
		} else {
			res, err = app.Repository.Update(ctx, id, title, content)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", explain(err))
			os.Exit(1)
		}

		if res.Skipped {
			fmt.Println("Nothing to save: the note is empty.")
			return
		}
		if res.Note.ID == "" {
			// The note vanished between the fetch and the write.
			fmt.Fprintf(os.Stderr, "Error: no note with id '%s'\n", id)
			os.Exit(1)
		}
		if res.FellBack {
			fmt.Printf("Note '%s' saved locally (server unavailable: %v).\n", res.Note.ID, res.Cause)
			return
		}
		fmt.Printf("Note '%s' saved.\n", res.Note.ID)
	},
}

// mergedFields fills the flag the caller omitted from the stored note, so
// a single-flag edit does not blank the other field. The fetch is
// mandatory: writing through a failed read would destroy the field the
// caller meant to keep.
func mergedFields(ctx context.Context, repo *core.Repository, id, title, content string) (string, string, error) {
	current, err := repo.Get(ctx, id)
	if err != nil {
		return "", "", err
	}
	if title == "" {
		title = current.Title
	}
	if content == "" {
		content = current.Content
	}
	return title, content, nil
}

// editLoop reads the note interactively. The first line is the title,
// each following line replaces the content; every keystroke batch goes
// through the autosave controller.
func editLoop(ctx context.Context, repo *core.Repository, id string) {
	title := ""
	if id != "" {
		current, err := repo.Get(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", explain(err))
			os.Exit(1)
		}
		title = current.Title
		fmt.Printf("Editing '%s' (%s). Type new content, Ctrl-D to finish.\n", title, id)
	} else {
		fmt.Println("New note. First line is the title, the rest is content. Ctrl-D to finish.")
	}

	autosave := core.NewAutosave(ctx, repo, id,
		core.WithOnResult(func(res core.SaveResult, err error) {
			switch {
			case err != nil:
				fmt.Fprintf(os.Stderr, "autosave: %s\n", explain(err))
			case res.FellBack:
				fmt.Fprintf(os.Stderr, "autosave: kept locally as '%s'\n", res.Note.ID)
			}
		}),
	)

	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if id == "" && title == "" {
			title = line
			autosave.Edit(title, "")
			continue
		}
		lines = append(lines, line)
		autosave.Edit(title, strings.Join(lines, "\n"))
	}

	// Flush whatever is still pending, then stop the timer for good.
	res, err := autosave.Flush(ctx)
	autosave.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", explain(err))
		os.Exit(1)
	}

	switch {
	case autosave.NoteID() == "" && res.Skipped:
		fmt.Println("Nothing to save: the note is empty.")
	case res.FellBack:
		fmt.Printf("Note '%s' saved locally (server unavailable).\n", autosave.NoteID())
	default:
		fmt.Printf("Note '%s' saved.\n", autosave.NoteID())
	}
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content")
	editCmd.Flags().BoolVarP(&editInteractive, "interactive", "i", false, "Read the note from stdin with background autosave")
}
