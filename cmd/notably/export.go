package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"

	"github.com/spf13/cobra"

	"notably/pkg/core"
)

var exportOutput string

// exportTemplate renders a note as a printable standalone page.
var exportTemplate = template.Must(template.New("note").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{if .Title}}{{.Title}}{{else}}Untitled note{{end}}</title>
<style>
body { font-family: serif; max-width: 40em; margin: 2em auto; padding: 0 1em; }
h1 { border-bottom: 1px solid #ccc; padding-bottom: .3em; }
pre { white-space: pre-wrap; font-family: inherit; }
</style>
</head>
<body>
{{if .Title}}<h1>{{.Title}}</h1>{{end}}
<pre>{{.Content}}</pre>
</body>
</html>
`))

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a note as an HTML document",
	Long:  `Render a note as a standalone HTML page, suitable for printing or sharing. The output file defaults to <id>.html in the current directory.`,
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

		path := exportOutput
		if path == "" {
			path = n.ID + ".html"
		}

		f, err := os.Create(path)
		if err != nil {
			fatal("Failed to create output file", err)
		}
		defer f.Close()

		if err := exportTemplate.Execute(f, n); err != nil {
			fatal("Failed to render note", err)
		}

		fmt.Printf("Exported to %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
}
