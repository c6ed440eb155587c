package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"notably"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of notably",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("notably version %s\n", strings.TrimSpace(notably.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
