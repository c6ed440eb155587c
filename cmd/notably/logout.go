package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the session",
	Long:  `Clear the stored token and guest marker. Local notes are kept on disk.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		if err := app.Resolver.Logout(); err != nil {
			fatal("Failed to clear session", err)
		}

		fmt.Println("Signed out.")
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
