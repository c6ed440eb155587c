package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notably/pkg/session"
)

// guestCmd represents the guest command
var guestCmd = &cobra.Command{
	Use:   "guest",
	Short: "Continue without an account",
	Long: `Mark this device as a guest. Notes are stored locally and never leave
the device. A stored token from a previous login still takes precedence;
run 'notably logout' first to drop it.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		if err := app.Resolver.GuestLogin(); err != nil {
			fatal("Failed to enable guest mode", err)
		}

		sess, err := app.Resolver.Resolve()
		if err != nil {
			fatal("Failed to resolve session", err)
		}
		if sess.Mode == session.ModeAuthenticated {
			fmt.Println("Guest mode enabled, but a stored login still takes precedence.")
			fmt.Println("Run 'notably logout' first if you want to work as a guest.")
			return
		}

		fmt.Println("Continuing as guest. Notes stay on this device.")
	},
}

func init() {
	rootCmd.AddCommand(guestCmd)
}
