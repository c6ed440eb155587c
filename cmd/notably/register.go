package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long:  `Create an account on the remote server. Registration does not sign you in; run 'notably login' afterwards.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		name := registerName
		if name == "" {
			name = prompt("Full name: ")
		}
		email := registerEmail
		if email == "" {
			email = prompt("Email: ")
		}
		password := registerPassword
		if password == "" {
			password = promptSecret("Password: ")
		}
		if name == "" || email == "" || password == "" {
			fmt.Println("Error: full name, email, and password are required")
			os.Exit(1)
		}

		if err := app.Auth.Register(context.Background(), name, email, password); err != nil {
			fmt.Fprintf(os.Stderr, "Error: registration failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Account created. Run 'notably login' to sign in.")
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted if omitted)")
}
