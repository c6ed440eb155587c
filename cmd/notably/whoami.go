package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notably/pkg/session"
)

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		sess, err := app.Resolver.Resolve()
		if err != nil {
			fatal("Failed to resolve session", err)
		}

		switch sess.Mode {
		case session.ModeGuest:
			fmt.Println("Guest (notes stay on this device)")
		case session.ModeAuthenticated:
			claims, err := session.DecodeClaims(sess.Token)
			if err != nil {
				fmt.Println("Signed in (profile unavailable: token is opaque)")
				return
			}
			if claims.Name != "" {
				fmt.Printf("Signed in as %s <%s>\n", claims.Name, claims.Email)
				return
			}
			fmt.Printf("Signed in as %s\n", claims.Email)
		default:
			fmt.Println("Not signed in. Run 'notably login' or 'notably guest'.")
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
