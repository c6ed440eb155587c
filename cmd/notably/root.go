package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"notably"
	"notably/pkg/core"
)

var (
	verbose    bool
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notably",
	Short: "A notes client with guest mode and remote sync",
	Long: `Notably keeps short text notes. Signed in, notes live on the remote
server; as a guest they stay on this device. Failed remote writes are kept
locally so nothing you typed is lost.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: user config dir)")
}

// openApp loads configuration and wires the application for a command run.
func openApp() *notably.App {
	path := configPath
	if path == "" {
		p, err := notably.DefaultConfigPath()
		if err == nil {
			path = p
		}
	}

	cfg, err := notably.LoadConfig(path)
	if err != nil {
		fatal("Failed to load config", err)
	}

	app, err := notably.New(cfg, notably.WithLogger(slog.Default()))
	if err != nil {
		fatal("Failed to initialize", err)
	}
	return app
}

// explain turns repository errors into actionable messages.
func explain(err error) string {
	switch {
	case err == core.ErrSignedOut:
		return "You are not signed in. Run 'notably login' or 'notably guest'."
	case core.IsAuthError(err):
		return "Your session has expired. Run 'notably login' to sign in again."
	case core.IsNetworkError(err):
		return fmt.Sprintf("Could not reach the server. Check your connection. (%v)", err)
	default:
		return err.Error()
	}
}
