package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/davfen/mingle/internal/app"
)

var (
	configPath string
	apiURL     string
)

var rootCmd = &cobra.Command{
	Use:   "mingle",
	Short: "Terminal client for the Mingle events platform",
	Long: `mingle is a terminal client for the Mingle social events platform.

Browse events and venues, follow people, buy tickets and merchandise, and
post to your feed without leaving the terminal.

Environment Variables:
  MINGLE_API_URL  Backend API URL (default: http://127.0.0.1:8080/api)`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return app.Run(ctx, app.Options{
			ConfigPath: configPath,
			APIBaseURL: resolveAPIURL(),
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "override config file path (optional)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides MINGLE_API_URL)")
}

// resolveAPIURL returns the API URL from flag or env, in priority order. An
// empty result defers to the config file.
func resolveAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	return os.Getenv("MINGLE_API_URL")
}

func main() {
	// A local .env is optional; missing files are fine.
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "mingle: %v\n", err)
		os.Exit(1)
	}
}
