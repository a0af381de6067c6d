package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ilias-scraper/lib/configuration"
	"ilias-scraper/lib/scrapers/ilias/core"
)

type Config struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

var rootCmd = &cobra.Command{
	Use:   "ilias-cli",
	Short: "ilias-cli inspects and manages exercise submissions on an ILIAS portal.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(message string, err error) {
	slog.Error(message, "err", err)
	os.Exit(1)
}

// createClient builds an authenticated portal session from the nearest
// ilias.json5 config.
func createClient(ctx context.Context) *core.Client {
	config, err := configuration.ReadUp[Config]("ilias.json5")
	if err != nil {
		fatal("failed to read ilias.json5", err)
	}

	client, err := core.NewClient(ctx, core.ClientOptions{BaseUrl: config.BaseUrl})
	if err != nil {
		fatal("failed to initialize portal client", err)
	}

	slog.Info("logging in", "base_url", config.BaseUrl, "username", config.Username)
	err = client.LoginUsernamePassword(ctx, config.Username, config.Password)
	if err != nil {
		fatal("failed to login to the portal", err)
	}

	return client
}
