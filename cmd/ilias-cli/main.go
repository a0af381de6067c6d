package main

import (
	"context"
	"os"

	"ilias-scraper/cmd/ilias-cli/commands"
	"ilias-scraper/lib/telemetry"
)

func main() {
	ctx := context.Background()

	telemetry.InitSlog(true)
	tel, err := telemetry.SetupFromEnv(ctx, "ilias-cli")
	if err != nil && !os.IsNotExist(err) {
		panic(err)
	}
	defer tel.Shutdown(ctx)

	commands.ExecuteContext(ctx)
}
