// Command ghcli — консольный клиент GiftHunt.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"GiftHunt/internal/cli/commands"
	"GiftHunt/internal/config"
)

// Заполняются через -ldflags при сборке.
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.NewConfig()
	if cfg.Version {
		fmt.Fprint(commands.Out, commands.FormatVersion(version, buildDate))
		return commands.ExitOK
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Dispatch(ctx, cfg, flag.Args())
}
