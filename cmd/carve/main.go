package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pixelseam/carve/internal/cli"
	"github.com/pixelseam/carve/utils"
)

// Build information, injected with -ldflags.
var (
	version string
	commit  string
	date    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version, commit, date)
	err := cli.Execute(ctx)
	if errors.Is(ctx.Err(), context.Canceled) {
		// makes the cursor visible again if a spinner was interrupted
		fmt.Fprint(os.Stderr, "\033[?25h")
		stop()
		os.Exit(130)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		stop()
		os.Exit(1)
	}
}
