package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/carbonwallet/internal/cmd"
	"github.com/felixgeelhaar/carbonwallet/internal/exitcode"
	"github.com/felixgeelhaar/carbonwallet/internal/ux"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
			stop()
			exitcode.Exit(exitcode.Interrupted)
		}

		// Errors already shown through a notification only set the exit code.
		if !cmd.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", ux.EnhanceError(err))
		}
		stop()
		exitcode.ExitWithError(err)
	}
}
