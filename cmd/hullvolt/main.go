// Command hullvolt analyses the convex hull and voltage profile of a binary
// system from computed structures.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/katalvlaran/hullvolt/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
