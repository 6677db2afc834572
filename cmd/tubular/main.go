// Command tubular normalizes timestamps in Tubular exports (single published date column in mixed formats).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/juancuellarsol/ogilvy/internal/cli"
	"github.com/juancuellarsol/ogilvy/internal/profile"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, profile.Tubular, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
