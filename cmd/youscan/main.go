// Command youscan normalizes timestamps in YouScan exports (separate date and time columns).
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
	code := cli.Run(ctx, profile.YouScan, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
