// Command sprinklr normalizes timestamps in Sprinklr exports (single "Created Time" column with locale a.m./p.m. markers).
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
	code := cli.Run(ctx, profile.Sprinklr, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
