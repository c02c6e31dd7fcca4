package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/32bitkid/retroboy/cmd/retroboy/cmd"
	"github.com/32bitkid/retroboy/internal/logging"
	"github.com/google/uuid"
)

var (
	GitSHA string = "NA"
)

func main() {
	ctx, cnc := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cnc()
	go func() {
		defer cnc() // restores the default ctrl-c behaviour once the first one lands
		<-ctx.Done()
	}()
	slog.SetDefault(logging.Logger(os.Stderr, false, slog.LevelInfo))
	ctx = logging.AppendCtx(ctx,
		slog.Group("retroboy",
			slog.String("git", GitSHA),
			slog.String("run", uuid.NewString()),
		))
	if err := cmd.NewRoot(ctx, GitSHA).Execute(); err != nil {
		os.Exit(1)
	}
}
