package main

import (
	"context"
	"os"
	"os/signal"

	"devsurvey/cmd/devsurvey/cmd"
	"devsurvey/internal/platform/config/raw"
	"devsurvey/internal/platform/logger"
)

func main() {
	// logs go to stderr so stdout stays machine readable
	opt := logger.FromEnv()
	opt.Writer = os.Stderr
	opt.Level = raw.New().Prefix("LOG_").Get("LEVEL", "warn")
	logger.Init(opt)
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.RootCmd().ExecuteContext(ctx); err != nil {
		l.Error().Err(err).Msg("devsurvey failed")
		stop()
		os.Exit(1)
	}
}
