package main

import (
	"context"
	"fmt"
	"os"
	"time"

	backendclient "github.com/GregMSThompson/family-savings/internal/client/backend"
	"github.com/GregMSThompson/family-savings/internal/config"
	"github.com/GregMSThompson/family-savings/internal/dashboard"
	"github.com/GregMSThompson/family-savings/internal/session"
	"github.com/GregMSThompson/family-savings/internal/state"
	"github.com/GregMSThompson/family-savings/pkg/logger"
)

func main() {
	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, logger.NewConsoleHandler)
	ctx = logger.ToContext(ctx, log)

	dash := dashboard.New(
		backendclient.NewAdapter(cfg.Client.BaseURL, cfg.Client.Timeout),
		session.NewStatic(cfg.Client.Token, cfg.Client.Email),
		state.New(),
		cfg.Client.LoadConcurrency,
	)

	if err := run(ctx, dash, os.Args[1:], os.Stdout, time.Now()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
