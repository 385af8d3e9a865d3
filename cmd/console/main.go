package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/client"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/config"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/console"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/lib/logger"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/lib/logger/sl"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/roster"
)

func main() {
	/**********************************************
	 * load config
	 **********************************************/
	cfg, err := config.LoadConsoleConfig()
	if err != nil {
		slog.Error("failed to load config", sl.Err(err))
		os.Exit(1)
	}

	// stdout belongs to the table
	log := logger.New(os.Stderr, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	/**********************************************
	 * log in and load the roster
	 **********************************************/
	c := client.New(log, cfg.BaseURL)
	if err := c.Login(ctx, client.Credentials{
		Username: cfg.Username,
		Password: cfg.Password,
		Email:    cfg.Email,
		Link:     cfg.Link,
	}); err != nil {
		log.Error("failed to log in", sl.Err(err), slog.String("baseURL", cfg.BaseURL))
		os.Exit(1)
	}

	employees, err := c.ListEmployees(ctx)
	if err != nil {
		log.Error("failed to load employees", sl.Err(err))
		os.Exit(1)
	}
	log.Debug("roster loaded", slog.Int("count", len(employees)))

	/**********************************************
	 * run the session
	 **********************************************/
	s := console.NewSession(os.Stdin, os.Stdout, c)
	ctrl := roster.NewController(log, employees, c,
		roster.WithPageSize(cfg.PageSize),
		roster.WithPersistCallback(s.Persisted),
	)

	if err := s.Run(ctx, ctrl); err != nil {
		log.Error("console stopped", sl.Err(err))
	}

	logoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Logout(logoutCtx); err != nil {
		log.Warn("failed to log out", sl.Err(err))
	}
}
