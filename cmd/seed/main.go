package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/config"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/lib/logger"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/lib/logger/sl"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/repository"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/seed"
)

func main() {
	var op int
	var n int
	var randSeed uint64

	flag.IntVar(&op, "op", 0, "operation (1: append random employees, 2: replace with the demo employees)")
	flag.IntVar(&n, "n", 5, "number of random employees")
	flag.Uint64Var(&randSeed, "seed", uint64(time.Now().UnixNano()), "random seed")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", sl.Err(err))
		os.Exit(1)
	}
	log := logger.Setup(cfg.Environment)

	ctx := context.Background()

	dbpool, err := repository.NewDatabase(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", sl.Err(err))
		return
	}
	defer dbpool.Close()

	repo := repository.NewRepository(cfg, dbpool, nil)

	switch op {
	case 0:
		log.Error("no operation given")
	case 1:
		if n <= 0 {
			log.Error("number of employees must be positive", slog.Int("n", n))
			return
		}

		existing, err := repo.GetAllEmployees(ctx)
		if err != nil {
			log.Error("failed to load employees", sl.Err(err))
			return
		}

		employees := seed.NewGenerator(randSeed).Append(existing, n)
		if err := repo.ReplaceEmployees(ctx, employees); err != nil {
			log.Error("failed to store employees", sl.Err(err))
			return
		}
		log.Info("random employees added", slog.Int("added", n), slog.Int("total", len(employees)))
	case 2:
		employees := seed.DemoEmployees()
		if err := repo.ReplaceEmployees(ctx, employees); err != nil {
			log.Error("failed to store employees", sl.Err(err))
			return
		}
		log.Info("demo employees stored", slog.Int("total", len(employees)))
	default:
		log.Error("unknown operation", slog.Int("op", op))
	}
}
