package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/config"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/handler"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/lib/logger"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/lib/logger/sl"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/notify"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/repository"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/status"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	/**********************************************
	 * load config
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", sl.Err(err))
		os.Exit(1)
	}

	/**********************************************
	 * logger
	 **********************************************/
	log := logger.Setup(cfg.Environment)

	/**********************************************
	 * metrics
	 **********************************************/
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	/**********************************************
	 * database
	 **********************************************/
	dbpool, err := repository.NewDatabase(context.Background(), cfg)
	if err != nil {
		log.Error("failed to connect to database", sl.Err(err))
		os.Exit(1)
	}
	defer dbpool.Close()

	repo := repository.NewRepository(cfg, dbpool, appMetrics)

	/**********************************************
	 * admin credentials
	 **********************************************/
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash admin password", sl.Err(err))
		os.Exit(1)
	}
	admin := domain.Admin{
		Username:     cfg.Admin.Username,
		PasswordHash: string(passwordHash),
		Email:        cfg.Admin.Email,
		Link:         cfg.Admin.Link,
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		log.Error("failed to connect to rabbitmq", sl.Err(err))
		os.Exit(1)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Error("failed to open channel", sl.Err(err))
		os.Exit(1)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(cfg.RabbitMQ.Queue, true, false, false, false, nil); err != nil {
		log.Error("failed to declare queue", slog.String("queue", cfg.RabbitMQ.Queue), sl.Err(err))
		os.Exit(1)
	}

	publisher := notify.NewPublisher(cfg, ch, admin, appMetrics)

	/**********************************************
	 * redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})
	defer rdb.Close()

	statusStore := status.NewStore(cfg, rdb)

	/**********************************************
	 * handler
	 **********************************************/
	h, err := handler.NewHandler(cfg, admin, repo, statusStore, publisher, appMetrics)
	if err != nil {
		log.Error("failed to create handler", sl.Err(err))
		os.Exit(1)
	}
	h.RegisterRoutes()
	h.Mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	/**********************************************
	 * http server
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      h.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(log.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("starting server", slog.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", sl.Err(err))
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("failed to shut down server", sl.Err(err))
	}
	log.Info("server stopped")
}
