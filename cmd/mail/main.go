package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/config"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/lib/logger"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/lib/logger/sl"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/mailer"
	"github.com/wneessen/go-mail"
)

func main() {
	/**********************************************
	 * config and logger
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", sl.Err(err))
		os.Exit(1)
	}
	log := logger.Setup(cfg.Environment)

	/**********************************************
	 * smtp client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		log.Error("failed to create mail client", sl.Err(err))
		return
	}
	defer client.Close()

	dialCtx, cancelDial := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancelDial()
	if err := client.DialWithContext(dialCtx); err != nil {
		log.Error("failed to reach mail server", sl.Err(err))
		return
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		log.Error("failed to connect to rabbitmq", sl.Err(err))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Error("failed to open channel", sl.Err(err))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.Queue,
		true,  // durable
		false, // keep the queue while no consumer is attached
		false, // shared
		false,
		nil,
	)
	if err != nil {
		log.Error("failed to declare queue", sl.Err(err))
		return
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		log.Error("failed to consume queue", sl.Err(err))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-msgs:
				if !ok {
					log.Warn("delivery channel closed")
					return
				}
				handle(ctx, log, client, cfg.Email.SMTP.Username, delivery)
			}
		}
	}()

	log.Info("waiting for messages", slog.String("queue", q.Name))
	<-sigChan

	log.Info("shutting down mail worker")
	cancel()
	wg.Wait()
	log.Info("mail worker stopped")
}

// handle drops malformed messages and requeues the ones that failed to send.
func handle(ctx context.Context, log *slog.Logger, client *mail.Client, from string, delivery amqp.Delivery) {
	log = log.With(slog.String("message_id", delivery.MessageId))

	env, err := mailer.Decode(delivery.Body)
	if err != nil {
		log.Error("dropping message", sl.Err(err))
		_ = delivery.Nack(false, false)
		return
	}

	msg, err := mailer.Build(from, env)
	if err != nil {
		log.Error("dropping message", slog.String("type", env.Type), sl.Err(err))
		_ = delivery.Nack(false, false)
		return
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error("failed to send mail", sl.Err(err))
		_ = delivery.Nack(false, true)
		return
	}

	log.Info("mail sent", slog.String("type", env.Type))
	_ = delivery.Ack(false)
}
