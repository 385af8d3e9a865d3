// Package notify publishes roster events for the mail worker.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/config"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/metrics"
)

// Channel is satisfied by *amqp.Channel.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Publisher struct {
	ch      Channel
	queue   string
	timeout time.Duration
	admin   domain.Admin
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewPublisher(cfg *config.Config, ch Channel, admin domain.Admin, m *metrics.Metrics) *Publisher {
	return &Publisher{
		ch:      ch,
		queue:   cfg.RabbitMQ.Queue,
		timeout: time.Duration(cfg.RabbitMQ.PublishTimeout) * time.Second,
		admin:   admin,
		metrics: m,
		now:     time.Now,
	}
}

// RosterReplaced tells the admin that the collection now holds employees.
func (p *Publisher) RosterReplaced(ctx context.Context, employees []domain.Employee) error {
	msg := domain.MailMessage{
		Type: domain.MailTypeRosterReplaced,
		To:   p.admin.Email,
		Data: domain.RosterReplacedMailData{
			FullName:    p.admin.Username,
			Count:       len(employees),
			Departments: domain.CountDepartments(employees),
			ReplacedAt:  p.now(),
		},
	}

	err := p.publish(ctx, msg)
	if p.metrics != nil {
		status := "success"
		if err != nil {
			status = "failure"
		}
		p.metrics.NotificationsSent.WithLabelValues(status).Inc()
	}

	return err
}

func (p *Publisher) publish(ctx context.Context, msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode mail message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    p.now(),
			Type:         msg.Type,
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("failed to publish %s: %w", msg.Type, err)
	}

	return nil
}
