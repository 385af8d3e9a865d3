// Package status keeps the dashboard's on/off switch in Redis so every API
// instance sees the same value.
package status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/config"
)

const Key = "system_status"

const (
	valueOn  = "on"
	valueOff = "off"
)

type Store struct {
	rdb     redis.Cmdable
	timeout time.Duration
}

func NewStore(cfg *config.Config, rdb redis.Cmdable) *Store {
	return &Store{
		rdb:     rdb,
		timeout: time.Duration(cfg.Redis.OperationTimeout) * time.Second,
	}
}

// SystemStatus reads the switch. A missing key means on.
func (s *Store) SystemStatus(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	v, err := s.rdb.Get(ctx, Key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return false, fmt.Errorf("failed to read system status: %w", err)
	}

	return Parse(v), nil
}

func (s *Store) SetSystemStatus(ctx context.Context, on bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.rdb.Set(ctx, Key, Format(on), 0).Err(); err != nil {
		return fmt.Errorf("failed to store system status: %w", err)
	}

	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.rdb.Ping(ctx).Err()
}

// Parse follows the toggle request: only "on" switches the system on.
func Parse(state string) bool {
	return state == valueOn
}

func Format(on bool) string {
	if on {
		return valueOn
	}
	return valueOff
}
