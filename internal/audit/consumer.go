package audit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aminrz/transfer-registry/pkg/logger"
	"github.com/aminrz/transfer-registry/pkg/redis"
)

// EventHandler processes one audit event. A nil return acknowledges the
// stream entry; an error leaves it pending for redelivery.
type EventHandler func(event Event) error

type ConsumerConfig struct {
	Stream       string
	Group        string
	Consumer     string
	BatchSize    int64
	PollInterval time.Duration
}

// Consumer reads audit events off the stream through a consumer group.
type Consumer struct {
	adapter redis.RedisAdapter
	config  ConsumerConfig
}

func NewConsumer(adapter redis.RedisAdapter, config ConsumerConfig) (*Consumer, error) {
	if config.Stream == "" {
		return nil, errors.New("audit stream name is required")
	}
	if config.Group == "" {
		return nil, errors.New("audit consumer group is required")
	}
	if config.Consumer == "" {
		config.Consumer = "auditor-1"
	}
	if config.BatchSize == 0 {
		config.BatchSize = 10
	}
	if config.PollInterval == 0 {
		config.PollInterval = time.Second
	}

	err := adapter.XGroupCreateMkStream(config.Stream, config.Group, "0")
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return nil, err
	}

	return &Consumer{
		adapter: adapter,
		config:  config,
	}, nil
}

// Fetch reads one batch of undelivered events and acknowledges each one
// its handler accepts.
func (c *Consumer) Fetch(handler EventHandler) error {
	messages, err := c.adapter.XReadGroup(
		c.config.Group,
		c.config.Consumer,
		c.config.Stream,
		">",
		c.config.BatchSize,
	)
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return nil
		}
		return err
	}

	for _, msg := range messages {
		event := decodeEvent(msg)
		if err := handler(event); err != nil {
			logger.Warn("audit event handler failed", "event_id", event.ID, "error", err)
			continue
		}
		if err := c.adapter.XAck(c.config.Stream, c.config.Group, msg.ID); err != nil {
			logger.Warn("audit ack failed", "stream_id", msg.ID, "error", err)
		}
	}

	return nil
}

// Run polls the stream until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context, handler EventHandler) error {
	ticker := time.NewTicker(c.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.Fetch(handler); err != nil {
				logger.Warn("audit fetch failed", "stream", c.config.Stream, "error", err)
			}
		}
	}
}

// Depth reports the total stream length, acknowledged entries included.
func (c *Consumer) Depth() (int64, error) {
	return c.adapter.XLen(c.config.Stream)
}
