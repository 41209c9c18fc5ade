package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aminrz/transfer-registry/internal/audit"
	"github.com/aminrz/transfer-registry/internal/config"
	"github.com/aminrz/transfer-registry/pkg/logger"
	"github.com/aminrz/transfer-registry/pkg/redis"
	"github.com/aminrz/transfer-registry/pkg/worker"
)

// The auditor drains the audit stream into the structured log. Entries
// are acked once a worker has taken the event, so a crash before that
// leaves them pending for the next run.
func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("auditor", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "auditor",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	consumerName := config.Get().AuditConsumerName
	if consumerName == "" {
		consumerName, _ = os.Hostname()
	}

	consumer, err := audit.NewConsumer(redisAdap, audit.ConsumerConfig{
		Stream:   config.Get().AuditStreamName,
		Group:    config.Get().AuditConsumerGroup,
		Consumer: consumerName,
	})
	if err != nil {
		logger.Error("failed creating audit consumer", "error", err)
		return
	}

	wm := worker.NewWorkerManager(1024, config.Get().AuditWorkers, nil)
	wm.SetWorker(func(workerIndex int, job interface{}) {
		event, ok := job.(audit.Event)
		if !ok {
			return
		}
		logger.Info("audit event",
			"worker", workerIndex,
			"event_id", event.ID,
			"entity", event.Entity,
			"action", event.Action,
			"entity_id", event.EntityID,
			"at", event.At,
		)
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		err := consumer.Run(ctx, func(event audit.Event) error {
			wm.Enqueue(event)
			return nil
		})
		if err != nil && ctx.Err() == nil {
			logger.Error("audit consumer stopped", "error", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
		wm.Exit()
	}()

	if err := wm.Start(); err != nil {
		logger.Info("auditor shut down", "reason", err.Error())
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
