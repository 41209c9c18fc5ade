package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aminrz/transfer-registry/internal/audit"
	"github.com/aminrz/transfer-registry/internal/cache"
	"github.com/aminrz/transfer-registry/internal/config"
	"github.com/aminrz/transfer-registry/internal/handlers"
	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/aminrz/transfer-registry/internal/repository"
	"github.com/aminrz/transfer-registry/internal/services"
	xhttp "github.com/aminrz/transfer-registry/pkg/http"
	"github.com/aminrz/transfer-registry/pkg/logger"
	"github.com/aminrz/transfer-registry/pkg/pg"
	"github.com/aminrz/transfer-registry/pkg/prom"
	"github.com/aminrz/transfer-registry/pkg/redis"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(prom.Middleware)
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RequestIDMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := config.Get().AppEnv == "dev"
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	if config.Get().PromNamespace != "" {
		host, _ := os.Hostname()
		if err := prom.Create(host, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed creating metrics", "error", err)
			return
		}
		if config.Get().AppDebugMetricsAddr != "" {
			go prom.ListenAndServe(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
		}
	}

	auditPublisher := audit.NewPublisher(redisAdap, config.Get().AuditStreamName, config.Get().AuditStreamMaxLen)

	cacheTTL := time.Duration(config.Get().CacheTTLSeconds) * time.Second
	userCache := cache.NewViewCache[model.User](redisAdap, cacheTTL)
	accountCache := cache.NewViewCache[model.Account](redisAdap, cacheTTL)

	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	recipientRepo := repository.NewRecipientRepository(db)

	// services
	userService := services.NewUserService(userRepo, userCache, accountRepo, accountCache, auditPublisher)
	accountService := services.NewAccountService(accountRepo, accountCache, auditPublisher)
	transactionService := services.NewTransactionService(transactionRepo, auditPublisher)
	recipientService := services.NewRecipientService(recipientRepo, auditPublisher)

	// v1 handlers
	userHandler := handlers.NewUserHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	recipientHandler := handlers.NewRecipientHandler(recipientService)
	healthHandler := handlers.NewHealthHandler()

	g := s.Router.Group("/api/v1")
	handlers.RegisterUserRoutes(g, userHandler)
	handlers.RegisterAccountRoutes(g, accountHandler)
	handlers.RegisterTransactionRoutes(g, transactionHandler)
	handlers.RegisterRecipientRoutes(g, recipientHandler)
	handlers.RegisterHealthRoutes(g, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(config.Get().HttpListenAddr); err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
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
