// evalia gateway entry point. Loads config, opens the identity store, wires
// the downstream forwarder and serves the public API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v7"
	"github.com/sirupsen/logrus"

	"github.com/Imran-2020331101/evalia/gateway"
	"github.com/Imran-2020331101/evalia/identity"
	"github.com/Imran-2020331101/evalia/jobs"
	"github.com/Imran-2020331101/evalia/mail"
	"github.com/Imran-2020331101/evalia/proxy"
	"github.com/Imran-2020331101/evalia/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logrusLogger.Fatalf("config: %v", err)
	}
	configureLogger(cfg)

	db, err := store.Open(cfg.DatabaseDSN)
	if err != nil {
		logrusLogger.Fatalf("error in connecting to db: %v", err)
	}
	if err := store.SeedRoles(db); err != nil {
		logrusLogger.Fatalf("error seeding roles: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := redisClient.Ping().Result(); err != nil {
			logrusLogger.WithError(err).Warn("redis unreachable, role cache disabled")
			redisClient = nil
		}
	}

	users := &store.Users{Db: db}
	roles := &store.Roles{Db: db, Redis: redisClient}
	challenges := &store.Challenges{Db: db}
	organizations := &store.Organizations{Db: db}

	auth := &gateway.JWTAuth{
		Key:          []byte(cfg.JWTSecret),
		SessionTTL:   cfg.SessionTTL(),
		TemporaryTTL: cfg.TemporaryTTL(),
	}
	mailer := &mail.Gateway{
		URL:    cfg.Mail.URL,
		APIKey: cfg.Mail.APIKey,
		From:   cfg.Mail.From,
		Logger: logrusLogger,
	}
	forwarder := proxy.NewForwarder(cfg.Services, logrusLogger)

	identitySvc := &identity.Service{
		Users:         users,
		Roles:         roles,
		Challenges:    challenges,
		Organizations: organizations,
		Auth:          auth,
		Mailer:        mailer,
		Forwarder:     forwarder,
		Logger:        logrusLogger,
	}
	proxySvc := &proxy.Service{
		Forwarder: forwarder,
		Users:     users,
		Logger:    logrusLogger,
	}
	jobsSvc := &jobs.Service{
		Users:         users,
		Organizations: organizations,
		Forwarder:     forwarder,
		Logger:        logrusLogger,
	}

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: GetMainEngine(auth, identitySvc, proxySvc, jobsSvc),
	}

	go func() {
		logrusLogger.WithFields(logrus.Fields{"addr": cfg.Port}).Info("gateway listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrusLogger.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrusLogger.Errorf("shutdown: %v", err)
	}
	logrusLogger.Info("gateway stopped")
}
