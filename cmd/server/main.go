package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/rantai-skena/booking-api/internal/config"
	"github.com/rantai-skena/booking-api/internal/database"
	"github.com/rantai-skena/booking-api/internal/handler"
	"github.com/rantai-skena/booking-api/internal/queue"
	"github.com/rantai-skena/booking-api/internal/repository"
	"github.com/rantai-skena/booking-api/internal/router"
	"github.com/rantai-skena/booking-api/internal/service/notify"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	if cfg.Env == "development" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("open database")
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	accounts := repository.NewAccountRepo(db)
	events := repository.NewEventRepo(db)
	apps := repository.NewApplicationRepo(db)
	artistProfiles := repository.NewArtistProfileRepo(db)
	agentProfiles := repository.NewAgentProfileRepo(db)
	music := repository.NewMusicRepo(db)
	gallery := repository.NewGalleryRepo(db)

	var notifier handler.Notifier
	if p := notify.NewPublisher(cfg.AMQPURL); p != nil {
		notifier = p
		go func() {
			if err := queue.StartConsumer(cfg.AMQPURL); err != nil {
				logrus.WithError(err).Error("notification consumer stopped")
			}
		}()
	} else {
		logrus.Warn("RABBITMQ_URL not set, workflow notifications disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	router.Register(e, router.Deps{
		JWTSecret: cfg.JWTSecret,
		Accounts:  accounts,
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Auth:      handler.NewAuthHandler(accounts),
		Events:    handler.NewEventHandler(events),
		Apps:      handler.NewApplicationHandler(apps, events, notifier),
		Profiles:  handler.NewProfileHandler(artistProfiles, agentProfiles),
		Media:     handler.NewMediaHandler(music, gallery),
	})

	go func() {
		addr := ":" + cfg.Port
		logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("shutdown")
	}
}
