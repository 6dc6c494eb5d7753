package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/avtorg/car-auction/internal/config"
	"github.com/avtorg/car-auction/internal/database"
	"github.com/avtorg/car-auction/internal/handler"
	"github.com/avtorg/car-auction/internal/middleware"
	"github.com/avtorg/car-auction/internal/queue"
	"github.com/avtorg/car-auction/internal/repository"
	"github.com/avtorg/car-auction/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	if err := database.Migrate(cfg.MigrationsDir, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable; rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	cars := repository.NewCarRepo(db)
	auctions := repository.NewAuctionRepo(db)
	bids := repository.NewBidRepo(db)
	feedback := repository.NewFeedbackRepo(db)

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users, tokens),
		Users:    handler.NewUserHandler(users, cfg.BcryptCost),
		Cars:     handler.NewCarHandler(cars),
		Auctions: handler.NewAuctionHandler(auctions),
		Bids:     handler.NewBidHandler(bids, queue.PublishBidPlaced),
		Feedback: handler.NewFeedbackHandler(feedback),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	router.RegisterRoutes(e, h, cfg.JWTSecret)

	go queue.StartBidConsumer()

	addr := ":" + cfg.Port
	log.WithFields(log.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
	if err := e.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
