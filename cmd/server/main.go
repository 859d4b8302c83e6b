package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/airdeskhq/airdesk/internal/config"
	"github.com/airdeskhq/airdesk/internal/database"
	"github.com/airdeskhq/airdesk/internal/handler"
	"github.com/airdeskhq/airdesk/internal/ids"
	"github.com/airdeskhq/airdesk/internal/queue"
	"github.com/airdeskhq/airdesk/internal/repository"
	"github.com/airdeskhq/airdesk/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("database migrate: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	counters := repository.NewCounterRepo(db)
	accounts := repository.NewAccountRepo(db, ids.NewCustomerSequence(counters))
	tokens := repository.NewTokenRepo(db)
	tickets := repository.NewTicketRepo(db)

	// Cancellation audit consumer; reconnects on its own.
	go func() {
		if err := queue.StartCancellationConsumer(); err != nil {
			log.Printf("cancellation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, accounts, tokens), cfg.JWTSecret)
	router.RegisterTickets(e, handler.NewTicketHandler(tickets), cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
