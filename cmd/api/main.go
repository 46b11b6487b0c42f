package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/adityarizkyr/go-shop-api/internal/catalog"
	"github.com/adityarizkyr/go-shop-api/internal/config"
	"github.com/adityarizkyr/go-shop-api/internal/httpx"
	kafkax "github.com/adityarizkyr/go-shop-api/internal/kafka"
	"github.com/adityarizkyr/go-shop-api/internal/orders"
	"github.com/adityarizkyr/go-shop-api/internal/postgres"
	"github.com/adityarizkyr/go-shop-api/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	prod.Start(ctx)

	// Repos & handlers
	catalogRepo := &catalog.Repo{DB: db}
	orderRepo := &orders.Repo{DB: db}
	placer := &orders.Service{Inventory: catalogRepo, Orders: orderRepo}

	router := httpx.NewRouter()
	cache := &httpx.ProductCache{Redis: rdb}
	ph := &httpx.ProductsHandler{Store: catalogRepo, Cache: cache}
	ph.Register(router)
	oh := &httpx.OrdersHandler{
		Store:    orderRepo,
		Placer:   placer,
		Producer: prod,
		Cache:    cache,
		Service:  cfg.ServiceName,
	}
	oh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // flush buffered events & close writer
	cancel()
	prod.WaitClosed()
}
