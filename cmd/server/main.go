package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/outdoor-ventures/internal/config"
	"github.com/iliyamo/outdoor-ventures/internal/handler"
	"github.com/iliyamo/outdoor-ventures/internal/middleware"
	"github.com/iliyamo/outdoor-ventures/internal/queue"
	"github.com/iliyamo/outdoor-ventures/internal/router"
	"github.com/iliyamo/outdoor-ventures/internal/service"
	"github.com/iliyamo/outdoor-ventures/internal/store"
)

func main() {
	cfg, err := config.Load() // Load .env files and environment config
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := store.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	log.Printf("store ready (driver=%s)", stores.Driver)

	// Redis is optional: nil disables rate limiting and caching
	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	opts := []service.Option{
		service.WithClientWaitlistTrust(cfg.Booking.TrustClientWaitlist),
	}
	if inv := middleware.NewCacheInvalidator(cfg.Cache, rdb); inv != nil {
		opts = append(opts, service.WithCacheInvalidator(inv))
	}

	consumerDone := make(chan struct{})
	if cfg.Queue.Enabled {
		url := cfg.Queue.BrokerURL()
		opts = append(opts, service.WithPublisher(queue.NewPublisher(url)))
		go func() {
			defer close(consumerDone)
			_ = queue.NewConsumer(url, cfg.Queue.LogDir).Run(ctx)
		}()
	} else {
		close(consumerDone)
	}

	bookings := service.NewBookingService(stores.Activities, stores.Bookings, opts...)
	listings := service.NewListingService(stores.Activities, stores.Bookings)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterBookings(e, &handler.BookingHandler{Bookings: bookings},
		middleware.NewTokenBucket(cfg.RateLimit, rdb))
	router.RegisterListings(e, &handler.ListingHandler{Listings: listings},
		middleware.NewRedisCache(cfg.Cache, rdb))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, trust_client_waitlist=%t, queue=%t)",
		addr, cfg.Env, cfg.Booking.TrustClientWaitlist, cfg.Queue.Enabled)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-consumerDone
	if err := stores.Close(shutdownCtx); err != nil {
		log.Printf("store close: %v", err)
	}
}
