package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/railbook/railbook/internal/booking"
	"github.com/railbook/railbook/internal/config"
	"github.com/railbook/railbook/internal/database"
	"github.com/railbook/railbook/internal/handler"
	"github.com/railbook/railbook/internal/loader"
	"github.com/railbook/railbook/internal/queue"
	"github.com/railbook/railbook/internal/repository"
	"github.com/railbook/railbook/internal/router"
	"github.com/railbook/railbook/internal/search"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	routes, err := loader.LoadRoutes(cfg.RoutesCSV)
	if err != nil {
		log.Fatalf("load routes: %v", err)
	}
	log.Printf("loaded %d routes from %s", len(routes), cfg.RoutesCSV)

	engine := search.NewEngine(routes)
	bookings := booking.NewService()

	// Trip persistence is optional: without database settings the service
	// runs search and booking purely in memory.
	var trips *repository.TripRepo
	if cfg.DBEnabled {
		db, err := database.Open(cfg)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		trips = repository.NewTripRepo(db)
	} else {
		log.Printf("no database configured; trips will not be persisted")
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; caching and rate limiting disabled")
	}

	if cfg.AMQPEnable {
		go func() {
			if err := queue.StartTripConsumer(); err != nil {
				log.Printf("trip consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterSearch(e, handler.NewSearchHandler(engine), rdb)
	router.RegisterBooking(e, handler.NewBookingHandler(engine, bookings, trips), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
