// Command seed loads the bundled sample activities and bookings into the
// configured store.  Running it twice inserts nothing new.
package main

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/outdoor-ventures/internal/config"
	"github.com/iliyamo/outdoor-ventures/internal/seed"
	"github.com/iliyamo/outdoor-ventures/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	stores, err := store.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer stores.Close(context.Background())

	res, err := seed.Load(ctx, stores.Activities, stores.Bookings, seed.SampleData())
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("sample data loaded into %s: activities %d/%d, bookings %d/%d inserted",
		stores.Driver, res.ActivitiesInserted, res.Activities, res.BookingsInserted, res.Bookings)
}
