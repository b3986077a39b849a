package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/korlebu/facilitypulse/internal/adapters/search"
	"github.com/korlebu/facilitypulse/internal/adapters/source"
	"github.com/korlebu/facilitypulse/internal/domain/repositories"
	"github.com/korlebu/facilitypulse/internal/infrastructure/clients/typesense"
	"github.com/korlebu/facilitypulse/internal/infrastructure/observability"
	"github.com/korlebu/facilitypulse/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	observability.InitLogger("facility-pulse-indexer", cfg.Env)
	logger := *observability.GetLogger()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}
	adapter := search.NewTypesenseAdapter(tsClient)

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Println("Reset requested, deleting facilities collection")
		if err := adapter.Reset(ctx); err != nil {
			log.Printf("Warning: failed to delete collection: %v", err)
		}
	}

	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	var dataset repositories.FacilityDataset
	if cfg.Dataset.URL != "" {
		dataset = source.NewHTTPSource(cfg.Dataset.URL, logger)
	} else {
		dataset = source.NewFileSource(cfg.Dataset.Path)
	}

	facilities, err := dataset.Load(ctx)
	if err != nil {
		return err
	}

	indexed := 0
	for i := range facilities {
		hit := repositories.HitFromFacility(facilities[i])
		if hit.ID == "" {
			continue
		}
		if err := adapter.Index(ctx, hit); err != nil {
			log.Printf("Warning: failed to index facility %s: %v", hit.ID, err)
			continue
		}
		indexed++
	}

	log.Printf("Indexed %d of %d facilities from %s", indexed, len(facilities), dataset.Source())
	return nil
}
