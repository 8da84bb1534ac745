package main

import (
	"context"
	"log"

	"github.com/caucashanus/rezervacni-system/internal/api"
	"github.com/caucashanus/rezervacni-system/internal/config"
	"github.com/caucashanus/rezervacni-system/internal/gcal"
	"github.com/caucashanus/rezervacni-system/internal/locations"
)

type app struct {
	config   *config.Config
	handlers *api.Handlers
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	connector := gcal.NewConnector(cfg.Google.KeyDir)

	svc := &api.EventService{
		Connector: api.ConnectorFunc(func(ctx context.Context, locationID string) (api.Session, error) {
			return connector.Connect(ctx, locationID)
		}),
		Timezone:     cfg.Timezone,
		QueryTimeout: cfg.Google.QueryTimeout,
		AllowPartial: cfg.Google.AllowPartial,
	}

	cache := api.NewResponseCache(cfg.Cache.TTL)
	handlers := api.NewHandlers(svc, cache, cfg.Admin.Tokens)

	app := &app{
		config:   cfg,
		handlers: handlers,
	}

	log.Printf("listening on :%d (locations=%v)", cfg.Server.Port, locations.IDs())

	log.Fatal(app.serve())
}
