// Command seed loads the service catalog into MongoDB.
//
// Services are only read over HTTP, so the catalog is managed with this tool:
//
//	seed                      # upsert the bundled catalog
//	seed --file services.json # upsert a custom catalog
//	seed --drop               # drop the collection first
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"cardoctor/config"
	"cardoctor/database"
	"cardoctor/database/repository"
	"cardoctor/models"
	"cardoctor/utils"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

//go:embed services.json
var defaultCatalog []byte

func main() {
	if err := app().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func app() *cli.App {
	return &cli.App{
		Name:  "seed",
		Usage: "Upsert the car doctor service catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "JSON array of services (defaults to the bundled catalog)",
			},
			&cli.BoolFlag{
				Name:  "drop",
				Usage: "Drop the services collection before seeding",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	services, err := loadCatalog(c.String("file"))
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	utils.InitializeLogger(cfg.LogLevel, config.IsProduction())
	logger := utils.GetLogger()

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := database.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := repository.NewMongoServiceRepo(database.Database(client, cfg).Collection(database.ServicesCollection), cfg.DBTimeout)
	if c.Bool("drop") {
		if err := repo.Drop(ctx); err != nil {
			return err
		}
		logger.Info("Dropped services collection")
	}

	res, err := repo.UpsertMany(ctx, services)
	if err != nil {
		return err
	}
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Warn("Failed to ensure service indexes", zap.Error(err))
	}

	logger.Info("Seeded services",
		zap.Int("total", len(services)),
		zap.Int64("inserted", res.UpsertedCount),
		zap.Int64("replaced", res.ModifiedCount),
	)
	return nil
}

// loadCatalog reads services from path, or the bundled catalog when path is empty.
func loadCatalog(path string) ([]models.Service, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		data = b
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) ([]models.Service, error) {
	var services []models.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	seen := make(map[string]bool, len(services))
	for i, s := range services {
		if s.ServiceID == "" {
			return nil, fmt.Errorf("service %d (%q) has no service_id", i, s.Title)
		}
		if seen[s.ServiceID] {
			return nil, fmt.Errorf("duplicate service_id %q", s.ServiceID)
		}
		seen[s.ServiceID] = true
	}
	return services, nil
}
