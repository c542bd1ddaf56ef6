package main

import (
	"context"
	"flag"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"fashion-chatbot-be/internal/bootstrap"
	"fashion-chatbot-be/internal/config"
	"fashion-chatbot-be/pkg/database"
)

// Admin command for catalog indexing. Runs sync jobs in the foreground,
// bypassing the HTTP queue.
func main() {
	all := flag.Bool("all", false, "re-index the whole active catalog")
	ids := flag.String("ids", "", "comma-separated product ids to re-index")
	remove := flag.String("delete", "", "comma-separated product ids to remove from the index")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		return
	}

	container := bootstrap.NewContainer(db, cfg)
	ctx := context.Background()

	color.Cyan("Catalog sync (%s)", cfg.Qdrant.CollectionName)

	color.Yellow("Ensuring vector collection...")
	if err := container.SyncService.EnsureCollection(ctx); err != nil {
		color.Red("Failed to ensure collection: %v", err)
		return
	}

	switch {
	case *all:
		color.Yellow("Re-indexing full catalog...")
		if err := container.SyncService.SyncAll(ctx); err != nil {
			color.Red("Sync failed: %v", err)
			return
		}
		color.Green("Catalog re-indexed")

	case *ids != "":
		productIds, err := parseIds(*ids)
		if err != nil {
			color.Red("Invalid -ids value: %v", err)
			return
		}
		color.Yellow("Re-indexing %d products...", len(productIds))
		if err := container.SyncService.SyncSpecifics(ctx, productIds); err != nil {
			color.Red("Sync failed: %v", err)
			return
		}
		color.Green("Products re-indexed")

	case *remove != "":
		productIds, err := parseIds(*remove)
		if err != nil {
			color.Red("Invalid -delete value: %v", err)
			return
		}
		color.Yellow("Removing %d products from index...", len(productIds))
		if err := container.SyncService.DeleteProducts(ctx, productIds); err != nil {
			color.Red("Delete failed: %v", err)
			return
		}
		color.Green("Products removed")

	default:
		color.Yellow("Nothing to do. Pass -all, -ids or -delete.")
	}
}

func parseIds(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
