package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/a05031113/rent-scrapper/config"
	"github.com/a05031113/rent-scrapper/models"
	"github.com/a05031113/rent-scrapper/notify"
	"github.com/a05031113/rent-scrapper/scraper/rent591"
	"github.com/a05031113/rent-scrapper/services"
	"github.com/a05031113/rent-scrapper/storage"
	"github.com/a05031113/rent-scrapper/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	taipei := time.FixedZone("Asia/Taipei", 8*60*60)
	logger.Info("=== 591 rental monitor starting (%s) ===",
		time.Now().In(taipei).Format("2006-01-02 15:04"))

	notifier := notify.New(cfg, logger)

	if err := run(context.Background(), cfg, logger, notifier); err != nil {
		logger.Error("Run failed: %v", err)
		os.Exit(1)
	}

	logger.Info("=== Run complete ===")
}

// run executes one full pipeline pass: load state, fetch every region
// profile, filter, merge with the pending queue, rank, deliver one
// batch, persist the remainder and the seen set.
func run(ctx context.Context, cfg *config.Config, logger *utils.Logger, notifier *notify.Notifier) (err error) {
	var seenStore storage.SeenStore = storage.NewSeenStore(cfg.SeenFile, logger)
	var pendingStore storage.PendingStore = storage.NewPendingStore(cfg.PendingFile, logger)

	seen := seenStore.Load()
	logger.Info("Loaded %d previously seen listings", seen.Size())

	// The seen set is persisted even when the run fails part-way, so
	// IDs already decided upon are never re-notified. An unexpected
	// panic is converted to an error and surfaced as a single alert.
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unexpected failure: %v\n%s", r, debug.Stack())
			notifier.Alert(ctx, fmt.Sprintf("🚨 591 爬蟲執行錯誤\n%v", r))
			err = fmt.Errorf("unexpected failure: %v", r)
		}
		if perr := seenStore.Save(seen); perr != nil {
			logger.Error("Failed to save seen IDs: %v", perr)
		}
	}()

	scraper := rent591.New(cfg, logger)
	if err := scraper.Start(ctx); err != nil {
		notifier.Alert(ctx, "🚨 591 爬蟲故障：無法啟動瀏覽器\n"+err.Error())
		return err
	}
	defer scraper.Stop()

	engine := services.NewFilterEngine(logger)

	var fresh []models.Listing
	for i, profile := range cfg.Profiles {
		items := scraper.FetchProfile(ctx, profile)

		records := make([]models.RawRecord, len(items))
		for j, it := range items {
			records[j] = it
		}
		fresh = append(fresh, engine.Select(records, seen)...)

		if i < len(cfg.Profiles)-1 {
			scraper.ProfileDelay()
		}
	}

	pending := pendingStore.Load()
	if len(pending) > 0 {
		logger.Info("Loaded %d pending listings from previous run", len(pending))
	}

	toSend := append(pending, fresh...)
	if len(toSend) == 0 {
		logger.Info("No new listings this run")
		if perr := pendingStore.Save(nil); perr != nil {
			logger.Error("Failed to clear pending queue: %v", perr)
		}
		return nil
	}

	services.Rank(toSend)
	logger.Info("%d listings queued for delivery (%d new + %d carried over)",
		len(toSend), len(fresh), len(pending))

	remainder := notifier.Deliver(ctx, toSend)
	if perr := pendingStore.Save(remainder); perr != nil {
		logger.Error("Failed to save pending queue: %v", perr)
	}

	return nil
}
