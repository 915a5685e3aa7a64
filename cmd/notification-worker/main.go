// Command notification-worker polls for ready orders, hands them to the
// configured delivery channel and records each hand-off once. Several
// workers may run against the same store.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/MikeMC777/pedidos-restaurante/internal/app"
	"github.com/MikeMC777/pedidos-restaurante/internal/config"
	"github.com/MikeMC777/pedidos-restaurante/internal/notify"
)

func main() {
	cfg := config.Load()
	if err := app.RequireShared(cfg); err != nil {
		log.Fatalf("store: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer stores.Close()

	d := notify.NewDeliverer(cfg.NotifyWebhookURL, cfg.NotifyWebhookSecret)
	tracker := notify.NewTracker(stores.Orders, d, cfg.DeliveryTimeout)

	log.Printf("notification-worker polling every %s", cfg.PollInterval)
	if err := tracker.Run(ctx, cfg.PollInterval); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("tracker: %v", err)
	}
	log.Printf("notification-worker stopped")
}
