// Package app wires configuration into the stores and services shared by the
// binaries under cmd/.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/MikeMC777/pedidos-restaurante/internal/config"
	"github.com/MikeMC777/pedidos-restaurante/internal/order"
	"github.com/MikeMC777/pedidos-restaurante/internal/sale"
	"github.com/MikeMC777/pedidos-restaurante/internal/store"
)

// Stores bundles the repositories selected by STORE_DRIVER.
type Stores struct {
	Orders order.Repository
	Sales  sale.Repository
	close  func()
}

func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// RequireShared rejects drivers whose data another process cannot see.
// Binaries that only poll, like the notification worker, call it first.
func RequireShared(cfg config.Config) error {
	if cfg.StoreDriver == "memory" {
		return fmt.Errorf("STORE_DRIVER=memory is private to one process; this binary needs postgres")
	}
	return nil
}

// OpenStores connects the configured driver. The postgres driver also
// applies the schema.
func OpenStores(ctx context.Context, cfg config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case "memory":
		log.Printf("[store] using in-memory store; data is lost on exit")
		return &Stores{Orders: order.NewMemRepo(), Sales: sale.NewMemRepo()}, nil
	case "postgres", "":
		pool, err := store.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Stores{
			Orders: order.NewPGRepo(pool),
			Sales:  sale.NewPGRepo(pool),
			close:  pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (postgres|memory)", cfg.StoreDriver)
	}
}
