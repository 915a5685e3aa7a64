package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "")
	t.Setenv("SALE_TAX_RATE", "")
	t.Setenv("REPORT_TIMEZONE", "")

	cfg := Load()
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, "0.105", cfg.SaleTaxRate.String())
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "250ms")
	t.Setenv("DELIVERY_TIMEOUT", "1s")
	t.Setenv("SALE_TAX_RATE", "0.21")
	t.Setenv("STORE_DRIVER", "memory")

	cfg := Load()
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, time.Second, cfg.DeliveryTimeout)
	assert.Equal(t, "0.21", cfg.SaleTaxRate.String())
	assert.Equal(t, "memory", cfg.StoreDriver)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "-3s")
	t.Setenv("SALE_TAX_RATE", "abc")
	t.Setenv("REPORT_TIMEZONE", "Mars/Olympus")

	cfg := Load()
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, "0.105", cfg.SaleTaxRate.String())
	assert.Equal(t, time.UTC, cfg.Location())
}
