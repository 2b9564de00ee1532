package config

import "testing"

func TestDefaultStoreSettings(t *testing.T) {
	cfg := Default()
	if cfg.Store.TaxRate != "0.19" {
		t.Fatalf("unexpected tax rate: %s", cfg.Store.TaxRate)
	}
	if cfg.Store.LowInventoryThreshold != 10 {
		t.Fatalf("unexpected low inventory threshold: %d", cfg.Store.LowInventoryThreshold)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("unexpected database driver: %s", cfg.Database.Driver)
	}
	if cfg.Upload.Provider != "local" {
		t.Fatalf("unexpected upload provider: %s", cfg.Upload.Provider)
	}
	if len(cfg.Queue.Queues) != 2 {
		t.Fatalf("unexpected queue weights: %+v", cfg.Queue.Queues)
	}
}

func TestInsecureDefaults(t *testing.T) {
	cfg := Default()
	keys := cfg.InsecureDefaults()
	if len(keys) != 2 {
		t.Fatalf("expected both jwt secrets reported, got %v", keys)
	}

	cfg.JWT.SecretKey = "a-real-secret"
	cfg.UserJWT.SecretKey = "another-real-secret"
	if keys := cfg.InsecureDefaults(); len(keys) != 0 {
		t.Fatalf("expected no insecure keys, got %v", keys)
	}
}
