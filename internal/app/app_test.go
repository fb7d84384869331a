package app

import (
	"path/filepath"
	"testing"

	"github.com/berckan/domainwishlist/internal/config"
)

func TestApp_NewAndClose(t *testing.T) {
	cfg := config.Config{
		App:      config.AppConfig{Env: "test"},
		Checker:  config.CheckerConfig{Concurrency: 2},
		Settings: config.SettingsConfig{Path: filepath.Join(t.TempDir(), "settings.db")},
	}

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}
	if a.Router() == nil {
		t.Fatalf("\nwanted:\nrouter\ngot:\nnil")
	}
	if err := a.Close(); err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}
}
