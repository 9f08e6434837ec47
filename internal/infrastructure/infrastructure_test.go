package infrastructure_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/JaimeStill/million/internal/config"
	"github.com/JaimeStill/million/internal/infrastructure"
	"github.com/JaimeStill/million/pkg/database"
	"github.com/JaimeStill/million/pkg/storage"
)

func validConfig(t *testing.T, mode string) *config.Config {
	return &config.Config{
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "million",
			User:            "million",
			Password:        "million",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			Provider:      storage.ProviderLocal,
			LocalPath:     t.TempDir(),
			BaseURL:       "http://localhost:8080",
			MaxUploadSize: "10MB",
		},
		Log:     config.LogConfig{Format: config.LogFormatText, Level: "info"},
		Store:   config.StoreConfig{Mode: mode},
		Version: "0.1.0",
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		mode   string
		wantDB bool
	}{
		{config.StorePostgres, true},
		{config.StoreMemory, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			infra, err := infrastructure.New(validConfig(t, tt.mode))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			if infra.Lifecycle == nil || infra.Logger == nil || infra.Storage == nil || infra.Metrics == nil {
				t.Fatalf("infrastructure incomplete: %+v", infra)
			}
			if (infra.Database != nil) != tt.wantDB {
				t.Errorf("database present = %v, want %v", infra.Database != nil, tt.wantDB)
			}
			if infra.Database != nil {
				infra.Database.Connection().Close()
			}
		})
	}
}

func TestMemoryModeReadyWithoutDatabase(t *testing.T) {
	infra, err := infrastructure.New(validConfig(t, config.StoreMemory))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	infra.Lifecycle.WaitForStartup()
	if !infra.Lifecycle.Ready() {
		t.Errorf("should be ready: %v", infra.Lifecycle.Status())
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{config.LogFormatText, "msg=hello"},
		{config.LogFormatJSON, `"msg":"hello"`},
		{config.LogFormatColor, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := infrastructure.NewLogger(&config.LogConfig{Format: tt.format, Level: "warn"}, &buf)

			logger.Info("hidden")
			logger.Warn("hello")

			out := buf.String()
			if strings.Contains(out, "hidden") {
				t.Error("info should be filtered at warn level")
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q should contain %q", out, tt.want)
			}
		})
	}
}

func TestNewInvalidStorageConfig(t *testing.T) {
	cfg := validConfig(t, config.StoreMemory)
	cfg.Storage.Provider = "ftp"

	if _, err := infrastructure.New(cfg); err == nil {
		t.Fatal("expected error for unknown storage provider")
	}
}
