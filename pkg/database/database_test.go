package database_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/JaimeStill/million/pkg/database"
)

func unreachable() *database.Config {
	return &database.Config{
		Host:            "127.0.0.1",
		Port:            1,
		Name:            "million",
		User:            "million",
		SSLMode:         "disable",
		MaxOpenConns:    42,
		MaxIdleConns:    7,
		ConnMaxLifetime: "10m",
		ConnTimeout:     "500ms",
	}
}

func TestNewIsLazy(t *testing.T) {
	sys, err := database.New(unreachable(), slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	conn := sys.Connection()
	defer conn.Close()

	if got := conn.Stats().MaxOpenConnections; got != 42 {
		t.Errorf("MaxOpenConnections = %d, want 42", got)
	}
	if sys.Ready() {
		t.Error("system should not be ready before a successful check")
	}
}

func TestCheckUnreachable(t *testing.T) {
	sys, err := database.New(unreachable(), slog.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sys.Connection().Close()

	err = sys.Check(context.Background())
	if !errors.Is(err, database.ErrNotReady) {
		t.Fatalf("Check() = %v, want ErrNotReady", err)
	}
	if sys.Ready() {
		t.Error("failed check should leave the system not ready")
	}
}
