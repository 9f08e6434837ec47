package seed_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/JaimeStill/million/internal/memstore"
	"github.com/JaimeStill/million/internal/seed"
	"github.com/JaimeStill/million/pkg/password"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	repos := memstore.New().Repositories()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	seeded, err := seed.Run(ctx, repos, password.Hasher{}, logger)
	if err != nil || !seeded {
		t.Fatalf("first run: seeded=%v err=%v", seeded, err)
	}

	owners, _ := repos.Owners.GetAll(ctx)
	if len(owners) != 3 {
		t.Errorf("owners: got %d, want 3", len(owners))
	}
	properties, _ := repos.Properties.GetAll(ctx)
	if len(properties) != 6 {
		t.Errorf("properties: got %d, want 6", len(properties))
	}

	user, _ := repos.Users.GetByEmail(ctx, seed.DemoEmail)
	if user == nil || user.OwnerID == nil {
		t.Fatal("demo user should exist and link to an owner")
	}
	if !password.Verify(seed.DemoPassword, user.PasswordHash) {
		t.Error("demo password should verify against the stored hash")
	}

	mine, _ := repos.Properties.GetByOwnerID(ctx, *user.OwnerID)
	if len(mine) != 3 {
		t.Errorf("demo owner properties: got %d, want 3", len(mine))
	}

	seeded, err = seed.Run(ctx, repos, password.Hasher{}, logger)
	if err != nil || seeded {
		t.Errorf("second run should skip: seeded=%v err=%v", seeded, err)
	}
}
