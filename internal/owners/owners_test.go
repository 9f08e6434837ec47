package owners_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/internal/memstore"
	"github.com/JaimeStill/million/internal/owners"
	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/result"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setup(t *testing.T) (*dispatch.Dispatcher, domain.OwnerRepository) {
	t.Helper()
	repo := memstore.New().Repositories().Owners
	d := dispatch.New()
	owners.New(repo, discard()).Register(d)
	if err := d.Require(owners.Requests()...); err != nil {
		t.Fatalf("Require: %v", err)
	}
	return d, repo
}

func TestCreateOwner(t *testing.T) {
	d, repo := setup(t)
	ctx := context.Background()

	res := dispatch.Send[owners.View](ctx, d, owners.CreateOwner{
		Name:     "Ana Torres",
		Address:  "Calle 1",
		Birthday: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
	})

	view, ok := res.Unwrap()
	if !ok {
		t.Fatalf("create failed: %s", result.Message(res))
	}
	if view.Photo != "" {
		t.Errorf("photo = %q, want empty", view.Photo)
	}

	stored, err := repo.GetByID(ctx, view.ID)
	if err != nil || stored == nil {
		t.Fatalf("stored owner = %v, %v", stored, err)
	}
}

func TestCreateOwnerValidation(t *testing.T) {
	d, repo := setup(t)
	ctx := context.Background()

	long := strings.Repeat("p", 501)
	tests := []struct {
		name string
		req  owners.CreateOwner
		want []string
	}{
		{
			name: "empty",
			req:  owners.CreateOwner{},
			want: []string{"Name is required.", "Address is required.", "Birthday is required."},
		},
		{
			name: "future birthday and long photo",
			req: owners.CreateOwner{
				Name:     "A",
				Address:  "B",
				Photo:    &long,
				Birthday: time.Now().Add(48 * time.Hour),
			},
			want: []string{"Birthday must be in the past.", "Photo URL must not exceed 500 characters."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := dispatch.Send[owners.View](ctx, d, tt.req)
			if res.Succeeded() {
				t.Fatal("expected failure")
			}
			errs := res.Errors()
			if len(errs) != len(tt.want) {
				t.Fatalf("errors = %v, want %v", errs, tt.want)
			}
			for i, e := range errs {
				if e.Message != tt.want[i] || e.Kind != result.KindValidation {
					t.Errorf("error[%d] = %+v, want %q", i, e, tt.want[i])
				}
			}
		})
	}

	all, _ := repo.GetAll(ctx)
	if len(all) != 0 {
		t.Errorf("owners stored after failed validation: %d", len(all))
	}
}

func TestGetOwnerByIDNotFound(t *testing.T) {
	d, _ := setup(t)
	id := uuid.New()

	res := dispatch.Send[owners.View](context.Background(), d, owners.GetOwnerByID{ID: id})
	if got := result.StatusCode(res); got != http.StatusNotFound {
		t.Errorf("status = %d, want 404", got)
	}
	if got := result.Message(res); got != "Owner with ID "+id.String()+" not found" {
		t.Errorf("message = %q", got)
	}
}

type countingRepo struct {
	domain.OwnerRepository
	gets int
}

func (c *countingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	c.gets++
	return c.OwnerRepository.GetByID(ctx, id)
}

func TestCachedOwnerLookups(t *testing.T) {
	ctx := context.Background()
	inner := &countingRepo{OwnerRepository: memstore.New().Repositories().Owners}
	cached := owners.NewCached(inner, time.Minute)

	o, _ := domain.NewOwner("Owner", "Street", "", time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC))
	if err := cached.Add(ctx, o); err != nil {
		t.Fatalf("Add: %v", err)
	}

	for range 3 {
		got, err := cached.GetByID(ctx, o.ID)
		if err != nil || got == nil || got.Name != "Owner" {
			t.Fatalf("GetByID = %v, %v", got, err)
		}
	}
	if inner.gets != 1 {
		t.Errorf("inner lookups = %d, want 1", inner.gets)
	}

	o.Name = "Renamed"
	if err := cached.Update(ctx, o); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := cached.GetByID(ctx, o.ID)
	if got.Name != "Renamed" {
		t.Errorf("name after update = %q", got.Name)
	}
	if inner.gets != 2 {
		t.Errorf("inner lookups = %d, want 2", inner.gets)
	}

	missing, err := cached.GetByID(ctx, uuid.New())
	if missing != nil || err != nil {
		t.Errorf("missing owner = %v, %v", missing, err)
	}
}
