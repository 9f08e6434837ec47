package traces_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/internal/memstore"
	"github.com/JaimeStill/million/internal/traces"
	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/result"
	"github.com/JaimeStill/million/pkg/routes"
)

type fixedActor struct{ actor domain.Actor }

func (f *fixedActor) Actor(context.Context) domain.Actor { return f.actor }

func setup(t *testing.T) (*dispatch.Dispatcher, domain.Repositories, *fixedActor, *domain.Property) {
	t.Helper()
	ctx := context.Background()
	repos := memstore.New().Repositories()

	owner, _ := domain.NewOwner("Owner", "Street 1", "", time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC))
	repos.Owners.Add(ctx, owner)
	prop, _ := domain.NewProperty(owner.ID, "Loft", "", "Main St", 1000, 2000)
	repos.Properties.Add(ctx, prop)

	actors := &fixedActor{actor: domain.Actor{UserID: uuid.New(), Role: domain.RoleOwner, OwnerID: &owner.ID}}

	d := dispatch.New()
	traces.New(repos.Traces, repos.Properties, actors, slog.New(slog.DiscardHandler)).Register(d)
	if err := d.Require(traces.Requests()...); err != nil {
		t.Fatalf("Require: %v", err)
	}
	return d, repos, actors, prop
}

func TestAddTraceNewestFirst(t *testing.T) {
	d, _, _, prop := setup(t)
	ctx := context.Background()

	older := time.Now().AddDate(-2, 0, 0)
	newer := time.Now().AddDate(-1, 0, 0)
	for _, date := range []time.Time{older, newer} {
		res := dispatch.Send[uuid.UUID](ctx, d, traces.AddPropertyTrace{
			PropertyID: prop.ID,
			DateSale:   date,
			Name:       "Sale",
			Value:      500,
		})
		if !res.Succeeded() {
			t.Fatalf("add failed: %s", result.Message(res))
		}
	}

	res := dispatch.Send[[]traces.View](ctx, d, traces.GetPropertyTraces{PropertyID: prop.ID})
	views, ok := res.Unwrap()
	if !ok || len(views) != 2 {
		t.Fatalf("traces = %v, %s", views, result.Message(res))
	}
	if !views[0].DateSale.Equal(newer) {
		t.Errorf("first trace date = %v, want %v", views[0].DateSale, newer)
	}
}

func TestAddTraceValidation(t *testing.T) {
	d, repos, _, prop := setup(t)
	ctx := context.Background()

	res := dispatch.Send[uuid.UUID](ctx, d, traces.AddPropertyTrace{
		PropertyID: prop.ID,
		DateSale:   time.Now().Add(72 * time.Hour),
		Name:       strings.Repeat("n", 201),
		Value:      0,
		Tax:        -1,
	})

	want := []string{
		"Trace name cannot exceed 200 characters",
		"Value must be greater than zero",
		"Tax cannot be negative",
		"Sale date cannot be in the future",
	}
	errs := res.Errors()
	if len(errs) != len(want) {
		t.Fatalf("errors = %v, want %v", errs, want)
	}
	for i, e := range errs {
		if e.Message != want[i] {
			t.Errorf("error[%d] = %q, want %q", i, e.Message, want[i])
		}
	}

	stored, _ := repos.Traces.GetByPropertyID(ctx, prop.ID)
	if len(stored) != 0 {
		t.Errorf("traces stored after failed validation: %d", len(stored))
	}
}

func TestAddTraceForeignProperty(t *testing.T) {
	d, _, actors, prop := setup(t)
	other := uuid.New()
	actors.actor.OwnerID = &other

	res := dispatch.Send[uuid.UUID](context.Background(), d, traces.AddPropertyTrace{
		PropertyID: prop.ID,
		DateSale:   time.Now().AddDate(0, -1, 0),
		Name:       "Sale",
		Value:      10,
	})
	if got := result.StatusCode(res); got != http.StatusForbidden {
		t.Errorf("status = %d, want 403", got)
	}
	if got := result.Message(res); got != "You can only add traces to your own properties" {
		t.Errorf("message = %q", got)
	}
}

func TestListTracesEndpoint(t *testing.T) {
	d, _, _, _ := setup(t)
	logger := slog.New(slog.DiscardHandler)

	mux := http.NewServeMux()
	routes.Register(mux, traces.NewHandler(d, logger, func(h http.HandlerFunc) http.HandlerFunc { return h }).Routes())

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"malformed id", "/properties/not-a-uuid/traces", http.StatusBadRequest},
		{"missing property", "/properties/" + uuid.NewString() + "/traces", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}
