package domain_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/internal/memstore"
	"github.com/JaimeStill/million/pkg/result"
)

func TestNewProperty(t *testing.T) {
	owner := uuid.New()

	p, err := domain.NewProperty(owner, "Casa", "", "Calle 1", 100, 2000)
	if err != nil {
		t.Fatalf("NewProperty: %v", err)
	}
	if p.OwnerID != owner || p.ID == uuid.Nil {
		t.Errorf("identity: %+v", p)
	}
	if !regexp.MustCompile(`^PROP-\d{8}-[0-9A-F]{8}$`).MatchString(p.CodeInternal) {
		t.Errorf("code format: %s", p.CodeInternal)
	}

	tests := []struct {
		name    string
		pname   string
		address string
		price   float64
		want    error
	}{
		{"blank name", "  ", "Calle 1", 1, domain.ErrNameRequired},
		{"blank address", "Casa", "", 1, domain.ErrAddressRequired},
		{"negative price", "Casa", "Calle 1", -1, domain.ErrNegativePrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewProperty(owner, tt.pname, "", tt.address, tt.price, 2000)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpdateDetailsIsAtomic(t *testing.T) {
	p, _ := domain.NewProperty(uuid.New(), "Casa", "d", "Calle 1", 100, 2000)
	before := *p

	if err := p.UpdateDetails("", "x", "y", 5, 2010); !errors.Is(err, domain.ErrNameRequired) {
		t.Fatalf("got %v", err)
	}
	if *p != before {
		t.Error("failed update should leave the property unchanged")
	}

	if err := p.UpdateDetails("Nueva", "x", "y", 5, 2010); err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Name != "Nueva" || p.OwnerID != before.OwnerID || p.CodeInternal != before.CodeInternal {
		t.Errorf("update: %+v", p)
	}

	if err := p.ChangePrice(-1); !errors.Is(err, domain.ErrNegativePrice) {
		t.Errorf("negative price: %v", err)
	}
}

func TestNewUser(t *testing.T) {
	owner := uuid.New()

	u, err := domain.NewUser("  Owner@Test.COM ", "hash", domain.RoleOwner, "A", "B", &owner)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if u.Email != "owner@test.com" || !u.IsActive {
		t.Errorf("user: %+v", u)
	}

	tests := []struct {
		name    string
		role    domain.Role
		ownerID *uuid.UUID
		want    error
	}{
		{"unknown role", domain.Role("Admin"), nil, domain.ErrRoleInvalid},
		{"owner without link", domain.RoleOwner, nil, domain.ErrOwnerLinkRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewUser("a@b.c", "hash", tt.role, "A", "B", tt.ownerID)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := domain.NewUser("c@d.e", "hash", domain.RoleClient, "A", "B", nil); err != nil {
		t.Errorf("client without owner link: %v", err)
	}
}

func TestNewPropertyTrace(t *testing.T) {
	id := uuid.New()
	if _, err := domain.NewPropertyTrace(id, time.Now(), "Venta", 1, -1); !errors.Is(err, domain.ErrNegativeTax) {
		t.Errorf("negative tax: %v", err)
	}
	if _, err := domain.NewPropertyTrace(id, time.Now(), "Venta", -1, 0); !errors.Is(err, domain.ErrNegativeValue) {
		t.Errorf("negative value: %v", err)
	}
	if _, err := domain.NewPropertyImage(id, " ", true); !errors.Is(err, domain.ErrFileRequired) {
		t.Errorf("blank file: %v", err)
	}
}

func TestAuthorizeProperty(t *testing.T) {
	ctx := context.Background()
	repos := memstore.New().Repositories()

	owner, other := uuid.New(), uuid.New()
	p, _ := domain.NewProperty(owner, "Casa", "", "Calle 1", 100, 2000)
	repos.Properties.Add(ctx, p)

	tests := []struct {
		name   string
		actor  domain.Actor
		id     uuid.UUID
		status int
	}{
		{"no owner claim", domain.Actor{UserID: uuid.New()}, p.ID, http.StatusUnauthorized},
		{"no owner claim on missing property", domain.Actor{UserID: uuid.New()}, uuid.New(), http.StatusUnauthorized},
		{"missing property", domain.Actor{UserID: uuid.New(), OwnerID: &owner}, uuid.New(), http.StatusNotFound},
		{"foreign owner", domain.Actor{UserID: uuid.New(), OwnerID: &other}, p.ID, http.StatusForbidden},
		{"owner", domain.Actor{UserID: uuid.New(), OwnerID: &owner}, p.ID, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fail, err := domain.AuthorizeProperty[result.Void](ctx, tt.actor, repos.Properties, tt.id, "denied")
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if tt.status == 0 {
				if fail != nil || got == nil || got.ID != p.ID {
					t.Errorf("expected the property, got fail=%v", fail)
				}
				return
			}
			if fail == nil {
				t.Fatal("expected a failure")
			}
			if code := result.StatusCode(*fail); code != tt.status {
				t.Errorf("status: got %d, want %d", code, tt.status)
			}
		})
	}
}

func TestActorContext(t *testing.T) {
	if _, ok := domain.ActorFromContext(context.Background()); ok {
		t.Error("empty context should carry no actor")
	}

	a := domain.Actor{UserID: uuid.New(), Role: domain.RoleClient}
	got, ok := domain.ActorFromContext(domain.ContextWithActor(context.Background(), a))
	if !ok || got.UserID != a.UserID || !got.IsClient() || !got.Authenticated() {
		t.Errorf("actor round trip: %+v", got)
	}
}
