package properties_test

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/internal/memstore"
	"github.com/JaimeStill/million/internal/properties"
	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/pagination"
	"github.com/JaimeStill/million/pkg/result"
	"github.com/JaimeStill/million/pkg/routes"
)

type fixedActor struct{ actor domain.Actor }

func (f *fixedActor) Actor(context.Context) domain.Actor { return f.actor }

func asOwner(id uuid.UUID) domain.Actor {
	return domain.Actor{UserID: uuid.New(), Role: domain.RoleOwner, OwnerID: &id}
}

var pageConfig = pagination.Config{DefaultPageSize: 10, MaxPageSize: 50}

type fixture struct {
	d      *dispatch.Dispatcher
	repos  domain.Repositories
	actors *fixedActor
	owner  *domain.Owner
}

func setup(t *testing.T) *fixture {
	t.Helper()
	return setupWith(t, memstore.New().Repositories())
}

func setupWith(t *testing.T, repos domain.Repositories) *fixture {
	t.Helper()

	owner, _ := domain.NewOwner("Ana Torres", "Calle 1", "", time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC))
	if err := repos.Owners.Add(context.Background(), owner); err != nil {
		t.Fatalf("add owner: %v", err)
	}

	actors := &fixedActor{actor: asOwner(owner.ID)}
	d := dispatch.New()
	properties.New(repos, actors, pageConfig, slog.New(slog.DiscardHandler)).Register(d)
	if err := d.Require(properties.Requests()...); err != nil {
		t.Fatalf("Require: %v", err)
	}

	return &fixture{d: d, repos: repos, actors: actors, owner: owner}
}

func (f *fixture) create(t *testing.T, name string, price float64) uuid.UUID {
	t.Helper()
	res := dispatch.Send[uuid.UUID](context.Background(), f.d, properties.CreateProperty{
		Name:    name,
		Address: "Main St " + name,
		Price:   price,
		Year:    2015,
	})
	id, ok := res.Unwrap()
	if !ok {
		t.Fatalf("create %s: %s", name, result.Message(res))
	}
	return id
}

func TestCreateThenListByOwner(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res := dispatch.Send[uuid.UUID](ctx, f.d, properties.CreateProperty{
		Name:    "Casa Azul",
		Address: "Carrera 7",
		Price:   250000,
		Year:    2010,
		Images:  []string{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"},
	})
	id, ok := res.Unwrap()
	if !ok {
		t.Fatalf("create: %s", result.Message(res))
	}

	list := dispatch.Send[[]properties.Summary](ctx, f.d, properties.GetPropertiesByOwnerID{OwnerID: f.owner.ID})
	summaries, ok := list.Unwrap()
	if !ok || len(summaries) != 1 {
		t.Fatalf("owner listing = %v, %s", summaries, result.Message(list))
	}

	got := summaries[0]
	if got.ID != id || got.OwnerName != "Ana Torres" {
		t.Errorf("summary = %+v", got)
	}
	if len(got.Images) != 2 || !got.Images[0].Enabled {
		t.Errorf("images = %+v", got.Images)
	}
	if !strings.HasPrefix(got.CodeInternal, "PROP-") {
		t.Errorf("code = %q", got.CodeInternal)
	}
}

func TestCreateRequiresOwner(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ghost := uuid.New()

	tests := []struct {
		name    string
		actor   domain.Actor
		status  int
		message string
	}{
		{
			name:    "no owner claim",
			actor:   domain.Actor{UserID: uuid.New(), Role: domain.RoleClient},
			status:  http.StatusUnauthorized,
			message: "Owner ID not found in token",
		},
		{
			name:    "owner record missing",
			actor:   asOwner(ghost),
			status:  http.StatusBadRequest,
			message: fmt.Sprintf("Owner with ID %s does not exist", ghost),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.actors.actor = tt.actor
			res := dispatch.Send[uuid.UUID](ctx, f.d, properties.CreateProperty{
				Name: "X", Address: "Y", Price: 1, Year: 2000,
			})
			if got := result.StatusCode(res); got != tt.status {
				t.Errorf("status = %d, want %d", got, tt.status)
			}
			if got := result.Message(res); got != tt.message {
				t.Errorf("message = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestCreateValidationShortCircuits(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res := dispatch.Send[uuid.UUID](ctx, f.d, properties.CreateProperty{
		Name:  strings.Repeat("n", 201),
		Price: 0,
		Year:  1700,
	})

	want := []string{
		"Property name cannot exceed 200 characters",
		"Address is required",
		"Price must be greater than 0",
		"Year must be greater than 1800",
	}
	errs := res.Errors()
	if len(errs) != len(want) {
		t.Fatalf("errors = %v, want %v", errs, want)
	}
	for i, e := range errs {
		if e.Message != want[i] || e.Kind != result.KindValidation {
			t.Errorf("error[%d] = %+v, want %q", i, e, want[i])
		}
	}

	all, _ := f.repos.Properties.GetAll(ctx)
	if len(all) != 0 {
		t.Errorf("properties stored after failed validation: %d", len(all))
	}
}

func TestDeleteByOtherOwnerIsForbidden(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id := f.create(t, "Loft", 1000)

	f.actors.actor = asOwner(uuid.New())
	res := dispatch.Send[result.Void](ctx, f.d, properties.DeleteProperty{PropertyID: id})

	if got := result.StatusCode(res); got != http.StatusForbidden {
		t.Errorf("status = %d, want 403", got)
	}
	if got := result.Message(res); got != "You can only delete your own properties" {
		t.Errorf("message = %q", got)
	}
	if p, _ := f.repos.Properties.GetByID(ctx, id); p == nil {
		t.Error("property deleted by another owner")
	}
}

func TestDeleteIsIdempotentlyNotFound(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id := f.create(t, "Loft", 1000)

	first := dispatch.Send[result.Void](ctx, f.d, properties.DeleteProperty{PropertyID: id})
	if !first.Succeeded() {
		t.Fatalf("first delete: %s", result.Message(first))
	}

	second := dispatch.Send[result.Void](ctx, f.d, properties.DeleteProperty{PropertyID: id})
	if got := result.StatusCode(second); got != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", got)
	}
}

func TestUpdatePriceKeepsOwner(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id := f.create(t, "Loft", 1000)

	for range 2 {
		res := dispatch.Send[result.Void](ctx, f.d, properties.UpdatePropertyPrice{PropertyID: id, NewPrice: 1500})
		if !res.Succeeded() {
			t.Fatalf("update price: %s", result.Message(res))
		}
	}

	p, _ := f.repos.Properties.GetByID(ctx, id)
	if p.Price != 1500 || p.OwnerID != f.owner.ID {
		t.Errorf("property = %+v", p)
	}

	res := dispatch.Send[result.Void](ctx, f.d, properties.UpdatePropertyPrice{PropertyID: id, NewPrice: -1})
	if got := result.Message(res); got != "Price must be greater than or equal to zero." {
		t.Errorf("negative price message = %q", got)
	}
}

func TestSearchByPriceRange(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.create(t, "Cheap", 100)
	mid := f.create(t, "Middle", 500)
	f.create(t, "Pricey", 900)

	lo, hi := 400.0, 600.0
	res := dispatch.Send[pagination.PageResult[properties.Summary]](ctx, f.d, properties.SearchProperties{
		MinPrice:    &lo,
		MaxPrice:    &hi,
		PageRequest: pagination.PageRequest{Page: 1, PageSize: 10},
	})
	page, ok := res.Unwrap()
	if !ok {
		t.Fatalf("search: %s", result.Message(res))
	}
	if page.TotalCount != 1 || len(page.Items) != 1 || page.Items[0].ID != mid {
		t.Errorf("page = %+v", page)
	}
}

func TestSearchPagination(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for i := range 25 {
		f.create(t, fmt.Sprintf("House %02d", i), float64(1000+i))
	}

	tests := []struct {
		page, size int
		items      int
		next, prev bool
	}{
		{1, 10, 10, true, false},
		{3, 10, 5, false, true},
		{4, 10, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			res := dispatch.Send[pagination.PageResult[properties.Summary]](ctx, f.d, properties.SearchProperties{
				PageRequest: pagination.PageRequest{Page: tt.page, PageSize: tt.size},
			})
			page, ok := res.Unwrap()
			if !ok {
				t.Fatalf("search: %s", result.Message(res))
			}
			if page.TotalCount != 25 || len(page.Items) != tt.items {
				t.Errorf("total = %d, items = %d", page.TotalCount, len(page.Items))
			}
			if page.HasNextPage != tt.next || page.HasPreviousPage != tt.prev {
				t.Errorf("next = %v, prev = %v", page.HasNextPage, page.HasPreviousPage)
			}
		})
	}
}

func TestSearchUnknownOwner(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	orphan, _ := domain.NewProperty(uuid.New(), "Orphan", "", "Nowhere", 10, 2000)
	f.repos.Properties.Add(ctx, orphan)

	res := dispatch.Send[pagination.PageResult[properties.Summary]](ctx, f.d, properties.SearchProperties{
		PageRequest: pagination.PageRequest{Page: 1, PageSize: 10},
	})
	page, _ := res.Unwrap()
	if len(page.Items) != 1 || page.Items[0].OwnerName != properties.UnknownOwner {
		t.Errorf("items = %+v", page.Items)
	}
}

func TestSearchValidation(t *testing.T) {
	f := setup(t)
	lo, hi := 500.0, 100.0

	res := dispatch.Send[pagination.PageResult[properties.Summary]](context.Background(), f.d, properties.SearchProperties{
		MinPrice:    &lo,
		MaxPrice:    &hi,
		PageRequest: pagination.PageRequest{Page: 0, PageSize: 51},
	})

	want := []string{
		"Minimum price must be less than or equal to maximum price.",
		"Page number must be greater than or equal to 1.",
		"Page size must not exceed 50.",
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
}

type collidingRepo struct {
	domain.PropertyRepository
	collisions int
}

func (c *collidingRepo) CodeInternalExists(ctx context.Context, code string) (bool, error) {
	if c.collisions > 0 {
		c.collisions--
		return true, nil
	}
	return c.PropertyRepository.CodeInternalExists(ctx, code)
}

func TestCreateRetriesCodeCollisions(t *testing.T) {
	repos := memstore.New().Repositories()
	colliding := &collidingRepo{PropertyRepository: repos.Properties, collisions: 2}
	repos.Properties = colliding
	f := setupWith(t, repos)

	f.create(t, "Loft", 1000)
	if colliding.collisions != 0 {
		t.Errorf("remaining collisions = %d", colliding.collisions)
	}

	colliding.collisions = 10
	res := dispatch.Send[uuid.UUID](context.Background(), f.d, properties.CreateProperty{
		Name: "Second", Address: "Elsewhere", Price: 1, Year: 2000,
	})
	if res.Succeeded() {
		t.Error("create succeeded with every code taken")
	}
}

func TestHandlerEnvelopes(t *testing.T) {
	f := setup(t)
	id := f.create(t, "Loft", 1000)
	passthrough := func(h http.HandlerFunc) http.HandlerFunc { return h }

	mux := http.NewServeMux()
	routes.Register(mux, properties.NewHandler(f.d, slog.New(slog.DiscardHandler), passthrough, pageConfig).Routes())

	t.Run("update message", func(t *testing.T) {
		body := `{"name":"Loft 2","address":"Main St","price":1200,"year":2016}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("PUT", "/properties/"+id.String(), strings.NewReader(body)))

		var env struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		json.NewDecoder(rec.Body).Decode(&env)
		if rec.Code != http.StatusOK || env.Message != properties.MsgUpdated {
			t.Errorf("status = %d, envelope = %+v", rec.Code, env)
		}
	})

	t.Run("search page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/properties?name=loft&pageSize=5", nil))

		var env struct {
			Data       []properties.Summary `json:"data"`
			TotalCount int                  `json:"totalCount"`
			PageSize   int                  `json:"pageSize"`
		}
		json.NewDecoder(rec.Body).Decode(&env)
		if rec.Code != http.StatusOK || env.TotalCount != 1 || env.PageSize != 5 || len(env.Data) != 1 {
			t.Errorf("status = %d, envelope = %+v", rec.Code, env)
		}
	})

	t.Run("malformed price filter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/properties?minPrice=cheap", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("owner listing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/owners/"+uuid.NewString()+"/properties", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestOwnershipChecksRunInOrder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id := f.create(t, "Loft", 1000)
	missing := uuid.New()
	client := domain.Actor{UserID: uuid.New(), Role: domain.RoleClient}

	writes := []struct {
		name   string
		denied string
		send   func(id uuid.UUID) result.Result[result.Void]
	}{
		{
			name:   "update",
			denied: "You can only update your own properties",
			send: func(id uuid.UUID) result.Result[result.Void] {
				return dispatch.Send[result.Void](ctx, f.d, properties.UpdateProperty{
					PropertyID: id, Name: "Taken", Address: "Elsewhere", Price: 1, Year: 2000,
				})
			},
		},
		{
			name:   "update price",
			denied: "You can only update the price of your own properties",
			send: func(id uuid.UUID) result.Result[result.Void] {
				return dispatch.Send[result.Void](ctx, f.d, properties.UpdatePropertyPrice{PropertyID: id, NewPrice: 1})
			},
		},
		{
			name:   "delete",
			denied: "You can only delete your own properties",
			send: func(id uuid.UUID) result.Result[result.Void] {
				return dispatch.Send[result.Void](ctx, f.d, properties.DeleteProperty{PropertyID: id})
			},
		},
	}

	cases := []struct {
		name    string
		actor   domain.Actor
		target  uuid.UUID
		status  int
		message string
	}{
		{"no claim on missing property", client, missing, http.StatusUnauthorized, "Owner ID not found in token"},
		{"no claim on existing property", client, id, http.StatusUnauthorized, "Owner ID not found in token"},
		{"owner on missing property", asOwner(uuid.New()), missing, http.StatusNotFound, fmt.Sprintf("Property with ID %s not found", missing)},
		{"other owner", asOwner(uuid.New()), id, http.StatusForbidden, ""},
	}

	for _, w := range writes {
		for _, tt := range cases {
			t.Run(w.name+"/"+tt.name, func(t *testing.T) {
				f.actors.actor = tt.actor
				res := w.send(tt.target)

				if got := result.StatusCode(res); got != tt.status {
					t.Errorf("status = %d, want %d", got, tt.status)
				}
				want := cmp.Or(tt.message, w.denied)
				if got := result.Message(res); got != want {
					t.Errorf("message = %q, want %q", got, want)
				}

				p, _ := f.repos.Properties.GetByID(ctx, id)
				if p == nil || p.Name != "Loft" || p.Price != 1000 || p.OwnerID != f.owner.ID {
					t.Errorf("property changed by a rejected request: %+v", p)
				}
			})
		}
	}
}

func TestSearchRejectsOverflowingPage(t *testing.T) {
	f := setup(t)
	f.create(t, "Loft", 1000)

	res := dispatch.Send[pagination.PageResult[properties.Summary]](context.Background(), f.d, properties.SearchProperties{
		PageRequest: pagination.PageRequest{Page: math.MaxInt/50 + 2, PageSize: 50},
	})
	if got := result.StatusCode(res); got != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", got)
	}
	if got := result.Message(res); got != "Page number is too large for the requested page size." {
		t.Errorf("message = %q", got)
	}
}

func TestSearchIsRepeatable(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for i := range 7 {
		f.create(t, fmt.Sprintf("Casa %d", i), float64(100*i))
	}

	name := "casa"
	req := properties.SearchProperties{
		Name:        &name,
		PageRequest: pagination.PageRequest{Page: 2, PageSize: 3},
	}

	first, ok := dispatch.Send[pagination.PageResult[properties.Summary]](ctx, f.d, req).Unwrap()
	if !ok {
		t.Fatal("first search failed")
	}
	for range 3 {
		again, _ := dispatch.Send[pagination.PageResult[properties.Summary]](ctx, f.d, req).Unwrap()
		if again.TotalCount != first.TotalCount || len(again.Items) != len(first.Items) {
			t.Fatalf("total = %d, items = %d; want %d, %d", again.TotalCount, len(again.Items), first.TotalCount, len(first.Items))
		}
		for i := range again.Items {
			if again.Items[i].ID != first.Items[i].ID {
				t.Errorf("item %d = %s, want %s", i, again.Items[i].ID, first.Items[i].ID)
			}
		}
	}
}

// strayImageRepo slips an image for another property into every insert,
// so the store rejects the batch after the property row is staged.
type strayImageRepo struct {
	domain.PropertyRepository
}

func (r strayImageRepo) Add(ctx context.Context, p *domain.Property, images ...domain.PropertyImage) error {
	stray, _ := domain.NewPropertyImage(uuid.New(), "stray.png", true)
	return r.PropertyRepository.Add(ctx, p, append(images, *stray)...)
}

func TestCreateFailureWritesNothing(t *testing.T) {
	repos := memstore.New().Repositories()
	repos.Properties = strayImageRepo{PropertyRepository: repos.Properties}
	f := setupWith(t, repos)
	ctx := context.Background()

	res := dispatch.Send[uuid.UUID](ctx, f.d, properties.CreateProperty{
		Name:    "Casa",
		Address: "Calle 1",
		Price:   1000,
		Year:    2010,
		Images:  []string{"https://cdn.example.com/1.jpg"},
	})
	if res.Succeeded() {
		t.Fatal("create succeeded with a rejected image")
	}
	if got := result.Message(res); !strings.HasPrefix(got, "Error creating property: ") {
		t.Errorf("message = %q", got)
	}

	if props, _ := repos.Properties.GetByOwnerID(ctx, f.owner.ID); len(props) != 0 {
		t.Errorf("properties left for owner = %d", len(props))
	}
}

// orderedLookups records image lookups and flags any that overlap.
type orderedLookups struct {
	domain.PropertyImageRepository
	inflight atomic.Int32
	overlap  atomic.Bool
	seen     []uuid.UUID
}

func (o *orderedLookups) GetByPropertyID(ctx context.Context, id uuid.UUID) ([]domain.PropertyImage, error) {
	if o.inflight.Add(1) > 1 {
		o.overlap.Store(true)
	}
	defer o.inflight.Add(-1)

	time.Sleep(time.Millisecond)
	o.seen = append(o.seen, id)
	return o.PropertyImageRepository.GetByPropertyID(ctx, id)
}

func TestSearchEnrichesInOrder(t *testing.T) {
	repos := memstore.New().Repositories()
	lookups := &orderedLookups{PropertyImageRepository: repos.Images}
	repos.Images = lookups
	f := setupWith(t, repos)
	ctx := context.Background()

	for i := range 5 {
		f.create(t, fmt.Sprintf("Casa %d", i), 100)
	}
	lookups.seen = nil

	page, ok := dispatch.Send[pagination.PageResult[properties.Summary]](ctx, f.d, properties.SearchProperties{
		PageRequest: pagination.PageRequest{Page: 1, PageSize: 5},
	}).Unwrap()
	if !ok {
		t.Fatal("search failed")
	}

	if lookups.overlap.Load() {
		t.Error("image lookups overlapped within one request")
	}
	if len(lookups.seen) != len(page.Items) {
		t.Fatalf("lookups = %d, items = %d", len(lookups.seen), len(page.Items))
	}
	for i, item := range page.Items {
		if lookups.seen[i] != item.ID {
			t.Errorf("lookup %d = %s, want %s", i, lookups.seen[i], item.ID)
		}
	}
}
