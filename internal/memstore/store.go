// Package memstore provides process-local implementations of the domain
// repository contracts. It backs the memory store mode and the handler
// tests.
package memstore

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/pkg/pagination"
)

// Store holds every collection behind a single lock. Values are copied in
// and out so callers never alias stored records.
type Store struct {
	mu         sync.RWMutex
	properties map[uuid.UUID]domain.Property
	owners     map[uuid.UUID]domain.Owner
	images     map[uuid.UUID]domain.PropertyImage
	traces     map[uuid.UUID]domain.PropertyTrace
	users      map[uuid.UUID]domain.User
	// insertion order per collection
	imageOrder []uuid.UUID
	traceOrder []uuid.UUID
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		properties: make(map[uuid.UUID]domain.Property),
		owners:     make(map[uuid.UUID]domain.Owner),
		images:     make(map[uuid.UUID]domain.PropertyImage),
		traces:     make(map[uuid.UUID]domain.PropertyTrace),
		users:      make(map[uuid.UUID]domain.User),
	}
}

// Repositories returns the contract implementations backed by s.
func (s *Store) Repositories() domain.Repositories {
	return domain.Repositories{
		Properties: &Properties{s: s},
		Owners:     &Owners{s: s},
		Images:     &Images{s: s},
		Traces:     &Traces{s: s},
		Users:      &Users{s: s},
	}
}

// Properties implements domain.PropertyRepository.
type Properties struct{ s *Store }

func (r *Properties) GetByID(_ context.Context, id uuid.UUID) (*domain.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.properties[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *Properties) GetAll(ctx context.Context) ([]domain.Property, error) {
	return r.Search(ctx, domain.SearchCriteria{})
}

func (r *Properties) GetByOwnerID(_ context.Context, ownerID uuid.UUID) ([]domain.Property, error) {
	return r.filter(func(p domain.Property) bool { return p.OwnerID == ownerID }), nil
}

func (r *Properties) Search(_ context.Context, criteria domain.SearchCriteria) ([]domain.Property, error) {
	return r.filter(matcher(criteria)), nil
}

func (r *Properties) SearchPaged(
	_ context.Context,
	criteria domain.SearchCriteria,
	page pagination.PageRequest,
) ([]domain.Property, int, error) {
	all := r.filter(matcher(criteria))
	total := len(all)

	start := min(page.Offset(), total)
	end := start + min(max(page.PageSize, 0), total-start)

	return slices.Clone(all[start:end]), total, nil
}

func (r *Properties) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.properties[id]
	return ok, nil
}

func (r *Properties) CodeInternalExists(_ context.Context, code string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.properties {
		if p.CodeInternal == code {
			return true, nil
		}
	}
	return false, nil
}

// Add checks the same keys the schema enforces before writing anything, so
// a rejected insert leaves the store untouched.
func (r *Properties) Add(_ context.Context, p *domain.Property, images ...domain.PropertyImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.properties[p.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.properties {
		if existing.CodeInternal == p.CodeInternal {
			return domain.ErrDuplicate
		}
	}
	for _, img := range images {
		if img.PropertyID != p.ID {
			return domain.ErrMissingReference
		}
		if _, ok := r.s.images[img.ID]; ok {
			return domain.ErrDuplicate
		}
	}

	r.s.properties[p.ID] = *p
	for _, img := range images {
		r.s.images[img.ID] = img
		r.s.imageOrder = append(r.s.imageOrder, img.ID)
	}
	return nil
}

func (r *Properties) Update(_ context.Context, p *domain.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.properties[p.ID]; ok {
		r.s.properties[p.ID] = *p
	}
	return nil
}

func (r *Properties) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.properties[id]; !ok {
		return false, nil
	}
	delete(r.s.properties, id)

	// images and traces go with their property
	for imgID, img := range r.s.images {
		if img.PropertyID == id {
			delete(r.s.images, imgID)
		}
	}
	for traceID, t := range r.s.traces {
		if t.PropertyID == id {
			delete(r.s.traces, traceID)
		}
	}
	r.s.imageOrder = slices.DeleteFunc(r.s.imageOrder, func(v uuid.UUID) bool { _, ok := r.s.images[v]; return !ok })
	r.s.traceOrder = slices.DeleteFunc(r.s.traceOrder, func(v uuid.UUID) bool { _, ok := r.s.traces[v]; return !ok })
	return true, nil
}

func (r *Properties) filter(keep func(domain.Property) bool) []domain.Property {
	r.s.mu.RLock()
	out := make([]domain.Property, 0, len(r.s.properties))
	for _, p := range r.s.properties {
		if keep(p) {
			out = append(out, p)
		}
	}
	r.s.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.Property) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return out
}

func matcher(c domain.SearchCriteria) func(domain.Property) bool {
	name := foldedNeedle(c.Name)
	address := foldedNeedle(c.Address)

	return func(p domain.Property) bool {
		if name != "" && !strings.Contains(fold(p.Name), name) {
			return false
		}
		if address != "" && !strings.Contains(fold(p.Address), address) {
			return false
		}
		if c.MinPrice != nil && p.Price < *c.MinPrice {
			return false
		}
		if c.MaxPrice != nil && p.Price > *c.MaxPrice {
			return false
		}
		return true
	}
}

func foldedNeedle(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return ""
	}
	return fold(*s)
}

// Casers carry state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Owners implements domain.OwnerRepository.
type Owners struct{ s *Store }

func (r *Owners) GetByID(_ context.Context, id uuid.UUID) (*domain.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.owners[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *Owners) GetAll(_ context.Context) ([]domain.Owner, error) {
	r.s.mu.RLock()
	out := make([]domain.Owner, 0, len(r.s.owners))
	for _, o := range r.s.owners {
		out = append(out, o)
	}
	r.s.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.Owner) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}

func (r *Owners) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.owners[id]
	return ok, nil
}

func (r *Owners) Add(_ context.Context, o *domain.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.owners[o.ID] = *o
	return nil
}

func (r *Owners) Update(_ context.Context, o *domain.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.owners[o.ID]; ok {
		r.s.owners[o.ID] = *o
	}
	return nil
}

func (r *Owners) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.owners[id]; !ok {
		return false, nil
	}
	delete(r.s.owners, id)
	return true, nil
}

// Images implements domain.PropertyImageRepository.
type Images struct{ s *Store }

func (r *Images) GetByID(_ context.Context, id uuid.UUID) (*domain.PropertyImage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	img, ok := r.s.images[id]
	if !ok {
		return nil, nil
	}
	return &img, nil
}

func (r *Images) GetByPropertyID(_ context.Context, propertyID uuid.UUID) ([]domain.PropertyImage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.PropertyImage, 0)
	for _, id := range r.s.imageOrder {
		if img, ok := r.s.images[id]; ok && img.PropertyID == propertyID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r *Images) GetFirstEnabledByPropertyID(ctx context.Context, propertyID uuid.UUID) (*domain.PropertyImage, error) {
	all, _ := r.GetByPropertyID(ctx, propertyID)
	for _, img := range all {
		if img.Enabled {
			return &img, nil
		}
	}
	return nil, nil
}

func (r *Images) Add(_ context.Context, img *domain.PropertyImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.images[img.ID]; !ok {
		r.s.imageOrder = append(r.s.imageOrder, img.ID)
	}
	r.s.images[img.ID] = *img
	return nil
}

func (r *Images) Update(_ context.Context, img *domain.PropertyImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.images[img.ID]; ok {
		r.s.images[img.ID] = *img
	}
	return nil
}

func (r *Images) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.images[id]; !ok {
		return false, nil
	}
	delete(r.s.images, id)
	r.s.imageOrder = slices.DeleteFunc(r.s.imageOrder, func(v uuid.UUID) bool { return v == id })
	return true, nil
}

// Traces implements domain.PropertyTraceRepository.
type Traces struct{ s *Store }

func (r *Traces) GetByID(_ context.Context, id uuid.UUID) (*domain.PropertyTrace, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.traces[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// GetByPropertyID returns the history newest sale first.
func (r *Traces) GetByPropertyID(_ context.Context, propertyID uuid.UUID) ([]domain.PropertyTrace, error) {
	r.s.mu.RLock()
	out := make([]domain.PropertyTrace, 0)
	for _, id := range r.s.traceOrder {
		if t, ok := r.s.traces[id]; ok && t.PropertyID == propertyID {
			out = append(out, t)
		}
	}
	r.s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b domain.PropertyTrace) int {
		return b.DateSale.Compare(a.DateSale)
	})
	return out, nil
}

func (r *Traces) GetLatestByPropertyID(ctx context.Context, propertyID uuid.UUID) (*domain.PropertyTrace, error) {
	all, _ := r.GetByPropertyID(ctx, propertyID)
	if len(all) == 0 {
		return nil, nil
	}
	return &all[0], nil
}

func (r *Traces) Add(_ context.Context, t *domain.PropertyTrace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.traces[t.ID]; !ok {
		r.s.traceOrder = append(r.s.traceOrder, t.ID)
	}
	r.s.traces[t.ID] = *t
	return nil
}

func (r *Traces) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.traces[id]; !ok {
		return false, nil
	}
	delete(r.s.traces, id)
	r.s.traceOrder = slices.DeleteFunc(r.s.traceOrder, func(v uuid.UUID) bool { return v == id })
	return true, nil
}

// Users implements domain.UserRepository.
type Users struct{ s *Store }

func (r *Users) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *Users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, email)
	return u != nil, nil
}

func (r *Users) Add(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = *u
	return nil
}

func (r *Users) Update(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; ok {
		r.s.users[u.ID] = *u
	}
	return nil
}
