package owners

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/JaimeStill/million/internal/domain"
)

// Cached wraps an OwnerRepository with a read-through cache for GetByID.
// Writes through the wrapper evict the affected entry.
type Cached struct {
	domain.OwnerRepository
	cache *cache.Cache
}

// NewCached caches owner lookups for ttl.
func NewCached(inner domain.OwnerRepository, ttl time.Duration) *Cached {
	return &Cached{
		OwnerRepository: inner,
		cache:           cache.New(ttl, 2*ttl),
	}
}

func (c *Cached) GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	key := id.String()
	if v, ok := c.cache.Get(key); ok {
		o := v.(domain.Owner)
		return &o, nil
	}

	o, err := c.OwnerRepository.GetByID(ctx, id)
	if err != nil || o == nil {
		return o, err
	}

	c.cache.Set(key, *o, cache.DefaultExpiration)
	return o, nil
}

func (c *Cached) Update(ctx context.Context, o *domain.Owner) error {
	c.cache.Delete(o.ID.String())
	return c.OwnerRepository.Update(ctx, o)
}

func (c *Cached) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	c.cache.Delete(id.String())
	return c.OwnerRepository.Delete(ctx, id)
}
