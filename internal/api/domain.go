package api

import (
	"github.com/JaimeStill/million/internal/auth"
	"github.com/JaimeStill/million/internal/config"
	"github.com/JaimeStill/million/internal/domain"
	"github.com/JaimeStill/million/internal/images"
	"github.com/JaimeStill/million/internal/memstore"
	"github.com/JaimeStill/million/internal/owners"
	"github.com/JaimeStill/million/internal/properties"
	"github.com/JaimeStill/million/internal/traces"
	"github.com/JaimeStill/million/pkg/password"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Repositories domain.Repositories
	Owners       *owners.System
	Properties   *properties.System
	Images       *images.System
	Traces       *traces.System
	Auth         *auth.System
}

// NewRepositories selects the repository backend for the configured store.
// Owner lookups are cached in front of either backend when a TTL is set.
func NewRepositories(store *config.StoreConfig, runtime *Runtime) domain.Repositories {
	var repos domain.Repositories

	if store.Mode == config.StoreMemory {
		repos = memstore.New().Repositories()
	} else {
		db := runtime.Database.Connection()
		repos = domain.Repositories{
			Properties: properties.NewRepository(db),
			Owners:     owners.NewRepository(db),
			Images:     images.NewRepository(db),
			Traces:     traces.NewRepository(db),
			Users:      auth.NewRepository(db),
		}
	}

	if ttl := store.OwnerCacheTTLDuration(); ttl > 0 {
		repos.Owners = owners.NewCached(repos.Owners, ttl)
	}

	return repos
}

// NewDomain creates every domain system, binds its requests to the runtime
// dispatcher, and verifies that each request type has a handler.
func NewDomain(runtime *Runtime, repos domain.Repositories) (*Domain, error) {
	actors := auth.ContextResolver{}
	files := images.NewFileStore(runtime.Storage, runtime.Logger)

	d := &Domain{
		Repositories: repos,
		Owners:       owners.New(repos.Owners, runtime.Logger),
		Properties:   properties.New(repos, actors, runtime.Pagination, runtime.Logger),
		Images:       images.New(repos.Images, repos.Properties, actors, files, runtime.Logger),
		Traces:       traces.New(repos.Traces, repos.Properties, actors, runtime.Logger),
		Auth:         auth.New(repos.Users, repos.Owners, password.Hasher{}, runtime.Tokens, runtime.Logger),
	}

	d.Owners.Register(runtime.Dispatcher)
	d.Properties.Register(runtime.Dispatcher)
	d.Images.Register(runtime.Dispatcher)
	d.Traces.Register(runtime.Dispatcher)
	d.Auth.Register(runtime.Dispatcher)

	if err := runtime.Dispatcher.Require(requests()...); err != nil {
		return nil, err
	}
	return d, nil
}

func requests() []any {
	var all []any
	all = append(all, owners.Requests()...)
	all = append(all, properties.Requests()...)
	all = append(all, images.Requests()...)
	all = append(all, traces.Requests()...)
	all = append(all, auth.Requests()...)
	return all
}
