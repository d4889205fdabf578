package tenant

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/graple254/bazaa/app/models"
	"github.com/graple254/bazaa/app/repositories"
	gocache "github.com/patrickmn/go-cache"
)

// Config controls how a host header maps to a tenant subdomain.
type Config struct {
	// BareSuffixes are two-label hosts whose first label is still a tenant
	// subdomain, e.g. "localhost" so shop1.localhost works in development,
	// or a tunneling domain.
	BareSuffixes []string
	// ExcludedSubdomains never resolve to a tenant (www and friends).
	ExcludedSubdomains []string
}

// Subdomain extracts the candidate tenant subdomain from a host header.
// It returns "" for apex/root requests.
func Subdomain(host string, cfg Config) string {
	host = StripPort(host)
	parts := strings.Split(host, ".")

	switch {
	case len(parts) >= 3:
		return parts[0]
	case len(parts) == 2 && contains(cfg.BareSuffixes, parts[1]):
		return parts[0]
	}
	return ""
}

func StripPort(host string) string {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		return host[:i]
	}
	return host
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// Resolver maps host headers to stores. Lookups go through a short-TTL
// read-through cache; misses are cached too, so a burst of requests for an
// unknown subdomain costs one query per TTL window.
type Resolver struct {
	stores repositories.StoreRepositoryImpl
	cfg    Config
	cache  *gocache.Cache
}

func NewResolver(stores repositories.StoreRepositoryImpl, cfg Config, ttl time.Duration) *Resolver {
	return &Resolver{
		stores: stores,
		cfg:    cfg,
		cache:  gocache.New(ttl, 2*ttl),
	}
}

// Resolve returns the store for the request host, or nil. Absence is a
// valid, handled state: unknown subdomains, apex requests, excluded
// subdomains and lookup errors all degrade to nil, never to a failure.
func (r *Resolver) Resolve(ctx context.Context, host string) *models.Store {
	sub := Subdomain(host, r.cfg)
	if sub == "" || contains(r.cfg.ExcludedSubdomains, sub) {
		return nil
	}

	if cached, ok := r.cache.Get(sub); ok {
		store, _ := cached.(*models.Store)
		return store
	}

	store, err := r.stores.FindBySubdomain(ctx, sub)
	if err != nil {
		log.Printf("tenant.Resolve: lookup for subdomain %q failed: %v", sub, err)
		return nil
	}

	r.cache.Set(sub, store, gocache.DefaultExpiration)
	return store
}

// Forget drops a cached subdomain, used after a store changes its
// subdomain so the old and new hosts settle before the TTL expires.
func (r *Resolver) Forget(subdomain string) {
	r.cache.Delete(subdomain)
}
