package tenant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/graple254/bazaa/app/models"
)

func TestSubdomain(t *testing.T) {
	cfg := Config{BareSuffixes: []string{"localhost", "devtunnels.ms"}}

	tests := []struct {
		name string
		host string
		want string
	}{
		{"production subdomain", "shop1.bazaa.digital", "shop1"},
		{"production apex", "bazaa.digital", ""},
		{"deep subdomain takes first label", "a.b.bazaa.digital", "a"},
		{"bare suffix", "shop1.localhost", "shop1"},
		{"bare suffix with port", "shop1.localhost:8080", "shop1"},
		{"bare suffix alone", "localhost", ""},
		{"bare suffix alone with port", "localhost:8080", ""},
		{"tunnel suffix", "shop1.devtunnels.ms", "shop1"},
		{"unknown two-label host", "shop1.example", ""},
		{"port stripped before parsing", "shop1.bazaa.digital:443", "shop1"},
		{"empty host", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Subdomain(tt.host, cfg); got != tt.want {
				t.Errorf("Subdomain(%q) = %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}

func TestStripPort(t *testing.T) {
	if got := StripPort("bazaa.digital:8080"); got != "bazaa.digital" {
		t.Errorf("StripPort() = %q, want %q", got, "bazaa.digital")
	}
	if got := StripPort("bazaa.digital"); got != "bazaa.digital" {
		t.Errorf("StripPort() = %q, want %q", got, "bazaa.digital")
	}
}

// stubStoreRepo serves a fixed set of stores and counts lookups so tests
// can observe the cache.
type stubStoreRepo struct {
	stores  map[string]*models.Store
	err     error
	lookups int
}

func (s *stubStoreRepo) FindBySubdomain(ctx context.Context, subdomain string) (*models.Store, error) {
	s.lookups++
	if s.err != nil {
		return nil, s.err
	}
	return s.stores[subdomain], nil
}

func (s *stubStoreRepo) Create(ctx context.Context, store *models.Store) error { return nil }
func (s *stubStoreRepo) Update(ctx context.Context, store *models.Store) error { return nil }
func (s *stubStoreRepo) FindByID(ctx context.Context, id string) (*models.Store, error) {
	return nil, nil
}
func (s *stubStoreRepo) FindByOwnerID(ctx context.Context, ownerID string) (*models.Store, error) {
	return nil, nil
}
func (s *stubStoreRepo) SubdomainTaken(ctx context.Context, subdomain, excludeStoreID string) (bool, error) {
	return false, nil
}

func TestResolverResolve(t *testing.T) {
	cfg := Config{
		BareSuffixes:       []string{"localhost"},
		ExcludedSubdomains: []string{"www"},
	}
	repo := &stubStoreRepo{stores: map[string]*models.Store{
		"shop1": {ID: "store-1", Subdomain: "shop1"},
	}}
	resolver := NewResolver(repo, cfg, time.Minute)
	ctx := context.Background()

	store := resolver.Resolve(ctx, "shop1.bazaa.digital")
	if store == nil || store.ID != "store-1" {
		t.Fatalf("Resolve(shop1) = %v, want store-1", store)
	}

	if store := resolver.Resolve(ctx, "bazaa.digital"); store != nil {
		t.Errorf("Resolve(apex) = %v, want nil", store)
	}
	if store := resolver.Resolve(ctx, "www.bazaa.digital"); store != nil {
		t.Errorf("Resolve(www) = %v, want nil", store)
	}
	if store := resolver.Resolve(ctx, "nosuch.bazaa.digital"); store != nil {
		t.Errorf("Resolve(unknown) = %v, want nil", store)
	}
}

func TestResolverCachesHitsAndMisses(t *testing.T) {
	repo := &stubStoreRepo{stores: map[string]*models.Store{
		"shop1": {ID: "store-1", Subdomain: "shop1"},
	}}
	resolver := NewResolver(repo, Config{}, time.Minute)
	ctx := context.Background()

	resolver.Resolve(ctx, "shop1.bazaa.digital")
	resolver.Resolve(ctx, "shop1.bazaa.digital")
	resolver.Resolve(ctx, "shop1.bazaa.digital")
	if repo.lookups != 1 {
		t.Errorf("cached hit: %d lookups, want 1", repo.lookups)
	}

	repo.lookups = 0
	resolver.Resolve(ctx, "nosuch.bazaa.digital")
	resolver.Resolve(ctx, "nosuch.bazaa.digital")
	if repo.lookups != 1 {
		t.Errorf("cached miss: %d lookups, want 1", repo.lookups)
	}
}

func TestResolverForget(t *testing.T) {
	repo := &stubStoreRepo{stores: map[string]*models.Store{
		"shop1": {ID: "store-1", Subdomain: "shop1"},
	}}
	resolver := NewResolver(repo, Config{}, time.Minute)
	ctx := context.Background()

	resolver.Resolve(ctx, "shop1.bazaa.digital")
	resolver.Forget("shop1")
	resolver.Resolve(ctx, "shop1.bazaa.digital")

	if repo.lookups != 2 {
		t.Errorf("Forget should force a fresh lookup: %d lookups, want 2", repo.lookups)
	}
}

func TestResolverLookupErrorDegradesToNil(t *testing.T) {
	repo := &stubStoreRepo{err: errors.New("connection refused")}
	resolver := NewResolver(repo, Config{}, time.Minute)

	if store := resolver.Resolve(context.Background(), "shop1.bazaa.digital"); store != nil {
		t.Errorf("Resolve on repo error = %v, want nil", store)
	}
	// Errors are not cached; the next request retries.
	resolver.Resolve(context.Background(), "shop1.bazaa.digital")
	if repo.lookups != 2 {
		t.Errorf("error should not be cached: %d lookups, want 2", repo.lookups)
	}
}
