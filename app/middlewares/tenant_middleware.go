package middlewares

import (
	"context"
	"net/http"

	"github.com/graple254/bazaa/app/helpers"
	"github.com/graple254/bazaa/app/utils/tenant"
)

// TenantMiddleware resolves the request host to a store and attaches it to
// the context. "No tenant" is a handled state, so the request always
// proceeds; storefront handlers decide what an absent store means.
func TenantMiddleware(resolver *tenant.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := resolver.Resolve(r.Context(), r.Host)
			if store == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyStore, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
