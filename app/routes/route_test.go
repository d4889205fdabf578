package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSelectRouteTable(t *testing.T) {
	cfg := HostConfig{
		BaseDomain:   "bazaa.digital",
		BareSuffixes: []string{"localhost", "devtunnels.ms"},
	}

	tests := []struct {
		name string
		host string
		want RouteTable
	}{
		{"apex is management", "bazaa.digital", TableManagement},
		{"apex with port", "bazaa.digital:8080", TableManagement},
		{"subdomain is storefront", "shop1.bazaa.digital", TableStorefront},
		{"subdomain with port", "shop1.bazaa.digital:443", TableStorefront},
		{"www is still the storefront table", "www.bazaa.digital", TableStorefront},
		{"bare localhost is management", "localhost", TableManagement},
		{"localhost with port", "localhost:8080", TableManagement},
		{"subdomain of localhost", "shop1.localhost", TableStorefront},
		{"subdomain of localhost with port", "shop1.localhost:8080", TableStorefront},
		{"tunnel subdomain", "shop1.devtunnels.ms", TableStorefront},
		{"two labels under bare suffix", "a.b.localhost", TableManagement},
		{"unrelated host", "example.com", TableManagement},
		{"empty host", "", TableManagement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectRouteTable(tt.host, cfg); got != tt.want {
				t.Errorf("SelectRouteTable(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestHostRouterDispatch(t *testing.T) {
	management := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("management"))
	})
	storefront := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("storefront"))
	})

	router := NewHostRouter(HostConfig{
		BaseDomain:   "bazaa.digital",
		BareSuffixes: []string{"localhost"},
	}, management, storefront)

	tests := []struct {
		host string
		want string
	}{
		{"bazaa.digital", "management"},
		{"shop1.bazaa.digital", "storefront"},
		{"shop1.localhost:8080", "storefront"},
		{"localhost:8080", "management"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if got := rec.Body.String(); got != tt.want {
				t.Errorf("host %q routed to %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}
