package routes

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/graple254/bazaa/app/configs"
	"github.com/graple254/bazaa/app/handlers"
	"github.com/graple254/bazaa/app/middlewares"
	"github.com/graple254/bazaa/app/models"
	"github.com/graple254/bazaa/app/repositories"
	"github.com/graple254/bazaa/app/services"
	"github.com/graple254/bazaa/app/utils/renderer"
	"github.com/graple254/bazaa/app/utils/sessions"
	"github.com/graple254/bazaa/app/utils/tenant"
	"gorm.io/gorm"
)

// RouteTable identifies which of the two route tables handles a request.
type RouteTable int

const (
	TableManagement RouteTable = iota
	TableStorefront
)

// HostConfig is what route selection needs to classify a host.
type HostConfig struct {
	// BaseDomain is the production apex, e.g. "bazaa.digital". The apex
	// itself is the management site; any subdomain of it is a storefront.
	BaseDomain string
	// BareSuffixes are development/tunnel suffixes under which a single
	// leading label is a storefront subdomain, e.g. "localhost".
	BareSuffixes []string
}

// SelectRouteTable classifies a host header into one of the two route
// tables. Pure function; anything unrecognized falls back to management.
func SelectRouteTable(host string, cfg HostConfig) RouteTable {
	h := tenant.StripPort(host)

	if h == cfg.BaseDomain {
		return TableManagement
	}
	if cfg.BaseDomain != "" && strings.HasSuffix(h, "."+cfg.BaseDomain) {
		return TableStorefront
	}

	for _, suffix := range cfg.BareSuffixes {
		rest, ok := strings.CutSuffix(h, "."+suffix)
		if ok && rest != "" && !strings.Contains(rest, ".") {
			return TableStorefront
		}
	}

	return TableManagement
}

// HostRouter dispatches every request to the management or storefront
// table. The table is chosen once per request and used for the whole
// dispatch; nothing here is mutated after construction, so concurrent
// requests never observe a mid-request switch.
type HostRouter struct {
	cfg        HostConfig
	management http.Handler
	storefront http.Handler
}

func NewHostRouter(cfg HostConfig, management, storefront http.Handler) *HostRouter {
	return &HostRouter{
		cfg:        cfg,
		management: management,
		storefront: storefront,
	}
}

func (h *HostRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if SelectRouteTable(r.Host, h.cfg) == TableStorefront {
		h.storefront.ServeHTTP(w, r)
		return
	}
	h.management.ServeHTTP(w, r)
}

// NewRouter wires repositories, services and both route tables into the
// host-switching handler that main serves.
func NewRouter(db *gorm.DB, env configs.ENV) http.Handler {
	render := renderer.New()
	validate := validator.New()

	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	storeRepo := repositories.NewStoreRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	imageRepo := repositories.NewImageRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	likeRepo := repositories.NewLikeRepository(db)
	annRepo := repositories.NewAnnouncementRepository(db)

	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatalf("NewRouter: session keys unavailable: %v", err)
	}
	sessionStore := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)

	mailer := services.NewMailer(services.MailerConfig{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
	})

	pipeline := services.NewImagePipeline(env.MediaDir)

	resolver := tenant.NewResolver(storeRepo, tenant.Config{
		BareSuffixes:       env.BareSuffixes,
		ExcludedSubdomains: env.ExcludedSubdomains,
	}, time.Duration(env.TenantCacheTTL)*time.Second)

	authHandler := handlers.NewAuthHandler(render, userRepo, otpRepo, sessionStore, mailer, validate)
	dashboardHandler := handlers.NewDashboardHandler(render, storeRepo, productRepo, categoryRepo, annRepo, pipeline, resolver, validate)
	productHandler := handlers.NewProductManagementHandler(render, storeRepo, productRepo, categoryRepo, imageRepo, pipeline, validate)
	storefrontHandler := handlers.NewStorefrontHandler(render, productRepo, categoryRepo, commentRepo, likeRepo, annRepo, validate)

	auth := middlewares.AuthMiddleware(userRepo, sessionStore)
	shopManagerOnly := middlewares.RequireRole(models.RoleShopManager)
	withTenant := middlewares.TenantMiddleware(resolver)

	media := http.StripPrefix(env.MediaURL, http.FileServer(http.Dir(env.MediaDir)))

	management := mux.NewRouter()
	management.Use(auth)
	management.HandleFunc("/index", authHandler.IndexGetHandler).Methods("GET")
	management.HandleFunc("/", authHandler.SignupGetHandler).Methods("GET")
	management.HandleFunc("/", authHandler.SignupPostHandler).Methods("POST")
	management.HandleFunc("/login", authHandler.LoginGetHandler).Methods("GET")
	management.HandleFunc("/login", authHandler.LoginPostHandler).Methods("POST")
	management.HandleFunc("/verify", authHandler.VerifyGetHandler).Methods("GET")
	management.HandleFunc("/verify", authHandler.VerifyPostHandler).Methods("POST")
	management.HandleFunc("/logout", authHandler.LogoutHandler).Methods("GET", "POST")

	management.Handle("/dashboard", shopManagerOnly(http.HandlerFunc(dashboardHandler.DashboardGetHandler))).Methods("GET")
	management.Handle("/dashboard", shopManagerOnly(http.HandlerFunc(dashboardHandler.DashboardPostHandler))).Methods("POST")
	management.Handle("/product-management", shopManagerOnly(http.HandlerFunc(productHandler.GetHandler))).Methods("GET")
	management.Handle("/product-management", shopManagerOnly(http.HandlerFunc(productHandler.PostHandler))).Methods("POST")
	management.Handle("/create-store-profile", shopManagerOnly(http.HandlerFunc(dashboardHandler.CreateStoreProfileGetHandler))).Methods("GET")
	management.Handle("/create-store-profile", shopManagerOnly(http.HandlerFunc(dashboardHandler.CreateStoreProfilePostHandler))).Methods("POST")

	management.PathPrefix(env.MediaURL).Handler(media)

	storefront := mux.NewRouter()
	storefront.Use(withTenant)
	storefront.HandleFunc("/", storefrontHandler.HomeGetHandler).Methods("GET")
	storefront.HandleFunc("/product/{id}", storefrontHandler.ProductDetailGetHandler).Methods("GET")
	storefront.HandleFunc("/like-product/{id}", storefrontHandler.LikePostHandler).Methods("POST")
	storefront.HandleFunc("/add-comment/{id}", storefrontHandler.CommentPostHandler).Methods("POST")
	storefront.PathPrefix(env.MediaURL).Handler(media)

	protect := csrf.Protect(keys.AuthKey, csrf.Secure(env.APP_ENV == "production"), csrf.Path("/"))

	return NewHostRouter(
		HostConfig{BaseDomain: env.BaseDomain, BareSuffixes: env.BareSuffixes},
		protect(management),
		protect(storefront),
	)
}
