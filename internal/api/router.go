package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/mcoot/pizzeria/internal/api/apierr"
	"github.com/mcoot/pizzeria/internal/api/handler"
	"github.com/mcoot/pizzeria/internal/api/middleware"
	httpmw "github.com/mcoot/pizzeria/internal/middleware"
	"github.com/mcoot/pizzeria/internal/services/address"
	"github.com/mcoot/pizzeria/internal/services/catalog"
	"github.com/mcoot/pizzeria/internal/services/identity"
	"github.com/mcoot/pizzeria/internal/services/payment"
	"github.com/mcoot/pizzeria/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	IdentityResolver *identity.Resolver
	SessionService   *session.Service
	AddressService   *address.Service
	PaymentService   *payment.Service
	CatalogService   *catalog.Service
	Cookie           middleware.CookieConfig
	AllowedOrigins   []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewMethodNotAllowedError())
	})

	cookies := middleware.NewSessionCookies(cfg.Cookie)

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.IdentityResolver, cfg.SessionService, cookies, cfg.Logger)
	userHandler := handler.NewUserHandler(cfg.AddressService, cfg.PaymentService, cfg.Logger)
	catalogHandler := handler.NewCatalogHandler(cfg.CatalogService, cfg.Logger)

	// Create middleware
	authenticated := middleware.RequireAuthenticated()
	elevated := middleware.RequireElevated()

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(httpmw.RequestID)
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(httpmw.Logging(cfg.Logger))
	api.Use(middleware.Session(cfg.SessionService, cookies, cfg.Logger))

	// Health check endpoint (no guard)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Auth routes (no guard; they establish or inspect the session)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/whoami", authHandler.WhoAmI).Methods(http.MethodGet)

	// The caller's own addresses and payments
	users := api.PathPrefix("/users").Subrouter()
	users.Use(authenticated)
	users.HandleFunc("/address", userHandler.ListAddresses).Methods(http.MethodGet)
	users.HandleFunc("/address", userHandler.CreateAddress).Methods(http.MethodPost)
	users.HandleFunc("/address/{id}", userHandler.DeleteAddress).Methods(http.MethodDelete)
	users.HandleFunc("/payment", userHandler.ListPayments).Methods(http.MethodGet)
	users.HandleFunc("/payment", userHandler.CreatePayment).Methods(http.MethodPost)
	users.HandleFunc("/payment/{id}", userHandler.DeletePayment).Methods(http.MethodDelete)

	// Products and promotions: any account may read, administrators may write
	guard := func(mw func(http.Handler) http.Handler, h http.HandlerFunc) http.Handler {
		return mw(h)
	}
	api.Handle("/products", guard(authenticated, catalogHandler.ListProducts)).Methods(http.MethodGet)
	api.Handle("/products", guard(elevated, catalogHandler.CreateProduct)).Methods(http.MethodPost)
	api.Handle("/products/{id}", guard(authenticated, catalogHandler.GetProduct)).Methods(http.MethodGet)
	api.Handle("/products/{id}", guard(elevated, catalogHandler.UpdateProduct)).Methods(http.MethodPatch)
	api.Handle("/products/{id}", guard(elevated, catalogHandler.DeleteProduct)).Methods(http.MethodDelete)

	api.Handle("/promotions", guard(authenticated, catalogHandler.ListPromotions)).Methods(http.MethodGet)
	api.Handle("/promotions", guard(elevated, catalogHandler.CreatePromotion)).Methods(http.MethodPost)
	api.Handle("/promotions/{id}", guard(authenticated, catalogHandler.GetPromotion)).Methods(http.MethodGet)
	api.Handle("/promotions/{id}", guard(elevated, catalogHandler.UpdatePromotion)).Methods(http.MethodPatch)
	api.Handle("/promotions/{id}", guard(elevated, catalogHandler.DeletePromotion)).Methods(http.MethodDelete)

	// Customization records are administrator-only
	records := api.PathPrefix("/records").Subrouter()
	records.Use(elevated)
	records.HandleFunc("", catalogHandler.ListRecords).Methods(http.MethodGet)
	records.HandleFunc("", catalogHandler.CreateRecord).Methods(http.MethodPost)
	records.HandleFunc("/{id}", catalogHandler.GetRecord).Methods(http.MethodGet)
	records.HandleFunc("/{id}", catalogHandler.UpdateRecord).Methods(http.MethodPatch)
	records.HandleFunc("/{id}", catalogHandler.DeleteRecord).Methods(http.MethodDelete)

	return r
}

// NewHandler wraps the API router with CORS handling for the configured
// frontend origins. Credentials are allowed so the session cookie is sent.
func NewHandler(cfg RouterConfig) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", httpmw.RequestIDHeader},
		ExposedHeaders:   []string{httpmw.RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(NewRouter(cfg))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
