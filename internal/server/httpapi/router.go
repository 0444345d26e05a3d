// Package httpapi exposes the catalog over HTTP: login, sellers and books,
// plus health and Prometheus metrics endpoints.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/dmitrijs2005/bookstore/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
)

// AuthService is the subset of services.AuthService the router needs.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*services.TokenResponse, error)
	Authorize(ctx context.Context, token string) (*models.Seller, error)
}

type SellerService interface {
	Register(ctx context.Context, in services.SellerInput) (*models.Seller, error)
	List(ctx context.Context) ([]models.Seller, error)
	GetWithBooks(ctx context.Context, id int64) (*models.SellerWithBooks, error)
	Update(ctx context.Context, id int64, in services.SellerUpdate) (*models.Seller, error)
	Delete(ctx context.Context, id int64) error
}

type BookService interface {
	Create(ctx context.Context, in services.BookInput) (*models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
	Get(ctx context.Context, id int64) (*models.Book, error)
	Update(ctx context.Context, id int64, in services.BookInput) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
}

// Options tunes routing. The zero value serves unprefixed routes only and
// leaves writes unguarded.
type Options struct {
	// APIPrefix mounts every route a second time under this prefix.
	APIPrefix string
	// ProtectMutations puts seller and book writes behind the bearer guard.
	ProtectMutations bool
	// DBHealth is probed by /healthz; nil reports healthy.
	DBHealth func(context.Context) error
}

const healthCheckTimeout = 2 * time.Second

// Router wires HTTP endpoints to services.
type Router struct {
	mux     *http.ServeMux
	handler http.Handler
	logger  logging.Logger
	auth    AuthService
	sellers SellerService
	books   BookService
	opts    Options
	metrics *metrics
}

// NewRouter assembles routes with dependencies.
func NewRouter(logger logging.Logger, authSvc AuthService, sellerSvc SellerService, bookSvc BookService, opts Options) *Router {
	r := &Router{
		mux:     http.NewServeMux(),
		logger:  logger,
		auth:    authSvc,
		sellers: sellerSvc,
		books:   bookSvc,
		opts:    opts,
		metrics: newMetrics(),
	}
	r.register()
	r.handler = r.withRequestID(r.mux)
	return r
}

// ServeHTTP delegates to the underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// Registry exposes the router's metric registry so other components can
// add collectors to the same /metrics page.
func (r *Router) Registry() *prometheus.Registry {
	return r.metrics.registry
}

func (r *Router) register() {
	r.handle(http.MethodPost, "/token/", r.handleToken)

	r.handle(http.MethodPost, "/seller/", r.handleCreateSeller)
	r.handle(http.MethodGet, "/seller/", r.handleListSellers)
	r.handle(http.MethodGet, "/seller/{id}", r.requireAuth(r.handleGetSeller))
	r.handle(http.MethodPut, "/seller/{id}", r.mutation(r.handleUpdateSeller))
	r.handle(http.MethodDelete, "/seller/{id}", r.mutation(r.handleDeleteSeller))

	r.handle(http.MethodPost, "/books/", r.mutation(r.handleCreateBook))
	r.handle(http.MethodGet, "/books/", r.handleListBooks)
	r.handle(http.MethodGet, "/books/{id}", r.handleGetBook)
	r.handle(http.MethodPut, "/books/{id}", r.mutation(r.handleUpdateBook))
	r.handle(http.MethodDelete, "/books/{id}", r.mutation(r.handleDeleteBook))

	r.handle(http.MethodGet, "/healthz", r.handleHealthz)
	r.mux.Handle("GET /metrics", r.metrics.handler())
}

// handle registers h for method and path, bare and under the API prefix.
// A collection path ending in "/" is also served without the slash.
func (r *Router) handle(method, path string, h http.HandlerFunc) {
	prefixes := []string{""}
	if p := strings.TrimRight(r.opts.APIPrefix, "/"); p != "" {
		prefixes = append(prefixes, p)
	}

	for _, prefix := range prefixes {
		route := prefix + path
		wrapped := r.audit(route, h)

		if strings.HasSuffix(path, "/") {
			r.mux.HandleFunc(method+" "+route+"{$}", wrapped)
			r.mux.HandleFunc(method+" "+strings.TrimSuffix(route, "/"), wrapped)
			continue
		}
		r.mux.HandleFunc(method+" "+route, wrapped)
	}
}

// mutation applies the bearer guard to write endpoints when configured.
func (r *Router) mutation(next http.HandlerFunc) http.HandlerFunc {
	if r.opts.ProtectMutations {
		return r.requireAuth(next)
	}
	return next
}
