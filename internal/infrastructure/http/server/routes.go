package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zenvory/storefront-service/internal/infrastructure/http/middleware"
	"github.com/zenvory/storefront-service/internal/infrastructure/monitoring"
)

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", s.healthHandler.HandleHealth())

	mux.HandleFunc("/cart", s.handleCartRoot)
	mux.HandleFunc("/cart/summary", s.cartHandler.HandleGetSummary)
	mux.HandleFunc("/cart/items", s.handleCartItems)
	mux.HandleFunc("/cart/items/", s.handleCartItemRoutes)

	mux.HandleFunc("/products", s.catalogHandler.HandleListProducts)
	mux.HandleFunc("/products/featured", s.catalogHandler.HandleListFeatured)
	mux.HandleFunc("/products/", s.handleProductRoutes)
	mux.HandleFunc("/categories", s.catalogHandler.HandleListCategories)

	mux.HandleFunc("/admin/products", s.handleAdminProducts)
	mux.HandleFunc("/admin/products/", s.handleAdminProductRoutes)
	mux.HandleFunc("/admin/categories", s.handleAdminCategories)
	mux.HandleFunc("/admin/categories/", s.handleAdminCategoryRoutes)
	mux.HandleFunc("/admin/seed", s.handleAdminSeed)

	mux.HandleFunc("/notifications/stream", s.notificationsHandler.HandleStream)
	mux.HandleFunc("/notifications/toasts", s.notificationsHandler.HandleActiveToasts)

	handler := middleware.NewRecoveryMiddleware(s.logger)(mux)
	handler = middleware.NewLoggingMiddleware(s.logger)(handler)
	handler = monitoring.WrapHandler(handler)
	handler = s.corsMiddleware(handler)
	handler = s.timeoutMiddleware(handler)

	return handler
}

func (s *Server) handleCartRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.cartHandler.HandleGetCart(w, r)
	case http.MethodDelete:
		s.cartHandler.HandleClear(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCartItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.cartHandler.HandleAddItem(w, r)
}

func (s *Server) handleCartItemRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/cart/items/")
	parts := strings.Split(path, "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		s.cartHandler.HandleLine(w, r, parts[0], "")
	case len(parts) == 2 && parts[0] != "":
		s.cartHandler.HandleLine(w, r, parts[0], parts[1])
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleProductRoutes(w http.ResponseWriter, r *http.Request) {
	sku := strings.TrimPrefix(r.URL.Path, "/products/")
	if sku == "" || strings.Contains(sku, "/") {
		http.NotFound(w, r)
		return
	}
	s.catalogHandler.HandleGetProduct(w, r, sku)
}

func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.adminHandler.HandleCreateProduct(w, r)
}

func (s *Server) handleAdminProductRoutes(w http.ResponseWriter, r *http.Request) {
	sku := strings.TrimPrefix(r.URL.Path, "/admin/products/")
	if sku == "" || strings.Contains(sku, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.adminHandler.HandleUpdateProduct(w, r, sku)
	case http.MethodDelete:
		s.adminHandler.HandleDeleteProduct(w, r, sku)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.adminHandler.HandleCreateCategory(w, r)
}

func (s *Server) handleAdminCategoryRoutes(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/categories/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.adminHandler.HandleUpdateCategory(w, r, id)
	case http.MethodDelete:
		s.adminHandler.HandleDeleteCategory(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminSeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.adminHandler.HandleSeed(w, r)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-CSRF-Token")
		w.Header().Set("Access-Control-Expose-Headers", "Link")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// timeoutMiddleware bounds request handling, except for the notifications
// stream which stays open until the client disconnects.
func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	timeoutHandler := http.TimeoutHandler(next, 90*time.Second, "Request timeout")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/notifications/stream" {
			next.ServeHTTP(w, r)
			return
		}
		timeoutHandler.ServeHTTP(w, r)
	})
}
