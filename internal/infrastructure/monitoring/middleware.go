package monitoring

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

type HTTPMetricsMiddleware struct {
	next http.Handler
}

func WrapHandler(next http.Handler) *HTTPMetricsMiddleware {
	return &HTTPMetricsMiddleware{
		next: next,
	}
}

func (m *HTTPMetricsMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	wrapped := &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}

	handlerName := extractHandlerName(r.URL.Path)

	m.next.ServeHTTP(wrapped, r)

	duration := time.Since(start).Seconds()
	statusCode := strconv.Itoa(wrapped.statusCode)

	HTTPRequestDuration.WithLabelValues(handlerName, r.Method, statusCode).Observe(duration)
	HTTPRequestsTotal.WithLabelValues(handlerName, r.Method, statusCode).Inc()
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func extractHandlerName(path string) string {
	path = strings.TrimPrefix(path, "/")

	switch {
	case strings.HasPrefix(path, "admin/products"):
		return "admin_products"
	case strings.HasPrefix(path, "admin/categories"):
		return "admin_categories"
	case strings.HasPrefix(path, "admin/seed"):
		return "admin_seed"
	case strings.HasPrefix(path, "cart/summary"):
		return "cart_summary"
	case strings.HasPrefix(path, "cart"):
		return "cart"
	case strings.HasPrefix(path, "products/featured"):
		return "products_featured"
	case strings.HasPrefix(path, "products"):
		return "products"
	case strings.HasPrefix(path, "categories"):
		return "categories"
	case strings.HasPrefix(path, "notifications"):
		return "notifications"
	case strings.HasPrefix(path, "health"):
		return "health"
	case strings.HasPrefix(path, "metrics"):
		return "metrics"
	default:
		return "unknown"
	}
}
