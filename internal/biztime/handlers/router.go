package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	e "github.com/gartstein/biztime/internal/biztime/errors"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// apiFunc is a route handler that reports failures by returning them.
type apiFunc func(w http.ResponseWriter, r *http.Request, params map[string]string) error

// Routes groups the handlers mounted by NewRouter. Health is optional.
type Routes struct {
	Companies  *CompanyHandler
	Invoices   *InvoiceHandler
	Industries *IndustryHandler
	Health     *HealthHandler
}

// NewRouter builds the HTTP API on a grpc-gateway ServeMux. Unmatched
// routes answer with a 404 error envelope.
func NewRouter(routes Routes, logger *zap.Logger) (http.Handler, error) {
	logger = logger.Named("http")
	mux := runtime.NewServeMux(
		runtime.WithRoutingErrorHandler(routingErrorHandler(logger)),
		runtime.WithMiddlewares(recoverer(logger)),
	)

	table := []struct {
		method  string
		pattern string
		fn      apiFunc
	}{
		{http.MethodGet, "/companies", routes.Companies.list},
		{http.MethodGet, "/companies/{code}", routes.Companies.get},
		{http.MethodPost, "/companies", routes.Companies.create},
		{http.MethodPut, "/companies/{code}", routes.Companies.update},
		{http.MethodDelete, "/companies/{code}", routes.Companies.delete},

		{http.MethodGet, "/invoices", routes.Invoices.list},
		{http.MethodGet, "/invoices/{id}", routes.Invoices.get},
		{http.MethodPost, "/invoices", routes.Invoices.create},
		{http.MethodPut, "/invoices/{id}", routes.Invoices.update},
		{http.MethodDelete, "/invoices/{id}", routes.Invoices.delete},

		{http.MethodGet, "/industries", routes.Industries.list},
		{http.MethodPost, "/industries", routes.Industries.create},
		{http.MethodPost, "/industries/addind", routes.Industries.associate},
	}
	if routes.Health != nil {
		table = append(table, struct {
			method  string
			pattern string
			fn      apiFunc
		}{http.MethodGet, "/healthz", routes.Health.check})
	}

	for _, rt := range table {
		if err := mux.HandlePath(rt.method, rt.pattern, adapt(rt.fn, logger)); err != nil {
			return nil, fmt.Errorf("failed to register %s %s: %w", rt.method, rt.pattern, err)
		}
	}

	return withRequestID(accessLog(mux, logger)), nil
}

func adapt(fn apiFunc, logger *zap.Logger) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		if err := fn(w, r, params); err != nil {
			writeError(w, r, err, logger)
		}
	}
}

func routingErrorHandler(logger *zap.Logger) runtime.RoutingErrorHandlerFunc {
	return func(_ context.Context, _ *runtime.ServeMux, _ runtime.Marshaler, w http.ResponseWriter, r *http.Request, _ int) {
		writeError(w, r, e.New(http.StatusNotFound, "Not Found"), logger)
	}
}

// recoverer turns a panicking handler into a 500 envelope.
func recoverer(logger *zap.Logger) runtime.Middleware {
	return func(next runtime.HandlerFunc) runtime.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("Recovered from panic",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path),
						zap.Stack("stack"),
					)
					writeError(w, r, e.New(http.StatusInternalServerError, "Internal Server Error"), logger)
				}
			}()
			next(w, r, params)
		}
	}
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func accessLog(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", r.Header.Get(RequestIDHeader)),
		)
	})
}
