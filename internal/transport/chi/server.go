package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/battlebranding/food-scout/internal/domain"
	fooduc "github.com/battlebranding/food-scout/internal/usecase/food"
	healthuc "github.com/battlebranding/food-scout/internal/usecase/health"
	restaurantuc "github.com/battlebranding/food-scout/internal/usecase/restaurant"
	tasteuc "github.com/battlebranding/food-scout/internal/usecase/taste"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// errorCode is the machine-readable error category in error responses.
type errorCode string

const (
	codeBadRequest      errorCode = "bad_request"
	codeInvalidQuery    errorCode = "invalid_query"
	codeInvalidRecord   errorCode = "invalid_record"
	codeNotFound        errorCode = "not_found"
	codeUpstreamFailure errorCode = "upstream_failure"
	codeUnauthorized    errorCode = "unauthorized"
	codeInternalError   errorCode = "internal_error"
)

// dataEnvelope wraps every successful payload.
type dataEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// errorEnvelope wraps every error payload.
type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// Server routes HTTP requests to the use case services.
type Server struct {
	restaurants   *restaurantuc.Service
	food          *fooduc.Service
	tastes        *tasteuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	restaurants *restaurantuc.Service,
	food *fooduc.Service,
	tastes *tasteuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		restaurants: restaurants,
		food:        food,
		tastes:      tastes,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		invalidQueryHandler,
		sentinelHandler(domain.ErrInvalidRecord, http.StatusBadRequest, codeInvalidRecord),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrUpstreamFailure, http.StatusBadGateway, codeUpstreamFailure),
	}
	return s
}

// Routes registers all handlers on the given router. The /admin subtree
// carries the write surface and is what BearerAuthMiddleware protects.
func (s *Server) Routes(r chi.Router) {
	r.Get("/restaurants", s.ListRestaurants)
	r.Get("/food", s.SearchFood)
	r.Get("/taste", s.SearchTaste)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/admin", func(r chi.Router) {
		r.Put("/restaurants/{id}", s.UpsertRestaurant)
		r.Delete("/restaurants/{id}", s.DeleteRestaurant)
		r.Put("/food/{id}", s.UpsertFood)
		r.Delete("/food/{id}", s.DeleteFood)
		r.Put("/taste/{slug}", s.UpsertTaste)
		r.Delete("/taste/{slug}", s.DeleteTaste)
	})
}

// ListRestaurants handles GET /restaurants.
func (s *Server) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	views, err := s.restaurants.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, views)
}

// SearchFood handles GET /food. Coordinates switch the search into
// proximity mode; without them every published item is returned.
func (s *Server) SearchFood(w http.ResponseWriter, r *http.Request) {
	lat, err := floatParam(r, "latitude")
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	lng, err := floatParam(r, "longitude")
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	radius, err := floatParam(r, "radius")
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	views, err := s.food.Search(r.Context(), fooduc.Query{
		Latitude:    lat,
		Longitude:   lng,
		RadiusMiles: radius,
		TasteSlug:   r.URL.Query().Get("taste"),
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, views)
}

// SearchTaste handles GET /taste.
func (s *Server) SearchTaste(w http.ResponseWriter, r *http.Request) {
	views, err := s.tastes.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, views)
}

type addressRequest struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type upsertRestaurantRequest struct {
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Address     addressRequest `json:"address"`
	Status      string         `json:"status"`
}

// UpsertRestaurant handles PUT /admin/restaurants/{id}.
func (s *Server) UpsertRestaurant(w http.ResponseWriter, r *http.Request) {
	var req upsertRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	v, err := s.restaurants.Save(r.Context(), restaurantuc.SaveInput{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Address: domain.Address{
			Street: req.Address.Street,
			City:   req.Address.City,
			State:  req.Address.State,
			Zip:    req.Address.Zip,
		},
		Status: req.Status,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, v)
}

// DeleteRestaurant handles DELETE /admin/restaurants/{id}.
func (s *Server) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := s.restaurants.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type upsertFoodRequest struct {
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Taste        []string `json:"taste"`
	RestaurantID string   `json:"restaurant_id"`
	Status       string   `json:"status"`
}

// UpsertFood handles PUT /admin/food/{id}.
func (s *Server) UpsertFood(w http.ResponseWriter, r *http.Request) {
	var req upsertFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	v, err := s.food.Save(r.Context(), fooduc.SaveInput{
		ID:           chi.URLParam(r, "id"),
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		TasteSlugs:   req.Taste,
		RestaurantID: req.RestaurantID,
		Status:       req.Status,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, v)
}

// DeleteFood handles DELETE /admin/food/{id}.
func (s *Server) DeleteFood(w http.ResponseWriter, r *http.Request) {
	if err := s.food.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type upsertTasteRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpsertTaste handles PUT /admin/taste/{slug}.
func (s *Server) UpsertTaste(w http.ResponseWriter, r *http.Request) {
	var req upsertTasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	v, err := s.tastes.Save(r.Context(), tasteuc.SaveInput{
		ID:          req.ID,
		Name:        req.Name,
		Slug:        chi.URLParam(r, "slug"),
		Description: req.Description,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, v)
}

// DeleteTaste handles DELETE /admin/taste/{slug}.
func (s *Server) DeleteTaste(w http.ResponseWriter, r *http.Request) {
	if err := s.tastes.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// floatParam parses an optional float query parameter. Absent means nil.
func floatParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.NewInvalidQuery(name, "must be a number")
	}
	return &f, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, dataEnvelope{Success: true, Data: v})
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorEnvelope{
		Error: errorBody{Code: code, Message: message},
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrInvalidRecord,
		domain.ErrNotFound,
		domain.ErrUpstreamFailure,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// invalidQueryHandler handles ErrInvalidQuery, naming the offending
// parameter when the wrapped error carries one.
func invalidQueryHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidQuery) {
		return false
	}
	var iqe *domain.InvalidQueryError
	if errors.As(err, &iqe) {
		writeError(w, http.StatusBadRequest, codeInvalidQuery, iqe.Error())
		return true
	}
	writeError(w, http.StatusBadRequest, codeInvalidQuery, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
