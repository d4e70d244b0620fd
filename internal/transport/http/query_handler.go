package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "agricli/internal/errors"
	"agricli/internal/services"
)

// QueryHandler serves the canned query menu and query execution endpoints.
type QueryHandler struct {
	service *services.QueryService
	logger  *slog.Logger
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(service *services.QueryService, logger *slog.Logger) *QueryHandler {
	return &QueryHandler{
		service: service,
		logger:  logger.With(slog.String("component", "query_handler")),
	}
}

// Routes returns the query routes
func (h *QueryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.ListQueries)
	r.Get("/{id}", h.ExecuteQuery)

	return r
}

// ListQueries handles GET /api/queries
func (h *QueryHandler) ListQueries(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"queries": h.service.ListQueries(r.Context()),
	})
}

// ExecuteQuery handles GET /api/queries/{id}
func (h *QueryHandler) ExecuteQuery(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrValidation("id", "Query ID is required")))
		return
	}

	result, err := h.service.Execute(r.Context(), id)
	if err != nil {
		if services.IsUnknownQuery(err) {
			h.logger.WarnContext(r.Context(), "unknown query requested",
				slog.String("id", id))
			render.Render(w, r, apierrors.NewErrorResponse(apierrors.QueryNotFoundError(id)))
			return
		}
		h.logger.ErrorContext(r.Context(), "query execution failed",
			slog.String("id", id),
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.QueryExecutionError(err)))
		return
	}

	render.JSON(w, r, result)
}

// Summary handles GET /api/summary
func (h *QueryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "summary failed",
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.QueryExecutionError(err)))
		return
	}
	render.JSON(w, r, summary)
}
