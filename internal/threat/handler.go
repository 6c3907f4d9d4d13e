package threat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/threatlens/threatlens-api/internal/httputil"
	"github.com/threatlens/threatlens-api/internal/logging"
)

const (
	MsgNotFound      = "Threat not found"
	MsgInvalidID     = "Invalid threat ID"
	MsgInternalError = "Internal server error"
)

// Handler contains HTTP handlers for the threat dashboard
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles threat listing
// @Summary      List threats
// @Description  Page through threats, optionally filtered by category and description text
// @Tags         threats
// @Produce      json
// @Security     BearerAuth
// @Param        category query string false "Exact category"
// @Param        search   query string false "Case-insensitive description substring"
// @Param        page     query int    false "Page number" default(1)
// @Param        limit    query int    false "Page size (max 100)" default(10)
// @Success      200 {object} Page
// @Failure      401 {object} httputil.MessageResponse "No token provided"
// @Failure      403 {object} httputil.MessageResponse "Invalid token"
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /api/threats [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := ListFilter{
		Category: query.Get("category"),
		Search:   query.Get("search"),
		Page:     queryInt(query.Get("page"), DefaultPage),
		Limit:    queryInt(query.Get("limit"), DefaultLimit),
	}

	page, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.internalError(w, r, "failed to list threats", err)
		return
	}

	httputil.RespondJSON(w, page, http.StatusOK)
}

// Get handles single threat lookup
// @Summary      Get threat
// @Tags         threats
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Threat ID"
// @Success      200 {object} Threat
// @Failure      400 {object} httputil.ErrorResponse "Invalid threat ID"
// @Failure      404 {object} httputil.ErrorResponse "Threat not found"
// @Router       /api/threats/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		httputil.RespondError(w, MsgInvalidID, http.StatusBadRequest)
		return
	}

	threat, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondError(w, MsgNotFound, http.StatusNotFound)
			return
		}
		h.internalError(w, r, "failed to get threat", err)
		return
	}

	httputil.RespondJSON(w, threat, http.StatusOK)
}

// Stats handles threat statistics
// @Summary      Threat statistics
// @Tags         threats
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} Stats
// @Router       /api/threats/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.internalError(w, r, "failed to compute threat stats", err)
		return
	}

	httputil.RespondJSON(w, stats, http.StatusOK)
}

// Categories handles category listing
// @Summary      Threat categories
// @Tags         threats
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} string
// @Router       /api/threats/categories [get]
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.internalError(w, r, "failed to list categories", err)
		return
	}

	httputil.RespondJSON(w, categories, http.StatusOK)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logging.GetLoggerFromContext(r.Context()).Error(msg, "error", err.Error())
	httputil.RespondError(w, MsgInternalError, http.StatusInternalServerError)
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
