package analysis

import (
	"errors"
	"net/http"

	"github.com/threatlens/threatlens-api/internal/httputil"
	"github.com/threatlens/threatlens-api/internal/logging"
)

// Handler exposes the analysis pipeline over HTTP
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AnalyzeRequest is the body of POST /api/threats/analyze
type AnalyzeRequest struct {
	Description string `json:"description"`
}

// Analyze handles threat classification
// @Summary      Classify a threat description
// @Description  Runs the predictor on the description and broadcasts the result to websocket subscribers
// @Tags         threats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AnalyzeRequest true "Threat description"
// @Success      200 {object} Result
// @Failure      400 {object} httputil.ErrorResponse "Description is required"
// @Failure      401 {object} httputil.MessageResponse "No token provided"
// @Failure      403 {object} httputil.MessageResponse "Invalid token"
// @Failure      500 {object} httputil.ErrorResponse "Prediction failed"
// @Failure      503 {object} httputil.ErrorResponse "Predictor busy"
// @Router       /api/threats/analyze [post]
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req AnalyzeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid analyze request body", "error", err.Error())
		httputil.RespondError(w, MsgDescriptionRequired, http.StatusBadRequest)
		return
	}

	result, err := h.service.Analyze(r.Context(), req.Description)
	if err != nil {
		var predictionErr *PredictionError
		switch {
		case errors.Is(err, ErrDescriptionRequired):
			httputil.RespondError(w, MsgDescriptionRequired, http.StatusBadRequest)
		case errors.Is(err, ErrPredictorBusy):
			logger.Warn("analysis rejected: predictor busy")
			httputil.RespondError(w, MsgPredictorBusy, http.StatusServiceUnavailable)
		case errors.As(err, &predictionErr):
			logger.Error("prediction failed",
				"exit_code", predictionErr.ExitCode,
				"timed_out", predictionErr.TimedOut,
				"error", predictionErr.Unwrap(),
			)
			httputil.RespondError(w, predictionErr.Error(), http.StatusInternalServerError)
		default:
			logger.Error("analysis failed: internal error", "error", err.Error())
			httputil.RespondError(w, MsgInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("threat analyzed", "predicted_category", result.PredictedCategory)
	httputil.RespondJSON(w, result, http.StatusOK)
}
