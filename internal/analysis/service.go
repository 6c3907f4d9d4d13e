package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/threatlens/threatlens-api/internal/broadcast"
	"github.com/threatlens/threatlens-api/internal/logging"
)

// timestampLayout is RFC 3339 in UTC with millisecond precision
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Result is returned to the caller of Analyze
type Result struct {
	PredictedCategory string `json:"predicted_category"`
}

// AnalysisEvent is the payload broadcast after each successful analysis
type AnalysisEvent struct {
	Description       string `json:"description"`
	PredictedCategory string `json:"predicted_category"`
	Timestamp         string `json:"timestamp"`
}

// Service classifies threat descriptions and announces the results
type Service struct {
	predictor   Predictor
	broadcaster broadcast.Broadcaster
	logger      *logging.Logger
	now         func() time.Time
}

func NewService(predictor Predictor, broadcaster broadcast.Broadcaster, logger *logging.Logger) *Service {
	return &Service{
		predictor:   predictor,
		broadcaster: broadcaster,
		logger:      logger,
		now:         time.Now,
	}
}

// Analyze runs one prediction for description. On success the result is
// broadcast to current subscribers before it is returned. The prediction is
// not cancelled when ctx is; it runs until it exits or times out.
func (s *Service) Analyze(ctx context.Context, description string) (*Result, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	detached := context.WithoutCancel(ctx)

	label, err := s.predictor.Predict(detached, description)
	if err != nil {
		return nil, err
	}

	s.publish(detached, AnalysisEvent{
		Description:       description,
		PredictedCategory: label,
		Timestamp:         s.now().UTC().Format(timestampLayout),
	})

	return &Result{PredictedCategory: label}, nil
}

// publish is best-effort: a failed broadcast never fails the analysis
func (s *Service) publish(ctx context.Context, payload AnalysisEvent) {
	event, err := broadcast.NewEvent(broadcast.EventAnalysis, payload)
	if err == nil {
		err = s.broadcaster.Broadcast(ctx, event)
	}
	if err != nil {
		s.logger.Warn("analysis broadcast failed",
			"predicted_category", payload.PredictedCategory,
			"error", err.Error(),
		)
	}
}
