package analysis

import "errors"

var (
	// ErrDescriptionRequired means the request carried no description (400)
	ErrDescriptionRequired = errors.New("description is required")
	// ErrPredictorBusy means no predictor slot freed up in time (503)
	ErrPredictorBusy = errors.New("predictor busy")
)

// Client-facing messages
const (
	MsgDescriptionRequired = "Description is required"
	MsgPredictionFailed    = "Prediction failed"
	MsgPredictionTimedOut  = "Prediction timed out"
	MsgPredictorBusy       = "Predictor busy, try again later"
	MsgInternalError       = "Internal server error"
)

// PredictionError reports a predictor run that did not produce a label.
// Its message is what the client sees: the process's stderr when there was
// any, otherwise a generic failure.
type PredictionError struct {
	Stderr   string
	ExitCode int
	TimedOut bool
	Err      error
}

func (e *PredictionError) Error() string {
	switch {
	case e.TimedOut:
		return MsgPredictionTimedOut
	case e.Stderr != "":
		return e.Stderr
	default:
		return MsgPredictionFailed
	}
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}
