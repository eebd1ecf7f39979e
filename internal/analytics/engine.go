package analytics

import (
	"github.com/sirupsen/logrus"
)

// Engine runs the analytics pipeline. It is stateless: every method computes
// its result solely from its arguments, so one Engine can serve concurrent
// sessions without coordination.
type Engine struct {
	thresholds Thresholds
	log        *logrus.Logger
}

// NewEngine creates an engine with the given tuning. A nil logger falls back
// to the logrus standard logger.
func NewEngine(t Thresholds, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{thresholds: t, log: log}
}

// Thresholds returns the engine's tuning.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}
