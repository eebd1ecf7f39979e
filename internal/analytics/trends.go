package analytics

import (
	"fmt"
	"math"
)

// trendMetric defines one entry of the fixed delta battery.
type trendMetric struct {
	name         string
	higherBetter bool
	value        func(summary SessionSummary, ladder GappingLadder) *float64
}

// ComputeTrendDeltas compares the latest session against a baseline
// aggregated from all other known sessions. A nil baseline yields
// HasBaseline=false with every direction insufficient; the caller still gets
// a fully formed report.
func (e *Engine) ComputeTrendDeltas(current SessionSummary, sessionsAnalyzed int, baseline *SessionSummary, baselineSessions int) *TrendDeltas {
	currentLadder := e.BuildLadder(current)
	currentPlan := e.BuildCoachPlan(current, currentLadder, sessionsAnalyzed)

	var baselineLadder GappingLadder
	var baselinePlan *CoachPlan
	if baseline != nil {
		baselineLadder = e.BuildLadder(*baseline)
		baselinePlan = e.BuildCoachPlan(*baseline, baselineLadder, baselineSessions)
	}

	metrics := []trendMetric{
		{
			name:         "avg_carry",
			higherBetter: true,
			value: func(s SessionSummary, _ GappingLadder) *float64 {
				return s.AvgCarry
			},
		},
		{
			name:         "avg_ball_speed",
			higherBetter: true,
			value: func(s SessionSummary, _ GappingLadder) *float64 {
				return s.AvgBallSpeed
			},
		},
		{
			name:         "gap_alerts",
			higherBetter: false,
			value: func(_ SessionSummary, l GappingLadder) *float64 {
				overlaps, cliffs, compressed := countGapAlerts(l.Rows)
				return floatPtr(float64(overlaps + cliffs + compressed))
			},
		},
	}

	deltas := &TrendDeltas{
		HasBaseline: baseline != nil,
	}
	if baseline != nil {
		deltas.BaselineSessions = baselineSessions
	}

	for _, m := range metrics {
		cur := m.value(current, currentLadder)
		var base *float64
		if baseline != nil {
			base = m.value(*baseline, baselineLadder)
		}
		deltas.Metrics = append(deltas.Metrics, e.metricDelta(m.name, cur, base, m.higherBetter))
	}

	if currentPlan != nil && baselinePlan != nil {
		key := currentPlan.Primary.Key
		baseScore := baselinePlan.Primary.Score
		for _, c := range baselinePlan.Constraints {
			if c.Key == key {
				baseScore = c.Score
				break
			}
		}
		// Constraint scores signal limiter severity, so lower is better.
		delta := e.metricDelta(string(key),
			floatPtr(float64(currentPlan.Primary.Score)),
			floatPtr(float64(baseScore)),
			false)
		deltas.PrimaryConstraint = &delta
	}

	deltas.Summary = e.trendDeltaSummary(deltas)
	return deltas
}

func (e *Engine) metricDelta(name string, current, baseline *float64, higherBetter bool) MetricDelta {
	delta := MetricDelta{
		Metric:    name,
		Current:   current,
		Baseline:  baseline,
		Direction: DeltaInsufficient,
	}
	if current == nil || baseline == nil {
		return delta
	}

	d := round1(*current - *baseline)
	delta.Delta = floatPtr(d)
	switch {
	case math.Abs(d) < e.thresholds.FlatDeltaEpsilon:
		delta.Direction = DeltaFlat
	case (d > 0) == higherBetter:
		delta.Direction = DeltaImproved
	default:
		delta.Direction = DeltaWorsened
	}
	return delta
}

func (e *Engine) trendDeltaSummary(deltas *TrendDeltas) string {
	if !deltas.HasBaseline {
		return "No baseline yet: this is the first recorded session."
	}
	improved, worsened, flat := 0, 0, 0
	for _, m := range deltas.Metrics {
		switch m.Direction {
		case DeltaImproved:
			improved++
		case DeltaWorsened:
			worsened++
		case DeltaFlat:
			flat++
		}
	}
	return fmt.Sprintf("Compared with %d earlier session(s): %d metric(s) improved, %d worsened, %d flat.",
		deltas.BaselineSessions, improved, worsened, flat)
}
