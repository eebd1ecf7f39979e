package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// constraintLabels are the human-readable names used in plan text.
var constraintLabels = map[ConstraintKey]string{
	ConstraintDirection: "direction consistency",
	ConstraintDistance:  "distance control",
	ConstraintGapping:   "bag gapping",
	ConstraintStrike:    "strike quality",
}

// BuildCoachPlan scores the four limiters, selects primary and secondary,
// derives confidence and emits the practice plan. It returns nil when the
// session has no clubs with data: there is nothing defensible to recommend.
func (e *Engine) BuildCoachPlan(summary SessionSummary, ladder GappingLadder, sessionsAnalyzed int) *CoachPlan {
	if len(summary.Clubs) == 0 {
		return nil
	}

	direction := e.scoreDirection(summary)
	distance := e.scoreDistance(summary)
	gapping := e.scoreGapping(ladder)
	strike := e.scoreStrike(summary, distance.Score)

	// Stable sort keeps the evaluation order (direction, distance, gapping,
	// strike) as the tiebreak.
	constraints := []ConstraintScore{direction, distance, gapping, strike}
	sort.SliceStable(constraints, func(i, j int) bool {
		return constraints[i].Score > constraints[j].Score
	})

	plan := &CoachPlan{
		Constraints: constraints,
		Primary:     constraints[0],
	}
	if constraints[1].Score > 0 {
		secondary := constraints[1]
		plan.Secondary = &secondary
	}

	plan.Confidence = e.scoreConfidence(summary, sessionsAnalyzed, constraints)
	plan.Plan = e.buildPracticePlan(plan.Primary, plan.Confidence)
	plan.TrendSummary = e.trendSummarySentence(plan)

	e.log.WithFields(map[string]interface{}{
		"primary":    plan.Primary.Key,
		"score":      plan.Primary.Score,
		"confidence": plan.Confidence.Score,
	}).Debug("Built coach plan")

	return plan
}

func (e *Engine) scoreDirection(summary SessionSummary) ConstraintScore {
	score := ConstraintScore{
		Key:          ConstraintDirection,
		TargetMetric: "side_std_dev",
	}

	var worst *ClubSummary
	for i := range summary.Clubs {
		club := &summary.Clubs[i]
		if club.SideStdDev == nil {
			continue
		}
		if worst == nil || *club.SideStdDev > *worst.SideStdDev {
			worst = club
		}
	}
	if worst == nil {
		score.Reasons = append(score.Reasons, "No lateral dispersion data recorded this session")
		return score
	}

	value := *worst.SideStdDev
	score.Score = clampInt(int(math.Round(value*e.thresholds.DirectionScoreFactor)), 0, 100)
	score.FocusClub = worst.DisplayName
	score.CurrentValue = floatPtr(round1(value))
	score.TargetValue = floatPtr(round1(value * e.thresholds.TargetImprovement))
	score.Reasons = append(score.Reasons,
		fmt.Sprintf("%s shows the widest lateral spread at %.1f yds std-dev", worst.DisplayName, value))
	return score
}

func (e *Engine) scoreDistance(summary SessionSummary) ConstraintScore {
	score := ConstraintScore{
		Key:          ConstraintDistance,
		TargetMetric: "carry_std_dev",
	}

	var worst *ClubSummary
	for i := range summary.Clubs {
		club := &summary.Clubs[i]
		if club.CarryStdDev == nil {
			continue
		}
		if worst == nil || *club.CarryStdDev > *worst.CarryStdDev {
			worst = club
		}
	}
	if worst == nil {
		score.Reasons = append(score.Reasons, "Not enough carry samples to measure distance control")
		return score
	}

	value := *worst.CarryStdDev
	score.Score = clampInt(int(math.Round(value*e.thresholds.DistanceScoreFactor)), 0, 100)
	score.FocusClub = worst.DisplayName
	score.CurrentValue = floatPtr(round1(value))
	score.TargetValue = floatPtr(round1(value * e.thresholds.TargetImprovement))
	score.Reasons = append(score.Reasons,
		fmt.Sprintf("%s carry varies by %.1f yds std-dev, the loosest in the bag", worst.DisplayName, value))
	return score
}

func (e *Engine) scoreGapping(ladder GappingLadder) ConstraintScore {
	score := ConstraintScore{
		Key:          ConstraintGapping,
		TargetMetric: "gap_alerts",
	}

	overlaps, cliffs, compressed := countGapAlerts(ladder.Rows)
	t := e.thresholds
	score.Score = clampInt(overlaps*t.OverlapWeight+cliffs*t.CliffWeight+compressed*t.CompressedWeight, 0, 100)

	for _, row := range ladder.Rows {
		if row.Classification == GapOverlap || row.Classification == GapCliff {
			score.FocusClub = row.DisplayName
			break
		}
	}

	if len(ladder.Rows) > 0 {
		alerts := overlaps + cliffs + compressed
		score.CurrentValue = floatPtr(float64(alerts))
		score.TargetValue = floatPtr(0)
	}

	switch {
	case overlaps > 0:
		score.Reasons = append(score.Reasons, fmt.Sprintf("%d club pair(s) overlap in carry", overlaps))
	case cliffs > 0:
		score.Reasons = append(score.Reasons, fmt.Sprintf("%d distance cliff(s) in the bag", cliffs))
	case compressed > 0:
		score.Reasons = append(score.Reasons, fmt.Sprintf("%d compressed gap(s)", compressed))
	default:
		score.Reasons = append(score.Reasons, "No gapping alerts across the measured bag")
	}
	return score
}

// scoreStrike is a proxy pending direct strike data: without smash factor or
// impact location, distance variability stands in for contact quality.
func (e *Engine) scoreStrike(summary SessionSummary, distanceScore int) ConstraintScore {
	score := ConstraintScore{
		Key:          ConstraintStrike,
		TargetMetric: "smash_factor",
	}
	if summary.AvgBallSpeed == nil {
		score.Reasons = append(score.Reasons, "No ball speed data; strike quality cannot be estimated")
		return score
	}
	score.Score = clampInt(int(math.Round(float64(distanceScore)*e.thresholds.StrikeProxyFactor)), 0, 100)
	score.Reasons = append(score.Reasons,
		"Estimated from carry variability; a monitor reporting smash factor would score this directly")
	return score
}

func (e *Engine) scoreConfidence(summary SessionSummary, sessionsAnalyzed int, constraints []ConstraintScore) CoachConfidence {
	t := e.thresholds

	shotsComponent := clampInt(int(math.Round(float64(summary.ShotCount)/t.ShotsPerPoint)), 0, t.ShotsCap)
	clubsComponent := clampInt(len(summary.Clubs)*t.ClubsFactor, 0, t.ClubsCap)
	sessionsComponent := clampInt(sessionsAnalyzed*t.SessionsFactor, 0, t.SessionsCap)

	covered := 0
	for _, c := range constraints {
		if c.CurrentValue != nil {
			covered++
		}
	}
	coverageComponent := clampInt(covered*t.CoverageFactor, 0, t.CoverageCap)

	total := clampInt(shotsComponent+clubsComponent+sessionsComponent+coverageComponent, 0, 100)

	band := ConfidenceLow
	switch {
	case total >= t.ConfidenceHighAt:
		band = ConfidenceHigh
	case total >= t.ConfidenceMediumAt:
		band = ConfidenceMedium
	}
	return CoachConfidence{Score: total, Band: band}
}

// practiceSteps holds the fixed 3-step drill template per limiter.
var practiceSteps = map[ConstraintKey][]PracticeStep{
	ConstraintDirection: {
		{Drill: "Gate drill", Reps: "3 x 10 balls", Objective: "Start every ball through a 3 ft gate 10 yds out"},
		{Drill: "Alignment-stick ladder", Reps: "2 x 8 balls", Objective: "Alternate left and right targets without re-aiming your feet"},
		{Drill: "Dispersion circle test", Reps: "15 balls", Objective: "Finish with a measured 15-ball lateral spread"},
	},
	ConstraintDistance: {
		{Drill: "Clock carry drill", Reps: "3 x 9 balls", Objective: "Cycle 80/90/100 percent swings and call the carry before each shot"},
		{Drill: "Landing-zone ladder", Reps: "2 x 10 balls", Objective: "Land 6 of 10 inside a 10-yd depth window"},
		{Drill: "Random-club recall", Reps: "12 balls", Objective: "Switch clubs every shot and match your stock number"},
	},
	ConstraintGapping: {
		{Drill: "Stock-yardage mapping", Reps: "5 balls per club", Objective: "Hit 5 stock shots with each club on either side of the gap"},
		{Drill: "Alternating-club ladder", Reps: "2 x 8 balls", Objective: "Alternate the two overlapping clubs and log both carries"},
		{Drill: "Choke-down calibration", Reps: "10 balls", Objective: "Build a choked-down partial number to split the gap"},
	},
	ConstraintStrike: {
		{Drill: "Face-spray contact check", Reps: "3 x 8 balls", Objective: "Mark the face and keep 6 of 8 strikes inside a dime"},
		{Drill: "Tee-height ladder", Reps: "2 x 10 balls", Objective: "Vary tee height and hold ball speed within 2 mph"},
		{Drill: "Tempo swings", Reps: "12 balls", Objective: "Swing at 80 percent and keep carry inside a 5-yd window"},
	},
}

func (e *Engine) buildPracticePlan(primary ConstraintScore, confidence CoachConfidence) PracticePlan {
	duration := 20
	switch confidence.Band {
	case ConfidenceHigh:
		duration = 30
	case ConfidenceMedium:
		duration = 25
	}

	label := constraintLabels[primary.Key]
	focus := fmt.Sprintf("Work on %s", label)
	if primary.FocusClub != "" {
		focus = fmt.Sprintf("Work on %s with %s", label, primary.FocusClub)
	}

	goal := fmt.Sprintf("Improve %s over your next three sessions", label)
	if primary.CurrentValue != nil && primary.TargetValue != nil {
		goal = fmt.Sprintf("%s: %.1f -> %.1f", primary.TargetMetric, *primary.CurrentValue, *primary.TargetValue)
	}

	return PracticePlan{
		DurationMinutes: duration,
		Focus:           focus,
		Goal:            goal,
		Steps:           practiceSteps[primary.Key],
	}
}

func (e *Engine) trendSummarySentence(plan *CoachPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Coach confidence is %s (%d/100). Primary focus: %s.",
		plan.Confidence.Band, plan.Confidence.Score, constraintLabels[plan.Primary.Key])
	if plan.Secondary != nil {
		fmt.Fprintf(&b, " Secondary focus: %s.", constraintLabels[plan.Secondary.Key])
	}
	return b.String()
}
