package analytics

import (
	"fmt"
)

// EvaluateRules runs the fixed battery of independent statistical rules and
// returns the findings. The output is never empty: when no rule fires a
// single fallback insight is returned, so callers always have something to
// display.
func (e *Engine) EvaluateRules(shots []ShotRecord, summary SessionSummary, ladder GappingLadder, plan *CoachPlan, drillLogs []DrillLog) []RuleInsight {
	var insights []RuleInsight

	if ins := e.ruleSpeedCarryLink(shots); ins != nil {
		insights = append(insights, *ins)
	}
	if ins := e.ruleLateSessionDispersion(shots); ins != nil {
		insights = append(insights, *ins)
	}
	if ins := e.ruleTopClubDirection(summary); ins != nil {
		insights = append(insights, *ins)
	}
	if ins := e.ruleBagSpacing(ladder); ins != nil {
		insights = append(insights, *ins)
	}
	if ins := e.ruleDrillMemory(plan, drillLogs); ins != nil {
		insights = append(insights, *ins)
	}

	if len(insights) == 0 {
		insights = append(insights, RuleInsight{
			ID:        "no_major_rule",
			Severity:  SeverityInfo,
			Title:     "No major pattern detected",
			Statement: "If none of the statistical rules fire, then this session shows no standout weakness.",
			Evidence:  "All rule triggers stayed below their thresholds for this shot set.",
			Action:    "Keep logging sessions; trends sharpen as more data accumulates.",
		})
	}
	return insights
}

// ruleSpeedCarryLink fires when ball speed and carry are strongly correlated,
// which tells the player speed work translates directly to distance.
func (e *Engine) ruleSpeedCarryLink(shots []ShotRecord) *RuleInsight {
	var speeds, carries []float64
	for _, s := range shots {
		if s.BallSpeed != nil && s.Carry != nil {
			speeds = append(speeds, *s.BallSpeed)
			carries = append(carries, *s.Carry)
		}
	}
	if len(speeds) < e.thresholds.CorrelationMinShots {
		return nil
	}
	r, ok := pearson(speeds, carries)
	if !ok || r <= e.thresholds.CorrelationThreshold {
		return nil
	}
	return &RuleInsight{
		ID:        "speed_carry_link",
		Severity:  SeverityInfo,
		Title:     "Ball speed is driving your carry",
		Statement: fmt.Sprintf("If you add ball speed, then carry distance follows (r=%.2f).", r),
		Evidence:  fmt.Sprintf("Pearson correlation %.2f across %d paired shots.", r, len(speeds)),
		Action:    "Speed training will pay off directly in distance for you.",
	}
}

// ruleLateSessionDispersion compares lateral spread late in the session
// against the first sixty shots.
func (e *Engine) ruleLateSessionDispersion(shots []ShotRecord) *RuleInsight {
	t := e.thresholds
	if len(shots) < t.FatigueMinShots {
		return nil
	}

	var early, late []float64
	for i, s := range shots {
		if s.Side == nil {
			continue
		}
		if i < t.FatigueSplitIndex {
			early = append(early, *s.Side)
		} else {
			late = append(late, *s.Side)
		}
	}
	if len(early) < 2 || len(late) < 2 {
		return nil
	}

	earlyStd := *stdDevOf(early)
	lateStd := *stdDevOf(late)
	if earlyStd <= 0 || lateStd <= t.FatigueRatio*earlyStd {
		return nil
	}
	return &RuleInsight{
		ID:        "late_session_dispersion",
		Severity:  SeverityWarning,
		Title:     "Accuracy drops late in the session",
		Statement: fmt.Sprintf("If you practice past shot %d, then your lateral spread widens from %.1f to %.1f yds.", t.FatigueSplitIndex, earlyStd, lateStd),
		Evidence:  fmt.Sprintf("Side-distance std-dev %.1f yds in shots 1-%d vs %.1f yds after.", earlyStd, t.FatigueSplitIndex, lateStd),
		Action:    "Cap ball-striking blocks before fatigue erases the earlier work.",
	}
}

// ruleTopClubDirection checks whether the most-hit club sprays laterally.
func (e *Engine) ruleTopClubDirection(summary SessionSummary) *RuleInsight {
	var top *ClubSummary
	for i := range summary.Clubs {
		club := &summary.Clubs[i]
		if top == nil || club.ShotCount > top.ShotCount {
			top = club
		}
	}
	if top == nil || top.ShotCount < e.thresholds.TopClubMinShots {
		return nil
	}
	if top.SideStdDev == nil || *top.SideStdDev <= e.thresholds.DirectionStdDevThreshold {
		return nil
	}
	return &RuleInsight{
		ID:        "top_club_direction",
		Severity:  SeverityWarning,
		Title:     fmt.Sprintf("%s direction is the limiter", top.DisplayName),
		Statement: fmt.Sprintf("If you keep missing sideways with %s, then it costs you on your most-used club.", top.DisplayName),
		Evidence:  fmt.Sprintf("%d shots with lateral std-dev %.1f yds.", top.ShotCount, *top.SideStdDev),
		Action:    fmt.Sprintf("Dedicate the next block to start-line work with %s.", top.DisplayName),
	}
}

// ruleBagSpacing flags overlap/cliff rows in the ladder.
func (e *Engine) ruleBagSpacing(ladder GappingLadder) *RuleInsight {
	severe := 0
	var first string
	for _, row := range ladder.Rows {
		if row.Classification == GapOverlap || row.Classification == GapCliff {
			severe++
			if first == "" {
				first = row.DisplayName
			}
		}
	}
	if severe == 0 {
		return nil
	}
	severity := SeverityWarning
	if severe >= 2 {
		severity = SeverityDanger
	}
	return &RuleInsight{
		ID:        "bag_spacing_risk",
		Severity:  severity,
		Title:     "Bag spacing needs attention",
		Statement: "If your club gaps overlap or cliff, then you are guessing on in-between yardages.",
		Evidence:  fmt.Sprintf("%d ladder row(s) flagged, starting at %s.", severe, first),
		Action:    "Re-map stock carries for the flagged clubs and adjust lofts or setup.",
	}
}

// ruleDrillMemory surfaces how past drills against the current primary
// limiter were rated.
func (e *Engine) ruleDrillMemory(plan *CoachPlan, drillLogs []DrillLog) *RuleInsight {
	if plan == nil {
		return nil
	}
	key := plan.Primary.Key

	var outcomes []float64
	for _, log := range drillLogs {
		if log.ConstraintKey == key && log.Outcome >= 1 && log.Outcome <= 5 {
			outcomes = append(outcomes, float64(log.Outcome))
		}
	}
	if len(outcomes) < e.thresholds.DrillMemoryMinLogs {
		return nil
	}

	sum := 0.0
	for _, o := range outcomes {
		sum += o
	}
	mean := sum / float64(len(outcomes))

	severity := SeverityWarning
	action := "Past drills for this limiter rated poorly; try a different drill mix this time."
	if mean >= e.thresholds.DrillMemoryGoodOutcome {
		severity = SeverityInfo
		action = "Past drills for this limiter rated well; repeat what worked."
	}
	return &RuleInsight{
		ID:        "drill_memory_signal",
		Severity:  severity,
		Title:     fmt.Sprintf("You have history with %s drills", constraintLabels[key]),
		Statement: fmt.Sprintf("If %s comes up again, then your drill history says how to attack it.", constraintLabels[key]),
		Evidence:  fmt.Sprintf("%d prior drill log(s) with mean outcome %.1f/5.", len(outcomes), mean),
		Action:    action,
	}
}
