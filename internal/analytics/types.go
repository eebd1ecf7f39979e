package analytics

import "time"

// Quality flag values appended to shots during normalization and tagging.
const (
	FlagUnknownClub   = "unknown_club"
	FlagNegativeCarry = "negative_carry"
	FlagCarryOutlier  = "carry_outlier"
)

// ShotRecord is one observed launch-monitor shot. The six measurements are
// optional: a nil pointer means the monitor did not record that value.
type ShotRecord struct {
	ClubType     string            `json:"club_type"`
	ClubName     string            `json:"club_name,omitempty"`
	ClubModel    string            `json:"club_model,omitempty"`
	DisplayClub  string            `json:"display_club"`
	BallSpeed    *float64          `json:"ball_speed"`
	LaunchAngle  *float64          `json:"launch_angle"`
	Carry        *float64          `json:"carry_distance"`
	Total        *float64          `json:"total_distance"`
	Side         *float64          `json:"side_distance"`
	SpinRate     *float64          `json:"spin_rate"`
	IsOutlier    bool              `json:"is_outlier"`
	QualityFlags []string          `json:"quality_flags,omitempty"`
	Raw          map[string]string `json:"-"`
}

// HasAnyMetric reports whether at least one measurement was recorded.
func (s ShotRecord) HasAnyMetric() bool {
	return s.BallSpeed != nil || s.LaunchAngle != nil || s.Carry != nil ||
		s.Total != nil || s.Side != nil || s.SpinRate != nil
}

// ClubSummary holds the robust per-club statistics of one session.
type ClubSummary struct {
	ClubType    string   `json:"club_type"`
	DisplayName string   `json:"display_name"`
	ShotCount   int      `json:"shot_count"`
	Aliases     []string `json:"aliases,omitempty"`
	Models      []string `json:"models,omitempty"`
	AvgCarry    *float64 `json:"avg_carry"`
	MedianCarry *float64 `json:"median_carry"`
	P10Carry    *float64 `json:"p10_carry"`
	P90Carry    *float64 `json:"p90_carry"`
	CarryStdDev *float64 `json:"carry_std_dev"`
	SideStdDev  *float64 `json:"side_std_dev"`
}

// SessionSummary aggregates one session's shots, session-wide and per club.
// Clubs are ordered wedges first (lob through pitching), then irons high loft
// first, then hybrids and woods by number, then driver, then anything
// unrecognized alphabetically.
type SessionSummary struct {
	ShotCount      int           `json:"shot_count"`
	AvgCarry       *float64      `json:"avg_carry"`
	AvgBallSpeed   *float64      `json:"avg_ball_speed"`
	AvgLaunchAngle *float64      `json:"avg_launch_angle"`
	AvgSpinRate    *float64      `json:"avg_spin_rate"`
	Clubs          []ClubSummary `json:"clubs"`
}

// GapClass classifies the carry gap between a club and its nearest longer
// neighbor in the bag.
type GapClass string

const (
	GapHealthy    GapClass = "healthy"
	GapCompressed GapClass = "compressed"
	GapOverlap    GapClass = "overlap"
	GapCliff      GapClass = "cliff"
	GapNone       GapClass = "none"
)

// LadderRow is one rung of the gapping ladder, longest carry first.
type LadderRow struct {
	ClubType       string   `json:"club_type"`
	DisplayName    string   `json:"display_name"`
	MedianCarry    float64  `json:"median_carry"`
	P10Carry       *float64 `json:"p10_carry"`
	P90Carry       *float64 `json:"p90_carry"`
	GapToNext      *float64 `json:"gap_to_next"`
	Classification GapClass `json:"classification"`
	OverlapAmount  *float64 `json:"overlap_amount,omitempty"`
	Warning        string   `json:"warning,omitempty"`
}

// Severity levels shared by ladder insights and rule insights.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
)

// LadderInsight summarizes one class of gapping alert across the ladder.
type LadderInsight struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// GappingLadder orders clubs by descending median carry and classifies each
// gap. Clubs without a median carry are excluded.
type GappingLadder struct {
	Rows     []LadderRow     `json:"rows"`
	Insights []LadderInsight `json:"insights"`
}

// ConstraintKey names one of the four coaching limiters.
type ConstraintKey string

const (
	ConstraintDirection ConstraintKey = "direction_consistency"
	ConstraintDistance  ConstraintKey = "distance_control"
	ConstraintGapping   ConstraintKey = "bag_gapping"
	ConstraintStrike    ConstraintKey = "strike_quality"
)

// ConstraintScore is one limiter with its 0-100 severity score. Higher means
// the limiter is holding the player back more.
type ConstraintScore struct {
	Key          ConstraintKey `json:"key"`
	Score        int           `json:"score"`
	Reasons      []string      `json:"reasons"`
	FocusClub    string        `json:"focus_club,omitempty"`
	TargetMetric string        `json:"target_metric"`
	CurrentValue *float64      `json:"current_value"`
	TargetValue  *float64      `json:"target_value"`
}

// Confidence bands.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// CoachConfidence scores how much data backs the recommendation.
type CoachConfidence struct {
	Score int    `json:"score"`
	Band  string `json:"band"`
}

// PracticeStep is one drill inside a practice plan.
type PracticeStep struct {
	Drill     string `json:"drill"`
	Reps      string `json:"reps"`
	Objective string `json:"objective"`
}

// PracticePlan is the deterministic plan generated for the primary limiter.
type PracticePlan struct {
	DurationMinutes int            `json:"duration_minutes"`
	Focus           string         `json:"focus"`
	Goal            string         `json:"goal"`
	Steps           []PracticeStep `json:"steps"`
}

// CoachPlan is the full coaching recommendation for a session. Absent (nil)
// when the session has no clubs with data.
type CoachPlan struct {
	Constraints  []ConstraintScore `json:"constraints"`
	Primary      ConstraintScore   `json:"primary"`
	Secondary    *ConstraintScore  `json:"secondary"`
	Confidence   CoachConfidence   `json:"confidence"`
	Plan         PracticePlan      `json:"plan"`
	TrendSummary string            `json:"trend_summary"`
}

// DeltaDirection classifies a session-over-baseline metric movement.
type DeltaDirection string

const (
	DeltaImproved     DeltaDirection = "improved"
	DeltaWorsened     DeltaDirection = "worsened"
	DeltaFlat         DeltaDirection = "flat"
	DeltaInsufficient DeltaDirection = "insufficient"
)

// MetricDelta compares one metric between the latest session and the
// baseline built from all earlier sessions.
type MetricDelta struct {
	Metric    string         `json:"metric"`
	Current   *float64       `json:"current"`
	Baseline  *float64       `json:"baseline"`
	Delta     *float64       `json:"delta"`
	Direction DeltaDirection `json:"direction"`
}

// TrendDeltas reports session-over-session movement.
type TrendDeltas struct {
	BaselineSessions  int           `json:"baseline_sessions"`
	HasBaseline       bool          `json:"has_baseline"`
	Metrics           []MetricDelta `json:"metrics"`
	PrimaryConstraint *MetricDelta  `json:"primary_constraint,omitempty"`
	Summary           string        `json:"summary"`
}

// RuleInsight is one if-then finding from the rule battery.
type RuleInsight struct {
	ID        string `json:"id"`
	Severity  string `json:"severity"`
	Title     string `json:"title"`
	Statement string `json:"statement"`
	Evidence  string `json:"evidence"`
	Action    string `json:"action"`
}

// DrillLog is a prior drill completion with its perceived outcome (1-5).
type DrillLog struct {
	ConstraintKey ConstraintKey `json:"constraint_key"`
	DrillName     string        `json:"drill_name"`
	CompletedAt   time.Time     `json:"completed_at"`
	Outcome       int           `json:"outcome"`
}

func floatPtr(v float64) *float64 { return &v }
