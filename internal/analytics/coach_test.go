package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCoachPlanNoClubs(t *testing.T) {
	engine := newTestEngine()
	summary := SessionSummary{ShotCount: 0}
	ladder := engine.BuildLadder(summary)

	assert.Nil(t, engine.BuildCoachPlan(summary, ladder, 1))
}

func TestBuildCoachPlanPrimarySelection(t *testing.T) {
	engine := newTestEngine()
	summary := SessionSummary{
		ShotCount:    40,
		AvgBallSpeed: floatPtr(120),
		Clubs: []ClubSummary{
			{
				ClubType: "7 Iron", DisplayName: "7 Iron", ShotCount: 20,
				MedianCarry: floatPtr(150), CarryStdDev: floatPtr(10), SideStdDev: floatPtr(20),
			},
			{
				ClubType: "Pitching Wedge", DisplayName: "Pitching Wedge", ShotCount: 20,
				MedianCarry: floatPtr(115), CarryStdDev: floatPtr(6), SideStdDev: floatPtr(8),
			},
		},
	}
	ladder := engine.BuildLadder(summary)

	plan := engine.BuildCoachPlan(summary, ladder, 1)
	require.NotNil(t, plan)
	require.Len(t, plan.Constraints, 4)

	// Side std-dev 20 scores 52, carry std-dev 10 scores 30
	assert.Equal(t, ConstraintDirection, plan.Primary.Key)
	assert.Equal(t, 52, plan.Primary.Score)
	assert.Equal(t, "7 Iron", plan.Primary.FocusClub)
	require.NotNil(t, plan.Primary.CurrentValue)
	assert.Equal(t, 20.0, *plan.Primary.CurrentValue)
	require.NotNil(t, plan.Primary.TargetValue)
	assert.Equal(t, 17.0, *plan.Primary.TargetValue)

	require.NotNil(t, plan.Secondary)
	assert.Equal(t, ConstraintDistance, plan.Secondary.Key)
	assert.Equal(t, 30, plan.Secondary.Score)

	assert.Equal(t, practiceSteps[ConstraintDirection], plan.Plan.Steps)
	assert.Equal(t, "side_std_dev: 20.0 -> 17.0", plan.Plan.Goal)
	assert.Contains(t, plan.TrendSummary, "direction consistency")
}

func TestBuildCoachPlanSecondaryAbsentWhenOnlyOneLimiter(t *testing.T) {
	engine := newTestEngine()
	// Single-shot clubs have no std-devs, so direction and distance score
	// zero; no ball speed, so strike scores zero. Only the overlapping pair
	// scores
	summary := SessionSummary{
		ShotCount: 2,
		Clubs: []ClubSummary{
			{ClubType: "8 Iron", DisplayName: "8 Iron", ShotCount: 1, MedianCarry: floatPtr(147)},
			{ClubType: "7 Iron", DisplayName: "7 Iron", ShotCount: 1, MedianCarry: floatPtr(150)},
		},
	}
	ladder := engine.BuildLadder(summary)

	plan := engine.BuildCoachPlan(summary, ladder, 1)
	require.NotNil(t, plan)
	assert.Equal(t, ConstraintGapping, plan.Primary.Key)
	assert.Equal(t, 35, plan.Primary.Score)
	assert.Nil(t, plan.Secondary)
}

func TestBuildCoachPlanTiebreakOrder(t *testing.T) {
	engine := newTestEngine()
	// No usable data anywhere: all four limiters score zero and the
	// evaluation order decides the primary
	summary := SessionSummary{
		ShotCount: 1,
		Clubs: []ClubSummary{
			{ClubType: "7 Iron", DisplayName: "7 Iron", ShotCount: 1},
		},
	}
	ladder := engine.BuildLadder(summary)

	plan := engine.BuildCoachPlan(summary, ladder, 1)
	require.NotNil(t, plan)
	assert.Equal(t, ConstraintDirection, plan.Primary.Key)
	assert.Equal(t, 0, plan.Primary.Score)
	assert.Nil(t, plan.Secondary)
}

func TestScoreGappingWeights(t *testing.T) {
	engine := newTestEngine()

	rows := []LadderRow{
		{ClubType: "7 Iron", DisplayName: "7 Iron", Classification: GapOverlap},
		{ClubType: "5 Iron", DisplayName: "5 Iron", Classification: GapCliff},
		{ClubType: "9 Iron", DisplayName: "9 Iron", Classification: GapCompressed},
		{ClubType: "Driver", DisplayName: "Driver", Classification: GapNone},
	}
	score := engine.scoreGapping(GappingLadder{Rows: rows})

	assert.Equal(t, 35+28+12, score.Score)
	assert.Equal(t, "7 Iron", score.FocusClub, "first overlap or cliff row is the focus")
	require.NotNil(t, score.CurrentValue)
	assert.Equal(t, 3.0, *score.CurrentValue)
	require.NotNil(t, score.TargetValue)
	assert.Equal(t, 0.0, *score.TargetValue)
}

func TestScoreStrikeProxy(t *testing.T) {
	engine := newTestEngine()

	t.Run("No ball speed scores zero", func(t *testing.T) {
		score := engine.scoreStrike(SessionSummary{}, 60)
		assert.Equal(t, 0, score.Score)
	})

	t.Run("Derived from the distance score", func(t *testing.T) {
		summary := SessionSummary{AvgBallSpeed: floatPtr(120)}
		score := engine.scoreStrike(summary, 60)
		assert.Equal(t, 33, score.Score)
		assert.Nil(t, score.CurrentValue, "the proxy has no measured value")
	})
}

func TestScoreConfidence(t *testing.T) {
	engine := newTestEngine()

	coveredConstraints := func(n int) []ConstraintScore {
		constraints := make([]ConstraintScore, 4)
		for i := 0; i < n; i++ {
			constraints[i].CurrentValue = floatPtr(1)
		}
		return constraints
	}

	tests := []struct {
		name             string
		shots            int
		clubs            int
		sessionsAnalyzed int
		covered          int
		expectedScore    int
		expectedBand     string
	}{
		{
			name:  "Rich data lands high",
			shots: 120, clubs: 8, sessionsAnalyzed: 5, covered: 3,
			// 40 + 24 + 20 + 12
			expectedScore: 96,
			expectedBand:  ConfidenceHigh,
		},
		{
			name:  "Sparse first session lands low",
			shots: 9, clubs: 1, sessionsAnalyzed: 1, covered: 1,
			// 3 + 3 + 4 + 4
			expectedScore: 14,
			expectedBand:  ConfidenceLow,
		},
		{
			name:  "Middling data lands medium",
			shots: 60, clubs: 5, sessionsAnalyzed: 2, covered: 2,
			// 20 + 15 + 8 + 8
			expectedScore: 51,
			expectedBand:  ConfidenceMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := SessionSummary{ShotCount: tt.shots}
			for i := 0; i < tt.clubs; i++ {
				summary.Clubs = append(summary.Clubs, ClubSummary{})
			}
			conf := engine.scoreConfidence(summary, tt.sessionsAnalyzed, coveredConstraints(tt.covered))
			assert.Equal(t, tt.expectedScore, conf.Score)
			assert.Equal(t, tt.expectedBand, conf.Band)
		})
	}
}

func TestBuildPracticePlanDuration(t *testing.T) {
	engine := newTestEngine()
	primary := ConstraintScore{Key: ConstraintDistance, TargetMetric: "carry_std_dev"}

	tests := []struct {
		band     string
		expected int
	}{
		{ConfidenceLow, 20},
		{ConfidenceMedium, 25},
		{ConfidenceHigh, 30},
	}
	for _, tt := range tests {
		t.Run(tt.band, func(t *testing.T) {
			plan := engine.buildPracticePlan(primary, CoachConfidence{Band: tt.band})
			assert.Equal(t, tt.expected, plan.DurationMinutes)
			assert.Len(t, plan.Steps, 3)
		})
	}
}

func TestBuildPracticePlanGoalFallback(t *testing.T) {
	engine := newTestEngine()
	primary := ConstraintScore{Key: ConstraintStrike, TargetMetric: "smash_factor"}

	plan := engine.buildPracticePlan(primary, CoachConfidence{Band: ConfidenceLow})
	assert.Equal(t, "Improve strike quality over your next three sessions", plan.Goal)
	assert.Equal(t, "Work on strike quality", plan.Focus)
}
