package analytics

// Thresholds collects every tunable the classifiers and rules use. Keeping
// them in one structure means a deployment can retune the engine without
// touching algorithm code.
type Thresholds struct {
	// Outlier tagging
	IQRMultiplier     float64
	OutlierMinSamples int

	// Gapping ladder. The overlap check is family-independent and runs
	// before the family bands, including for woods and hybrids.
	OverlapGapYards    float64
	ShortGapCompressed float64 // wedges, irons, other: compressed below this
	ShortGapHealthyMax float64 // wedges, irons, other: cliff above this
	LongGapCompressed  float64 // hybrids, woods, driver
	LongGapHealthyMax  float64

	// Constraint scoring
	DirectionScoreFactor float64
	DistanceScoreFactor  float64
	StrikeProxyFactor    float64
	TargetImprovement    float64 // target = current * this
	OverlapWeight        int
	CliffWeight          int
	CompressedWeight     int

	// Confidence components
	ShotsPerPoint      float64 // shots divided by this, capped at ShotsCap
	ShotsCap           int
	ClubsFactor        int
	ClubsCap           int
	SessionsFactor     int
	SessionsCap        int
	CoverageFactor     int
	CoverageCap        int
	ConfidenceMediumAt int // band is low below this
	ConfidenceHighAt   int // band is high at or above this

	// Trend deltas
	FlatDeltaEpsilon float64

	// Rule engine
	CorrelationThreshold     float64
	CorrelationMinShots      int
	FatigueMinShots          int
	FatigueSplitIndex        int
	FatigueRatio             float64
	DirectionStdDevThreshold float64
	TopClubMinShots          int
	DrillMemoryMinLogs       int
	DrillMemoryGoodOutcome   float64
}

// DefaultThresholds returns the stock tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		IQRMultiplier:     1.5,
		OutlierMinSamples: 4,

		OverlapGapYards:    5.0,
		ShortGapCompressed: 8.0,
		ShortGapHealthyMax: 18.0,
		LongGapCompressed:  12.0,
		LongGapHealthyMax:  20.0,

		DirectionScoreFactor: 2.6,
		DistanceScoreFactor:  3.0,
		StrikeProxyFactor:    0.55,
		TargetImprovement:    0.85,
		OverlapWeight:        35,
		CliffWeight:          28,
		CompressedWeight:     12,

		ShotsPerPoint:      3.0,
		ShotsCap:           40,
		ClubsFactor:        3,
		ClubsCap:           25,
		SessionsFactor:     4,
		SessionsCap:        20,
		CoverageFactor:     4,
		CoverageCap:        15,
		ConfidenceMediumAt: 45,
		ConfidenceHighAt:   75,

		FlatDeltaEpsilon: 0.1,

		CorrelationThreshold:     0.55,
		CorrelationMinShots:      20,
		FatigueMinShots:          70,
		FatigueSplitIndex:        60,
		FatigueRatio:             1.2,
		DirectionStdDevThreshold: 15.0,
		TopClubMinShots:          8,
		DrillMemoryMinLogs:       2,
		DrillMemoryGoodOutcome:   3.8,
	}
}
