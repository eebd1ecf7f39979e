package analytics

import (
	"fmt"
	"math"
	"sort"
)

// BuildLadder orders clubs by descending median carry and classifies the gap
// to each club's nearest shorter neighbor. Clubs without a median carry are
// excluded. The ladder degrades gracefully: zero or one qualifying club
// yields an empty or single-row ladder with an explanatory insight.
func (e *Engine) BuildLadder(summary SessionSummary) GappingLadder {
	var ladder GappingLadder

	for _, club := range summary.Clubs {
		if club.MedianCarry == nil {
			continue
		}
		ladder.Rows = append(ladder.Rows, LadderRow{
			ClubType:       club.ClubType,
			DisplayName:    club.DisplayName,
			MedianCarry:    *club.MedianCarry,
			P10Carry:       club.P10Carry,
			P90Carry:       club.P90Carry,
			Classification: GapNone,
		})
	}
	sort.SliceStable(ladder.Rows, func(i, j int) bool {
		return ladder.Rows[i].MedianCarry > ladder.Rows[j].MedianCarry
	})

	for i := 0; i < len(ladder.Rows)-1; i++ {
		row := &ladder.Rows[i]
		next := ladder.Rows[i+1]

		gap := round1(row.MedianCarry - next.MedianCarry)
		row.GapToNext = floatPtr(gap)

		// Dispersion-band overlap between the two clubs, when both bands
		// are known.
		if row.P10Carry != nil && next.P90Carry != nil {
			row.OverlapAmount = floatPtr(round1(math.Max(0, *next.P90Carry-*row.P10Carry)))
		}

		row.Classification = e.classifyGap(gap, clubFamily(row.ClubType))
		row.Warning = e.gapWarning(*row, next)
	}

	ladder.Insights = e.ladderInsights(ladder.Rows)
	return ladder
}

// classifyGap applies the gap bands. The overlap check is deliberately
// family-independent and runs first, even for the long clubs whose
// compressed band extends further.
func (e *Engine) classifyGap(gap float64, family ClubFamily) GapClass {
	t := e.thresholds
	if gap < t.OverlapGapYards {
		return GapOverlap
	}
	compressed, healthyMax := t.ShortGapCompressed, t.ShortGapHealthyMax
	if family == FamilyHybrid || family == FamilyWood || family == FamilyDriver {
		compressed, healthyMax = t.LongGapCompressed, t.LongGapHealthyMax
	}
	switch {
	case gap < compressed:
		return GapCompressed
	case gap <= healthyMax:
		return GapHealthy
	default:
		return GapCliff
	}
}

func (e *Engine) gapWarning(row LadderRow, next LadderRow) string {
	gap := *row.GapToNext
	switch row.Classification {
	case GapOverlap:
		return fmt.Sprintf("%s and %s carry almost the same distance: only %.1f yds apart", row.DisplayName, next.DisplayName, gap)
	case GapCompressed:
		return fmt.Sprintf("Gap between %s and %s is compressed at %.1f yds", row.DisplayName, next.DisplayName, gap)
	case GapCliff:
		msg := fmt.Sprintf("Distance cliff of %.1f yds between %s and %s", gap, row.DisplayName, next.DisplayName)
		if row.OverlapAmount != nil {
			msg += fmt.Sprintf(" (dispersion bands overlap by %.1f yds)", *row.OverlapAmount)
		}
		return msg
	default:
		return ""
	}
}

func (e *Engine) ladderInsights(rows []LadderRow) []LadderInsight {
	if len(rows) < 2 {
		return []LadderInsight{{
			Severity: SeverityInfo,
			Message:  "Not enough clubs with carry data to assess bag gapping",
		}}
	}

	overlaps, cliffs, compressed := countGapAlerts(rows)

	var insights []LadderInsight
	if overlaps > 0 {
		insights = append(insights, LadderInsight{
			Severity: SeverityDanger,
			Message:  fmt.Sprintf("%d club pair(s) overlap in carry distance", overlaps),
		})
	}
	if cliffs > 0 {
		insights = append(insights, LadderInsight{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%d distance cliff(s) leave yardages uncovered", cliffs),
		})
	}
	if compressed > 0 {
		insights = append(insights, LadderInsight{
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("%d gap(s) are compressed below the healthy band", compressed),
		})
	}
	if len(insights) == 0 {
		insights = append(insights, LadderInsight{
			Severity: SeverityInfo,
			Message:  "Bag gapping looks healthy across all measured clubs",
		})
	}
	return insights
}

func countGapAlerts(rows []LadderRow) (overlaps, cliffs, compressed int) {
	for _, row := range rows {
		switch row.Classification {
		case GapOverlap:
			overlaps++
		case GapCliff:
			cliffs++
		case GapCompressed:
			compressed++
		}
	}
	return
}
