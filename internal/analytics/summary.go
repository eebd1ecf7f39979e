package analytics

import "sort"

// Summarize aggregates a session's shots into session-wide averages and
// per-club robust statistics. Callers decide outlier inclusion by filtering
// the slice beforehand; the summarizer aggregates exactly what it is given.
func (e *Engine) Summarize(shots []ShotRecord) SessionSummary {
	summary := SessionSummary{ShotCount: len(shots)}

	var carries, speeds, launches, spins []float64
	for _, s := range shots {
		if s.Carry != nil {
			carries = append(carries, *s.Carry)
		}
		if s.BallSpeed != nil {
			speeds = append(speeds, *s.BallSpeed)
		}
		if s.LaunchAngle != nil {
			launches = append(launches, *s.LaunchAngle)
		}
		if s.SpinRate != nil {
			spins = append(spins, *s.SpinRate)
		}
	}
	summary.AvgCarry = meanOf(carries)
	summary.AvgBallSpeed = meanOf(speeds)
	summary.AvgLaunchAngle = meanOf(launches)
	summary.AvgSpinRate = meanOf(spins)

	// Group by canonical club type, preserving first-seen shot order within
	// each group so "first shot with a nickname" is well defined.
	groups := make(map[string][]ShotRecord)
	var clubTypes []string
	for _, s := range shots {
		key := s.ClubType
		if key == "" {
			key = "Unknown"
		}
		if _, seen := groups[key]; !seen {
			clubTypes = append(clubTypes, key)
		}
		groups[key] = append(groups[key], s)
	}
	sort.Slice(clubTypes, func(i, j int) bool {
		return clubOrderLess(clubTypes[i], clubTypes[j])
	})

	for _, clubType := range clubTypes {
		group := groups[clubType]
		club := ClubSummary{
			ClubType:    clubType,
			DisplayName: clubType,
			ShotCount:   len(group),
		}

		var clubCarries, sides []float64
		seenAlias := make(map[string]bool)
		seenModel := make(map[string]bool)
		for _, s := range group {
			if s.ClubName != "" && club.DisplayName == clubType {
				club.DisplayName = s.DisplayClub
			}
			if s.ClubName != "" && !seenAlias[s.ClubName] {
				seenAlias[s.ClubName] = true
				club.Aliases = append(club.Aliases, s.ClubName)
			}
			if s.ClubModel != "" && !seenModel[s.ClubModel] {
				seenModel[s.ClubModel] = true
				club.Models = append(club.Models, s.ClubModel)
			}
			if s.Carry != nil {
				clubCarries = append(clubCarries, *s.Carry)
			}
			if s.Side != nil {
				sides = append(sides, *s.Side)
			}
		}

		club.AvgCarry = meanOf(clubCarries)
		club.MedianCarry = quantileOf(clubCarries, 0.5)
		club.P10Carry = quantileOf(clubCarries, 0.1)
		club.P90Carry = quantileOf(clubCarries, 0.9)
		club.CarryStdDev = stdDevOf(clubCarries)
		club.SideStdDev = stdDevOf(sides)

		summary.Clubs = append(summary.Clubs, club)
	}

	return summary
}
