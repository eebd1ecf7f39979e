package analytics

import "sort"

// TagOutliers flags statistically anomalous carry distances per club using an
// IQR fence. It returns a new slice with flags set; the caller's shots are
// never modified, and outliers are tagged, never removed. Groups with fewer
// than OutlierMinSamples measured carries are left untouched. Re-running on
// an already tagged slice is a no-op for shots inside the fence.
func (e *Engine) TagOutliers(shots []ShotRecord) []ShotRecord {
	tagged := make([]ShotRecord, len(shots))
	copy(tagged, shots)

	groups := make(map[string][]int)
	for i, s := range tagged {
		key := s.ClubType
		if key == "" {
			key = "Unknown"
		}
		groups[key] = append(groups[key], i)
	}

	for club, idxs := range groups {
		carries := make([]float64, 0, len(idxs))
		for _, i := range idxs {
			if tagged[i].Carry != nil {
				carries = append(carries, *tagged[i].Carry)
			}
		}
		if len(carries) < e.thresholds.OutlierMinSamples {
			continue
		}

		sort.Float64s(carries)
		q1 := quantile(carries, 0.25)
		q3 := quantile(carries, 0.75)
		iqr := q3 - q1
		lower := q1 - e.thresholds.IQRMultiplier*iqr
		upper := q3 + e.thresholds.IQRMultiplier*iqr

		flagged := 0
		for _, i := range idxs {
			if tagged[i].Carry == nil {
				continue
			}
			carry := *tagged[i].Carry
			if carry < lower || carry > upper {
				tagged[i].IsOutlier = true
				tagged[i].QualityFlags = appendFlag(tagged[i].QualityFlags, FlagCarryOutlier)
				flagged++
			}
		}
		if flagged > 0 {
			e.log.WithFields(map[string]interface{}{
				"club_type": club,
				"flagged":   flagged,
				"lower":     lower,
				"upper":     upper,
			}).Debug("Tagged carry outliers")
		}
	}

	return tagged
}

// appendFlag returns a new flag slice containing flag exactly once. Copying
// keeps the tagged shot from sharing backing storage with the input shot.
func appendFlag(flags []string, flag string) []string {
	for _, f := range flags {
		if f == flag {
			return flags
		}
	}
	out := make([]string, 0, len(flags)+1)
	out = append(out, flags...)
	return append(out, flag)
}
