package analytics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Canonical field names resolved by the normalizer.
const (
	fieldClubType    = "clubType"
	fieldClubName    = "clubName"
	fieldClubModel   = "clubModel"
	fieldBallSpeed   = "ballSpeed"
	fieldLaunchAngle = "launchAngle"
	fieldCarry       = "carryDistance"
	fieldTotal       = "totalDistance"
	fieldSide        = "sideDistance"
	fieldSpinRate    = "spinRate"
)

// headerAliases maps each canonical field to the normalized header strings
// that resolve to it, in priority order. Launch monitors and export tools
// disagree on column naming; this table absorbs the variants seen across
// Garmin, Rapsodo and FlightScope CSV exports.
var headerAliases = map[string][]string{
	fieldClubType: {
		"club type", "club", "type", "club category",
	},
	fieldClubName: {
		"club name", "club nickname", "nickname", "name",
	},
	fieldClubModel: {
		"club model", "model", "club description",
	},
	fieldBallSpeed: {
		"ball speed", "ball speed mph", "ballspeed", "ball velocity",
	},
	fieldLaunchAngle: {
		"launch angle", "launch angle deg", "vertical launch angle", "vla", "launch",
	},
	fieldCarry: {
		"carry distance", "carry", "carry yds", "carry yards", "carry distance yds",
	},
	fieldTotal: {
		"total distance", "total", "total yds", "total yards", "distance",
	},
	fieldSide: {
		"side distance", "offline distance", "offline", "lateral distance", "lateral",
		"carry deviation distance", "deviation distance", "side",
	},
	fieldSpinRate: {
		"spin rate", "total spin", "backspin", "spin rpm", "spin",
	},
}

// normalizeHeader canonicalizes a raw column header: BOM stripped, trimmed,
// lowercased, with runs of anything outside [a-z0-9_-] collapsed to a single
// space.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	var b strings.Builder
	lastSpace := false
	for _, r := range h {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// parseNumber coerces a locale-formatted numeric cell to a value, or nil for
// anything unparsable. When both ',' and '.' appear, the separator occurring
// last is the decimal point and earlier occurrences of the other are grouping
// marks; a lone ',' is treated as the decimal point.
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// Strip internal whitespace (thin-space grouping included)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ".") > strings.LastIndex(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	// Drop units and any other residue
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// resolveField finds the first alias of the canonical field present in the
// normalized row and returns its cell value.
func resolveField(normalized map[string]string, field string) (string, bool) {
	for _, alias := range headerAliases[field] {
		if v, ok := normalized[alias]; ok {
			return v, true
		}
	}
	return "", false
}

// NormalizeRows converts raw header-to-value rows into shot records. Rows
// whose club identity is unknown and which carry no measurement at all are
// dropped; everything else is kept, flagged where the data looks suspect.
func (e *Engine) NormalizeRows(rows []map[string]string) []ShotRecord {
	shots := make([]ShotRecord, 0, len(rows))
	dropped := 0

	for _, row := range rows {
		normalized := make(map[string]string, len(row))
		for k, v := range row {
			nk := normalizeHeader(k)
			if _, exists := normalized[nk]; !exists {
				normalized[nk] = v
			}
		}

		shot := ShotRecord{ClubType: "Unknown", Raw: row}
		if v, ok := resolveField(normalized, fieldClubType); ok {
			if t := strings.TrimSpace(v); t != "" {
				shot.ClubType = t
			}
		}
		if v, ok := resolveField(normalized, fieldClubName); ok {
			shot.ClubName = strings.TrimSpace(v)
		}
		if v, ok := resolveField(normalized, fieldClubModel); ok {
			shot.ClubModel = strings.TrimSpace(v)
		}

		numeric := func(field string) *float64 {
			v, ok := resolveField(normalized, field)
			if !ok {
				return nil
			}
			return parseNumber(v)
		}
		shot.BallSpeed = numeric(fieldBallSpeed)
		shot.LaunchAngle = numeric(fieldLaunchAngle)
		shot.Carry = numeric(fieldCarry)
		shot.Total = numeric(fieldTotal)
		shot.Side = numeric(fieldSide)
		shot.SpinRate = numeric(fieldSpinRate)

		// A row with no identity and no measurement has no analytical value.
		if shot.ClubType == "Unknown" && !shot.HasAnyMetric() {
			dropped++
			continue
		}

		if shot.ClubName != "" {
			shot.DisplayClub = fmt.Sprintf("%s (%s)", shot.ClubType, shot.ClubName)
		} else {
			shot.DisplayClub = shot.ClubType
		}

		if shot.ClubType == "Unknown" {
			shot.QualityFlags = append(shot.QualityFlags, FlagUnknownClub)
		}
		if shot.Carry != nil && *shot.Carry < 0 {
			shot.QualityFlags = append(shot.QualityFlags, FlagNegativeCarry)
		}

		shots = append(shots, shot)
	}

	if dropped > 0 {
		e.log.WithField("dropped_rows", dropped).Debug("Dropped rows with no club identity or measurements")
	}
	return shots
}
