package analytics

import (
	"regexp"
	"strconv"
	"strings"
)

// ClubFamily groups clubs for gap classification. Wedges, irons and
// unrecognized clubs share the short-game gap bands; hybrids, woods and the
// driver share the long-game bands.
type ClubFamily string

const (
	FamilyWedge  ClubFamily = "wedge"
	FamilyIron   ClubFamily = "iron"
	FamilyHybrid ClubFamily = "hybrid"
	FamilyWood   ClubFamily = "wood"
	FamilyDriver ClubFamily = "driver"
	FamilyOther  ClubFamily = "other"
)

var (
	ironRe   = regexp.MustCompile(`(\d+)\s*iron`)
	hybridRe = regexp.MustCompile(`(\d+)\s*hybrid`)
	woodRe   = regexp.MustCompile(`(\d+)\s*wood`)
)

// wedgeRanks orders wedges highest loft first. Abbreviated names from
// monitor exports map to the same ranks.
var wedgeRanks = map[string]int{
	"lob":      0,
	"sand":     1,
	"gap":      2,
	"approach": 3,
	"pitching": 4,
	"lw":       0,
	"sw":       1,
	"gw":       2,
	"aw":       3,
	"pw":       4,
}

// clubFamily infers the family from the canonical club name.
func clubFamily(clubType string) ClubFamily {
	name := strings.ToLower(clubType)
	if wedgeRank(name) >= 0 {
		return FamilyWedge
	}
	if ironRe.MatchString(name) {
		return FamilyIron
	}
	if hybridRe.MatchString(name) {
		return FamilyHybrid
	}
	if woodRe.MatchString(name) {
		return FamilyWood
	}
	if strings.Contains(name, "driver") {
		return FamilyDriver
	}
	return FamilyOther
}

// wedgeRank returns the wedge priority of a lowercased name, or -1 when the
// name is not a wedge.
func wedgeRank(name string) int {
	if _, ok := wedgeRanks[name]; ok {
		return wedgeRanks[name]
	}
	if !strings.Contains(name, "wedge") {
		return -1
	}
	for keyword, rank := range wedgeRanks {
		if len(keyword) > 2 && strings.Contains(name, keyword) {
			return rank
		}
	}
	// Generic wedge sorts after the named ones
	return 5
}

func familyNumber(re *regexp.Regexp, name string) int {
	m := re.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// clubSortKey returns the (band, rank) pair that drives the deterministic
// club ordering: wedges lob-to-pitching, irons high loft first, hybrids and
// woods by number, driver, then everything else.
func clubSortKey(clubType string) (int, int) {
	name := strings.ToLower(clubType)
	if r := wedgeRank(name); r >= 0 {
		return 0, r
	}
	if ironRe.MatchString(name) {
		// 9 iron before 8 iron: higher loft carries shorter
		return 1, -familyNumber(ironRe, name)
	}
	if hybridRe.MatchString(name) {
		return 2, familyNumber(hybridRe, name)
	}
	if woodRe.MatchString(name) {
		return 3, familyNumber(woodRe, name)
	}
	if strings.Contains(name, "driver") {
		return 4, 0
	}
	return 5, 0
}

// clubOrderLess is the comparator behind the per-club summary ordering, with
// an alphabetical final tiebreak.
func clubOrderLess(a, b string) bool {
	bandA, rankA := clubSortKey(a)
	bandB, rankB := clubSortKey(b)
	if bandA != bandB {
		return bandA < bandB
	}
	if rankA != rankB {
		return rankA < rankB
	}
	return strings.ToLower(a) < strings.ToLower(b)
}
