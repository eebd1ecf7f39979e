package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{
			name:     "Plain decimal",
			input:    "163.4",
			expected: floatPtr(163.4),
		},
		{
			name:     "US grouping with dot decimal",
			input:    "1,234.5",
			expected: floatPtr(1234.5),
		},
		{
			name:     "European grouping with comma decimal",
			input:    "1.234,5",
			expected: floatPtr(1234.5),
		},
		{
			name:     "Lone comma is the decimal point",
			input:    "1,5",
			expected: floatPtr(1.5),
		},
		{
			name:     "Trailing unit stripped",
			input:    "163.4 yds",
			expected: floatPtr(163.4),
		},
		{
			name:     "Space-grouped thousands",
			input:    "1 234,5",
			expected: floatPtr(1234.5),
		},
		{
			name:     "Negative value",
			input:    "-12.5",
			expected: floatPtr(-12.5),
		},
		{
			name:     "Integer",
			input:    "7200",
			expected: floatPtr(7200),
		},
		{
			name:     "Empty cell",
			input:    "",
			expected: nil,
		},
		{
			name:     "Whitespace only",
			input:    "   ",
			expected: nil,
		},
		{
			name:     "Non-numeric text",
			input:    "n/a",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseNumber(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.expected, *got, 1e-9)
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Parenthesized unit collapses to one space",
			input:    "Carry Distance (yds)",
			expected: "carry distance yds",
		},
		{
			name:     "Bracketed unit",
			input:    "Ball Speed [mph]",
			expected: "ball speed mph",
		},
		{
			name:     "BOM and surrounding space stripped",
			input:    "\ufeff Club Type ",
			expected: "club type",
		},
		{
			name:     "Underscores and hyphens survive",
			input:    "launch_angle-deg",
			expected: "launch_angle-deg",
		},
		{
			name:     "Mixed punctuation runs collapse",
			input:    "Spin   Rate -- (rpm)",
			expected: "spin rate -- rpm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeHeader(tt.input))
		})
	}
}

func TestNormalizeRows(t *testing.T) {
	engine := newTestEngine()

	t.Run("Aliased headers resolve to canonical fields", func(t *testing.T) {
		rows := []map[string]string{
			{
				"Club Type":            "7 Iron",
				"Club Name":            "My 7i",
				"Ball Speed (mph)":     "112.3",
				"Carry Distance (yds)": "152.0",
				"Offline Distance":     "-4.2",
				"Total Spin":           "6800",
			},
		}

		shots := engine.NormalizeRows(rows)
		require.Len(t, shots, 1)

		shot := shots[0]
		assert.Equal(t, "7 Iron", shot.ClubType)
		assert.Equal(t, "My 7i", shot.ClubName)
		assert.Equal(t, "7 Iron (My 7i)", shot.DisplayClub)
		require.NotNil(t, shot.BallSpeed)
		assert.Equal(t, 112.3, *shot.BallSpeed)
		require.NotNil(t, shot.Carry)
		assert.Equal(t, 152.0, *shot.Carry)
		require.NotNil(t, shot.Side)
		assert.Equal(t, -4.2, *shot.Side)
		require.NotNil(t, shot.SpinRate)
		assert.Equal(t, 6800.0, *shot.SpinRate)
		assert.Empty(t, shot.QualityFlags)
	})

	t.Run("Missing club type defaults to Unknown with flag", func(t *testing.T) {
		rows := []map[string]string{
			{"Carry": "140.5"},
		}

		shots := engine.NormalizeRows(rows)
		require.Len(t, shots, 1)
		assert.Equal(t, "Unknown", shots[0].ClubType)
		assert.Equal(t, "Unknown", shots[0].DisplayClub)
		assert.Contains(t, shots[0].QualityFlags, FlagUnknownClub)
	})

	t.Run("Unknown club with no measurements is dropped", func(t *testing.T) {
		rows := []map[string]string{
			{"Notes": "warm up swing"},
			{"Club Type": "Driver", "Carry": "250"},
		}

		shots := engine.NormalizeRows(rows)
		require.Len(t, shots, 1)
		assert.Equal(t, "Driver", shots[0].ClubType)
	})

	t.Run("Known club with no measurements is kept", func(t *testing.T) {
		rows := []map[string]string{
			{"Club Type": "Driver"},
		}

		shots := engine.NormalizeRows(rows)
		require.Len(t, shots, 1)
		assert.False(t, shots[0].HasAnyMetric())
	})

	t.Run("Negative carry is kept and flagged", func(t *testing.T) {
		rows := []map[string]string{
			{"Club Type": "Pitching Wedge", "Carry": "-3.0"},
		}

		shots := engine.NormalizeRows(rows)
		require.Len(t, shots, 1)
		assert.Contains(t, shots[0].QualityFlags, FlagNegativeCarry)
		require.NotNil(t, shots[0].Carry)
		assert.Equal(t, -3.0, *shots[0].Carry)
	})

	t.Run("Malformed numeric cell degrades to missing", func(t *testing.T) {
		rows := []map[string]string{
			{"Club Type": "7 Iron", "Carry": "error", "Ball Speed": "110.0"},
		}

		shots := engine.NormalizeRows(rows)
		require.Len(t, shots, 1)
		assert.Nil(t, shots[0].Carry)
		require.NotNil(t, shots[0].BallSpeed)
	})

	t.Run("Raw row is preserved on the record", func(t *testing.T) {
		rows := []map[string]string{
			{"Club Type": "Driver", "Carry": "250", "Session Note": "windy"},
		}

		shots := engine.NormalizeRows(rows)
		require.Len(t, shots, 1)
		assert.Equal(t, "windy", shots[0].Raw["Session Note"])
	})
}
