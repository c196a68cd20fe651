package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveChannel_ExactMatchWins(t *testing.T) {
	exact := Channel{ID: 1, Code: "S_1_10", Kind: "PM2.5"}
	suffixCandidate := Channel{ID: 2, Code: "T_9_10", Kind: "Temperature"}
	byCode := map[string]Channel{
		exact.Code:           exact,
		suffixCandidate.Code: suffixCandidate,
	}

	// "S_1_10" ends in "10", so the suffix rule would also match T_9_10;
	// the exact code match must take priority.
	ch, res := ResolveChannel("S_1_10", byCode)
	assert.Equal(t, ResolvedExact, res)
	assert.Equal(t, exact.ID, ch.ID)
}

func TestResolveChannel_SuffixFallback(t *testing.T) {
	pm25 := Channel{ID: 1, Code: "S_1_10", Kind: "PM2.5"}
	byCode := map[string]Channel{pm25.Code: pm25}

	ch, res := ResolveChannel("Station1_10", byCode)
	assert.Equal(t, ResolvedSuffix, res)
	assert.Equal(t, pm25.ID, ch.ID)
}

func TestResolveChannel_AmbiguousSuffixFlagged(t *testing.T) {
	byCode := map[string]Channel{
		"S_1_10": {ID: 1, Code: "S_1_10"},
		"S_2_10": {ID: 2, Code: "S_2_10"},
	}

	_, res := ResolveChannel("Station1_10", byCode)
	assert.Equal(t, ResolutionAmbiguous, res)
}

func TestResolveChannel_NoMatch(t *testing.T) {
	byCode := map[string]Channel{
		"S_1_10": {ID: 1, Code: "S_1_10"},
	}

	_, res := ResolveChannel("Humidity_7", byCode)
	assert.Equal(t, ResolutionNone, res)
}

func TestResolveChannel_CodeWithoutUnderscore(t *testing.T) {
	byCode := map[string]Channel{
		"PM25": {ID: 3, Code: "PM25"},
	}

	ch, res := ResolveChannel("Station_PM25", byCode)
	assert.Equal(t, ResolvedSuffix, res)
	assert.Equal(t, int64(3), ch.ID)
}
