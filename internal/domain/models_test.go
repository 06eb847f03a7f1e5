package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasEnemyData(t *testing.T) {
	assert.True(t, HasEnemyData("Zed"))
	assert.False(t, HasEnemyData(""))
	assert.False(t, HasEnemyData(UnknownEnemy))
}

func TestValidImpactRating(t *testing.T) {
	for _, r := range ImpactRatings {
		assert.True(t, ValidImpactRating(r))
	}
	assert.False(t, ValidImpactRating("MVP"))
	assert.False(t, ValidImpactRating(""))
}

func TestMatchReviewEmpty(t *testing.T) {
	assert.True(t, MatchReview{}.Empty())

	notes := "dodge early all-ins"
	assert.False(t, MatchReview{Notes: &notes}.Empty())
}
