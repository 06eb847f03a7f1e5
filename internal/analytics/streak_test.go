package analytics

import (
	"testing"

	"lol-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
)

func window(results ...bool) []domain.Match {
	matches := make([]domain.Match, len(results))
	for i, win := range results {
		matches[i] = domain.Match{Win: win}
	}
	return matches
}

func TestEvaluateStreakStopAdvised(t *testing.T) {
	policy := DefaultStreakPolicy()

	// Two straight losses, then a win further back.
	advice := EvaluateStreak(window(false, false, true), policy)
	assert.Equal(t, StopAdvised, advice.Verdict)
	assert.Equal(t, 2, advice.LossStreak)

	// Three straight losses.
	advice = EvaluateStreak(window(false, false, false), policy)
	assert.Equal(t, StopAdvised, advice.Verdict)
	assert.Equal(t, 3, advice.LossStreak)
}

func TestEvaluateStreakOnFire(t *testing.T) {
	advice := EvaluateStreak(window(true, true, true), DefaultStreakPolicy())
	assert.Equal(t, OnFire, advice.Verdict)
	assert.Equal(t, 0, advice.LossStreak)
}

func TestEvaluateStreakNeutral(t *testing.T) {
	policy := DefaultStreakPolicy()

	advice := EvaluateStreak(window(true, false, true), policy)
	assert.Equal(t, Neutral, advice.Verdict)
	assert.Equal(t, []bool{true, false, true}, advice.Results)

	// A loss behind a win is not part of the current streak.
	advice = EvaluateStreak(window(false, true, false), policy)
	assert.Equal(t, Neutral, advice.Verdict)
	assert.Equal(t, 1, advice.LossStreak)
}

func TestEvaluateStreakPartialWindow(t *testing.T) {
	policy := DefaultStreakPolicy()

	// Two wins is not "on fire": the window must be full.
	advice := EvaluateStreak(window(true, true), policy)
	assert.Equal(t, Neutral, advice.Verdict)

	advice = EvaluateStreak(window(false, false), policy)
	assert.Equal(t, StopAdvised, advice.Verdict)

	advice = EvaluateStreak(nil, policy)
	assert.Equal(t, Neutral, advice.Verdict)
	assert.Equal(t, 0, advice.LossStreak)
}

func TestEvaluateStreakCustomPolicy(t *testing.T) {
	policy := StreakPolicy{WindowSize: 5, StopThreshold: 3}

	advice := EvaluateStreak(window(false, false, true, false, false), policy)
	assert.Equal(t, Neutral, advice.Verdict, "two contiguous losses are below a threshold of 3")

	advice = EvaluateStreak(window(false, false, false, true, true), policy)
	assert.Equal(t, StopAdvised, advice.Verdict)

	advice = EvaluateStreak(window(true, true, true, true, true), policy)
	assert.Equal(t, OnFire, advice.Verdict)
}

func TestEvaluateStreakIsPure(t *testing.T) {
	policy := DefaultStreakPolicy()
	w := window(false, false, true)

	first := EvaluateStreak(w, policy)
	second := EvaluateStreak(w, policy)
	assert.Equal(t, first, second)
}
