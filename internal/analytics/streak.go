package analytics

import (
	"lol-tracker/internal/domain"
)

// Verdict is the session-continuation recommendation.
type Verdict string

const (
	StopAdvised Verdict = "stop"
	OnFire      Verdict = "on_fire"
	Neutral     Verdict = "neutral"
)

// StreakPolicy parametrizes the evaluator. The reference policy looks at
// the 3 most recent games and advises stopping after 2 straight losses.
type StreakPolicy struct {
	WindowSize    int
	StopThreshold int
}

func DefaultStreakPolicy() StreakPolicy {
	return StreakPolicy{WindowSize: 3, StopThreshold: 2}
}

// StreakAdvice carries the classification plus the raw win/loss sequence
// (most recent first) for display.
type StreakAdvice struct {
	Verdict    Verdict `json:"verdict"`
	LossStreak int     `json:"loss_streak"`
	Results    []bool  `json:"results"`
}

// EvaluateStreak classifies a window of recent matches, ordered most
// recent first. The loss streak counts contiguous losses from the top of
// the window until the first win; older losses behind a win do not count.
// OnFire requires the window to be full and all wins.
func EvaluateStreak(window []domain.Match, policy StreakPolicy) StreakAdvice {
	results := make([]bool, len(window))
	wins := 0
	for i, m := range window {
		results[i] = m.Win
		if m.Win {
			wins++
		}
	}

	lossStreak := 0
	for _, m := range window {
		if m.Win {
			break
		}
		lossStreak++
	}

	advice := StreakAdvice{Verdict: Neutral, LossStreak: lossStreak, Results: results}
	switch {
	case lossStreak >= policy.StopThreshold:
		advice.Verdict = StopAdvised
	case len(window) == policy.WindowSize && wins == policy.WindowSize && policy.WindowSize > 0:
		advice.Verdict = OnFire
	}
	return advice
}
