package adaptive

// Classification thresholds. Evaluated in fixed priority order, first
// match wins, so overlapping conditions never produce ambiguous levels.
const (
	advancedMinScore    = 90
	advancedMaxAttempts = 2

	proficientMinScore    = 75
	proficientMaxAttempts = 3

	developingMinScore    = 60
	developingMaxAttempts = 4
)

// ClassifyPerformance classifies one unit's metrics into a Level.
// For fixed attempts, a higher score never yields a lower level.
func ClassifyPerformance(m Metrics) Level {
	switch {
	case m.Score >= advancedMinScore && m.Attempts <= advancedMaxAttempts:
		return LevelAdvanced
	case m.Score >= proficientMinScore && m.Attempts <= proficientMaxAttempts:
		return LevelProficient
	case m.Score >= developingMinScore || m.Attempts <= developingMaxAttempts:
		return LevelDeveloping
	default:
		return LevelStruggling
	}
}
