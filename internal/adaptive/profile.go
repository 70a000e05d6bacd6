package adaptive

import (
	"math"
	"sort"

	"github.com/questdeck/questdeck/internal/catalog"
)

// Velocity and pattern thresholds.
const (
	fastMinScore   = 80.0
	fastMaxTimeSec = 300.0
	slowMaxScore   = 70.0
	slowMinTimeSec = 600.0

	trendDelta     = 10.0
	variableStdDev = 15.0

	strengthMinScore  = 80.0
	challengeMaxScore = 70.0
)

// BuildProfile aggregates all completed units into a fresh Profile.
// The metrics slice must be in completion order (the trend split depends
// on it). An empty slice yields the neutral default profile so the first
// unit of a session can still request a strategy.
func BuildProfile(sessionID string, completed []Metrics) *Profile {
	p := &Profile{
		SessionID: sessionID,
		Velocity:  VelocityModerate,
		Pattern:   PatternConsistent,
		BySubject: make(map[catalog.Subject]UnitStats),
		ByStage:   make(map[catalog.Stage]UnitStats),
	}
	if len(completed) == 0 {
		return p
	}

	p.Units = len(completed)

	var scoreSum, attemptSum, timeSum float64
	subjectUnits := make(map[catalog.Subject][]Metrics)
	stageUnits := make(map[catalog.Stage][]Metrics)
	for _, m := range completed {
		scoreSum += float64(m.Score)
		attemptSum += float64(m.Attempts)
		timeSum += float64(m.TimeSpentSec)
		subjectUnits[m.Subject] = append(subjectUnits[m.Subject], m)
		stageUnits[m.Stage] = append(stageUnits[m.Stage], m)
	}
	n := float64(len(completed))
	p.MeanScore = scoreSum / n
	p.MeanAttempts = attemptSum / n
	p.MeanTimeSec = timeSum / n

	for subj, units := range subjectUnits {
		p.BySubject[subj] = rollup(units)
	}
	for stage, units := range stageUnits {
		p.ByStage[stage] = rollup(units)
	}

	p.Velocity = classifyVelocity(p.MeanScore, p.MeanTimeSec)
	p.Pattern = classifyPattern(completed)

	for subj, stats := range p.BySubject {
		switch {
		case stats.MeanScore >= strengthMinScore:
			p.Strengths = append(p.Strengths, subj)
		case stats.MeanScore < challengeMaxScore:
			p.Challenges = append(p.Challenges, subj)
		}
	}
	// Map iteration order is random; keep the lists stable.
	sort.Slice(p.Strengths, func(i, j int) bool { return p.Strengths[i] < p.Strengths[j] })
	sort.Slice(p.Challenges, func(i, j int) bool { return p.Challenges[i] < p.Challenges[j] })

	return p
}

func rollup(units []Metrics) UnitStats {
	var scoreSum, attemptSum, timeSum float64
	for _, m := range units {
		scoreSum += float64(m.Score)
		attemptSum += float64(m.Attempts)
		timeSum += float64(m.TimeSpentSec)
	}
	n := float64(len(units))
	return UnitStats{
		Units:        len(units),
		MeanScore:    scoreSum / n,
		MeanAttempts: attemptSum / n,
		MeanTimeSec:  timeSum / n,
	}
}

func classifyVelocity(meanScore, meanTimeSec float64) Velocity {
	switch {
	case meanScore >= fastMinScore && meanTimeSec < fastMaxTimeSec:
		return VelocityFast
	case meanScore < slowMaxScore || meanTimeSec > slowMinTimeSec:
		return VelocitySlow
	default:
		return VelocityModerate
	}
}

// classifyPattern splits completed units into first/second halves by
// completion order and compares half means; a large standard deviation
// trumps a flat trend.
func classifyPattern(completed []Metrics) Pattern {
	if len(completed) < 2 {
		return PatternConsistent
	}

	half := len(completed) / 2
	firstMean := meanScore(completed[:half])
	secondMean := meanScore(completed[half:])

	switch {
	case secondMean-firstMean > trendDelta:
		return PatternImproving
	case firstMean-secondMean > trendDelta:
		return PatternDeclining
	case scoreStdDev(completed) > variableStdDev:
		return PatternVariable
	default:
		return PatternConsistent
	}
}

func meanScore(units []Metrics) float64 {
	if len(units) == 0 {
		return 0
	}
	var sum float64
	for _, m := range units {
		sum += float64(m.Score)
	}
	return sum / float64(len(units))
}

func scoreStdDev(units []Metrics) float64 {
	mean := meanScore(units)
	var sq float64
	for _, m := range units {
		d := float64(m.Score) - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(units)))
}
