package adaptive

import (
	"testing"

	"github.com/questdeck/questdeck/internal/catalog"
)

func unit(subject catalog.Subject, score, attempts, timeSec int) Metrics {
	return Metrics{
		Score:        score,
		Attempts:     attempts,
		TimeSpentSec: timeSec,
		Stage:        catalog.StageLearn,
		Subject:      subject,
	}
}

func TestBuildProfileEmpty(t *testing.T) {
	p := BuildProfile("s1", nil)

	if p.Units != 0 {
		t.Errorf("Units = %d, want 0", p.Units)
	}
	if p.Velocity != VelocityModerate {
		t.Errorf("Velocity = %s, want %s", p.Velocity, VelocityModerate)
	}
	if p.Pattern != PatternConsistent {
		t.Errorf("Pattern = %s, want %s", p.Pattern, PatternConsistent)
	}
	if len(p.Strengths) != 0 || len(p.Challenges) != 0 {
		t.Errorf("expected no strengths/challenges, got %v / %v", p.Strengths, p.Challenges)
	}
}

func TestBuildProfileAggregates(t *testing.T) {
	completed := []Metrics{
		unit(catalog.SubjectMath, 90, 1, 200),
		unit(catalog.SubjectReading, 70, 3, 400),
		unit(catalog.SubjectScience, 80, 2, 300),
	}
	p := BuildProfile("s1", completed)

	if p.Units != 3 {
		t.Fatalf("Units = %d, want 3", p.Units)
	}
	if p.MeanScore != 80 {
		t.Errorf("MeanScore = %v, want 80", p.MeanScore)
	}
	if p.MeanAttempts != 2 {
		t.Errorf("MeanAttempts = %v, want 2", p.MeanAttempts)
	}
	if p.MeanTimeSec != 300 {
		t.Errorf("MeanTimeSec = %v, want 300", p.MeanTimeSec)
	}

	math := p.BySubject[catalog.SubjectMath]
	if math.Units != 1 || math.MeanScore != 90 {
		t.Errorf("math stats = %+v, want 1 unit at 90", math)
	}
	learn := p.ByStage[catalog.StageLearn]
	if learn.Units != 3 {
		t.Errorf("learn stage units = %d, want 3", learn.Units)
	}
}

func TestBuildProfileVelocity(t *testing.T) {
	tests := []struct {
		name  string
		units []Metrics
		want  Velocity
	}{
		{
			"fast needs high score and low time",
			[]Metrics{unit(catalog.SubjectMath, 85, 1, 250)},
			VelocityFast,
		},
		{
			"slow by score",
			[]Metrics{unit(catalog.SubjectMath, 65, 2, 200)},
			VelocitySlow,
		},
		{
			"slow by time",
			[]Metrics{unit(catalog.SubjectMath, 85, 1, 700)},
			VelocitySlow,
		},
		{
			"moderate in between",
			[]Metrics{unit(catalog.SubjectMath, 75, 2, 400)},
			VelocityModerate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildProfile("s1", tt.units).Velocity; got != tt.want {
				t.Errorf("Velocity = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBuildProfilePattern(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   Pattern
	}{
		{"improving", []int{60, 65, 80, 85}, PatternImproving},
		{"declining", []int{85, 80, 65, 60}, PatternDeclining},
		{"variable", []int{95, 55, 95, 55}, PatternVariable},
		{"consistent", []int{78, 80, 82, 79}, PatternConsistent},
		{"single unit is consistent", []int{30}, PatternConsistent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var completed []Metrics
			for _, s := range tt.scores {
				completed = append(completed, unit(catalog.SubjectMath, s, 2, 400))
			}
			if got := BuildProfile("s1", completed).Pattern; got != tt.want {
				t.Errorf("Pattern = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBuildProfileStrengthsChallenges(t *testing.T) {
	completed := []Metrics{
		unit(catalog.SubjectMath, 95, 1, 200),
		unit(catalog.SubjectReading, 75, 2, 300),
		unit(catalog.SubjectScience, 55, 4, 500),
	}
	p := BuildProfile("s1", completed)

	if len(p.Strengths) != 1 || p.Strengths[0] != catalog.SubjectMath {
		t.Errorf("Strengths = %v, want [math]", p.Strengths)
	}
	if len(p.Challenges) != 1 || p.Challenges[0] != catalog.SubjectScience {
		t.Errorf("Challenges = %v, want [science]", p.Challenges)
	}
}

// Rebuilding from the same history must give identical results regardless
// of how many times it runs.
func TestBuildProfileDeterministic(t *testing.T) {
	completed := []Metrics{
		unit(catalog.SubjectScience, 88, 2, 280),
		unit(catalog.SubjectMath, 92, 1, 210),
		unit(catalog.SubjectReading, 81, 2, 320),
	}

	a := BuildProfile("s1", completed)
	b := BuildProfile("s1", completed)

	if a.MeanScore != b.MeanScore || a.Velocity != b.Velocity || a.Pattern != b.Pattern {
		t.Errorf("profiles differ: %+v vs %+v", a, b)
	}
	if len(a.Strengths) != len(b.Strengths) {
		t.Errorf("strengths differ: %v vs %v", a.Strengths, b.Strengths)
	}
	for i := range a.Strengths {
		if a.Strengths[i] != b.Strengths[i] {
			t.Errorf("strength order differs at %d: %v vs %v", i, a.Strengths, b.Strengths)
		}
	}
}
