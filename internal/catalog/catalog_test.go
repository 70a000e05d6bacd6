package catalog

import "testing"

func TestNextStage(t *testing.T) {
	stages := DefaultStages()

	next, ok := NextStage(stages, StageLearn)
	if !ok || next != StageExperience {
		t.Errorf("NextStage(LEARN) = %s, %v", next, ok)
	}
	next, ok = NextStage(stages, StageExperience)
	if !ok || next != StageExplore {
		t.Errorf("NextStage(EXPERIENCE) = %s, %v", next, ok)
	}
	if _, ok := NextStage(stages, StageExplore); ok {
		t.Error("expected no stage after EXPLORE")
	}
	if _, ok := NextStage(stages, Stage("BOGUS")); ok {
		t.Error("expected no next stage for unknown stage")
	}
}

func TestArchetypeFor(t *testing.T) {
	tests := []struct {
		stage Stage
		want  Archetype
	}{
		{StageLearn, ArchetypeInstruction},
		{StageExperience, ArchetypeScenario},
		{StageExplore, ArchetypeStation},
	}

	for _, tt := range tests {
		got, ok := ArchetypeFor(tt.stage)
		if !ok || got != tt.want {
			t.Errorf("ArchetypeFor(%s) = %s, %v, want %s", tt.stage, got, ok, tt.want)
		}
	}

	if _, ok := ArchetypeFor(Stage("BOGUS")); ok {
		t.Error("expected no archetype for unknown stage")
	}
}
