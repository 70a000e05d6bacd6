package narrative

import "github.com/questdeck/questdeck/internal/catalog"

// Sample returns a fixed narrative context for the given session id.
// Used by the demo and preview commands and by tests; production sessions
// receive their context from the upstream narrative generator.
func Sample(sessionID string) *Context {
	return &Context{
		SessionID:  sessionID,
		Premise:    "The town's weather satellite has gone quiet, and the Skyline Observatory needs a junior mission specialist for the day.",
		Mission:    "Restore contact with the satellite before the evening storm arrives.",
		Resolution: "With the satellite back online, the observatory can warn the town in time.",
		Companion: CompanionVoice{
			Greeting:      "Welcome aboard, specialist! I'm Nova, your mission partner.",
			Teaching:      "Nova explains each step patiently, pointing at the console readouts as she goes.",
			Encouragement: "Nova cheers: every mission specialist started exactly where you are.",
		},
		CareerSettings: map[catalog.Stage]string{
			catalog.StageLearn:      "the observatory training lab",
			catalog.StageExperience: "the mission control room",
			catalog.StageExplore:    "the open-house exhibit floor",
		},
		SubjectBridges: map[catalog.Subject]string{
			catalog.SubjectMath:    "The satellite's orbit comes down to numbers: get them right and you find it in the sky.",
			catalog.SubjectReading: "The old mission logs hold the clue to what went wrong, if you can read them closely.",
			catalog.SubjectScience: "Weather data only makes sense once you know how storms actually form.",
		},
	}
}
