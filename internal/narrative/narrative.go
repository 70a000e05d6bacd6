package narrative

import "github.com/questdeck/questdeck/internal/catalog"

// Context is the session-wide story premise produced by the upstream
// narrative generator. It is read once at session initialization and
// treated as immutable for the life of the session.
type Context struct {
	// SessionID ties the narrative to a learning session. Every rubric
	// derived from this context must carry the same id.
	SessionID string `json:"session_id"`

	// Premise is the story setup the learner steps into.
	Premise string `json:"premise"`

	// Mission is what the learner is asked to accomplish.
	Mission string `json:"mission"`

	// Resolution describes the stakes and how the story concludes.
	Resolution string `json:"resolution"`

	// Companion is the voice of the in-story guide character.
	Companion CompanionVoice `json:"companion"`

	// CareerSettings maps each stage to its workplace-setting string
	// (e.g. "the mission control room" for the EXPERIENCE stage).
	CareerSettings map[catalog.Stage]string `json:"career_settings"`

	// SubjectBridges maps each subject to the narrative bridge that ties
	// it into the story (e.g. why math matters to the mission).
	SubjectBridges map[catalog.Subject]string `json:"subject_bridges"`
}

// CompanionVoice holds the style strings for the guide character.
type CompanionVoice struct {
	Greeting      string `json:"greeting"`
	Teaching      string `json:"teaching"`
	Encouragement string `json:"encouragement"`
}

// CareerSetting returns the workplace-setting string for a stage.
func (c *Context) CareerSetting(s catalog.Stage) (string, bool) {
	v, ok := c.CareerSettings[s]
	if v == "" {
		return "", false
	}
	return v, ok
}

// SubjectBridge returns the narrative bridge string for a subject.
func (c *Context) SubjectBridge(s catalog.Subject) (string, bool) {
	v, ok := c.SubjectBridges[s]
	if v == "" {
		return "", false
	}
	return v, ok
}
