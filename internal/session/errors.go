package session

import "errors"

// Idempotency violations are distinct from "not found" so callers can
// tell a harmless retry from a genuine bug.
var (
	// ErrValidationFailed aborts session creation: the built rubric set
	// did not pass consistency validation.
	ErrValidationFailed = errors.New("rubric set failed validation")

	// ErrRubricNotFound means no rubric exists for the (stage, subject)
	// pair in this session.
	ErrRubricNotFound = errors.New("rubric not found")

	// ErrAlreadyCompleted means the unit's performance was already
	// recorded; the duplicate completion is rejected, not overwritten.
	ErrAlreadyCompleted = errors.New("unit already completed")

	// ErrAlreadyGenerated means content was already synthesized for the
	// rubric and no explicit regeneration was requested.
	ErrAlreadyGenerated = errors.New("content already generated")

	// ErrShapeMismatch means the synthesizer's payload did not satisfy
	// the rubric's content-shape counts and was not accepted.
	ErrShapeMismatch = errors.New("generated content does not match shape")
)
