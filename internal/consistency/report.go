package consistency

import (
	"fmt"

	"github.com/questdeck/questdeck/internal/catalog"
)

// Issue is one defect found by a validation pass.
type Issue struct {
	// Code is a stable machine-readable identifier, e.g. "lineage-session".
	Code string `json:"code"`

	Stage   catalog.Stage   `json:"stage,omitempty"`
	Subject catalog.Subject `json:"subject,omitempty"`
	Message string          `json:"message"`
}

func (i Issue) String() string {
	if i.Stage != "" || i.Subject != "" {
		return fmt.Sprintf("[%s] %s/%s: %s", i.Code, i.Stage, i.Subject, i.Message)
	}
	return fmt.Sprintf("[%s] %s", i.Code, i.Message)
}

// Report is the accumulated result of all validation passes. Validation
// never throws for data-shape problems; every defect lands here so one
// call surfaces everything at once.
type Report struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Valid reports whether the rubric set may proceed to content synthesis.
// Warnings alone do not block; they are retained for the audit trail.
func (r *Report) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Report) addError(code string, stage catalog.Stage, subject catalog.Subject, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{
		Code:    code,
		Stage:   stage,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *Report) addWarning(code string, stage catalog.Stage, subject catalog.Subject, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{
		Code:    code,
		Stage:   stage,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	})
}
