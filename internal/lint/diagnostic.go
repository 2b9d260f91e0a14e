// Package lint holds the shared diagnostic type and Python file resolution.
package lint

// Severity indicates the severity level of a diagnostic.
type Severity string

// Severity levels.
const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// Diagnostic is a finding bound to the file it was reported in.
type Diagnostic struct {
	File     string
	Line     int
	RuleID   string
	RuleName string
	Severity Severity
	Message  string
}
