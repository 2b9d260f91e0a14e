package checker

import (
	"strings"

	"github.com/jeduden/restcheck/internal/pysource"
)

// SuppressionMarker opts a function out of all checks when it appears in a
// comment on the line of the function's def keyword.
const SuppressionMarker = "noqa_doc"

// IsSuppressed reports whether a comment on fn's definition line contains
// SuppressionMarker. The match is a case-sensitive substring test.
func IsSuppressed(fn pysource.Function, comments []pysource.Comment) bool {
	for _, c := range comments {
		if c.Line == fn.Line && strings.Contains(c.Text, SuppressionMarker) {
			return true
		}
	}
	return false
}
