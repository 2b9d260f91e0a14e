package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/jeduden/restcheck/internal/lint"
)

// TextFormatter writes one "path:line: message" line per diagnostic. When
// Color is true the location is printed in cyan, unless color detects that
// stdout is not a terminal or NO_COLOR is set.
type TextFormatter struct {
	Color bool
}

// Format writes the diagnostics in order.
func (f *TextFormatter) Format(w io.Writer, diagnostics []lint.Diagnostic) error {
	loc := color.New(color.FgCyan)
	if !f.Color {
		loc.DisableColor()
	}

	for _, d := range diagnostics {
		where := loc.Sprintf("%s:%d:", d.File, d.Line)
		if _, err := fmt.Fprintf(w, "%s %s\n", where, d.Message); err != nil {
			return err
		}
	}
	return nil
}
