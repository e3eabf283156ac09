package dicelang

import "strings"

// FormatRollForDisplay renders a roll result for chat output: an optional
// bold label line, the expression in code style, an arrow, the details
// trace, and a critical banner when the roll was a bare d20 extreme.
func FormatRollForDisplay(result *RollResult, label string) string {
	var out strings.Builder

	if label != "" {
		out.WriteString("**" + label + "**\n")
	}
	out.WriteString("`" + result.Expression + "` → " + result.Details)

	switch result.Critical {
	case CriticalSuccess:
		out.WriteString("\n**Critical Success!**")
	case CriticalFailure:
		out.WriteString("\n**Critical Failure!**")
	}

	return out.String()
}
