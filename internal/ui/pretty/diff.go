package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdmir/pkg/compare"
)

// FormatOutlineDiff renders a comparison report. Entries only mdmir produced
// are marked "-", entries only the reference produced are marked "+".
func (s *Styles) FormatOutlineDiff(path, flavor string, report *compare.Report) string {
	var sb strings.Builder

	sb.WriteString(s.DiffHeader.Render("--- mdmir: " + path))
	sb.WriteByte('\n')
	sb.WriteString(s.DiffHeader.Render(fmt.Sprintf("+++ %s: %s", flavor, path)))
	sb.WriteByte('\n')

	for _, line := range report.Lines {
		text := line.Kind.Prefix() + " " + line.Entry
		switch line.Kind {
		case compare.LineOursOnly:
			sb.WriteString(s.DiffRemove.Render(text))
		case compare.LineReferenceOnly:
			sb.WriteString(s.DiffAdd.Render(text))
		default:
			sb.WriteString(s.DiffContext.Render(text))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// FormatCompareSummary reports whether the outlines matched.
func (s *Styles) FormatCompareSummary(report *compare.Report) string {
	if report.Equal() {
		return s.Success.Render("Outlines match") + "\n"
	}

	return s.Failure.Render(fmt.Sprintf("%d only in mdmir, %d only in reference",
		report.OursOnly, report.ReferenceOnly)) + "\n"
}
