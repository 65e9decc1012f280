package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdmir/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatOutcome formats one converted file as "source -> output" or the error.
func (s *Styles) FormatOutcome(outcome runner.FileOutcome) string {
	if outcome.Error != nil {
		return fmt.Sprintf("  %s  %s  %s\n",
			s.Error.Render("error"), s.FilePath.Render(outcome.Path), outcome.Error)
	}

	status := s.Dim.Render("unchanged")
	if outcome.Written {
		status = s.Success.Render("wrote")
	}
	return fmt.Sprintf("  %s  %s -> %s %s\n",
		status, s.FilePath.Render(outcome.Path), outcome.Output,
		s.Dim.Render(fmt.Sprintf("(%d bytes)", outcome.Bytes)))
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Converted 12 files (3 written, 9 unchanged), 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	var details []string
	if stats.FilesWritten > 0 {
		details = append(details, s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesUnchanged > 0 {
		details = append(details, fmt.Sprintf("%d unchanged", stats.FilesUnchanged))
	}

	line := fmt.Sprintf("Converted %d %s", stats.FilesConverted, plural(stats.FilesConverted))
	if len(details) > 0 {
		line += " (" + strings.Join(details, ", ") + ")"
	}
	if stats.FilesErrored > 0 {
		line += ", " + s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored))
	}

	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value int, style func(...string) string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", style(strconv.Itoa(value))))
	}

	row("Files discovered", stats.FilesDiscovered, s.SummaryValue.Render)
	row("Files converted", stats.FilesConverted, s.SummaryValue.Render)
	if stats.FilesWritten > 0 {
		row("Files written", stats.FilesWritten, s.Success.Render)
	}
	if stats.FilesUnchanged > 0 {
		row("Files unchanged", stats.FilesUnchanged, s.Dim.Render)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", stats.FilesErrored, s.Failure.Render)
	}

	builder.WriteString("\n")
	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Conversion finished with errors"))
	} else {
		builder.WriteString(s.Success.Render("Conversion succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
