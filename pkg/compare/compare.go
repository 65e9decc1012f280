// Package compare measures how far the tree builder's best-effort grammar
// diverges from a CommonMark parse of the same source.
//
// Both trees are reduced to a block outline and the outlines are diffed.
// The reference tree comes from goldmark, mapped onto mdast kinds.
package compare

import (
	"github.com/yaklabco/mdmir/pkg/mdast"
	"github.com/yaklabco/mdmir/pkg/parser"
)

// Options configures a comparison.
type Options struct {
	// Flavor selects the reference grammar: FlavorCommonMark or FlavorGFM.
	Flavor string
}

// Report is the outcome of comparing one source.
type Report struct {
	Ours      []string
	Reference []string
	Lines     []Line

	// OursOnly and ReferenceOnly count the unmatched entries on each side.
	OursOnly      int
	ReferenceOnly int
}

// Equal reports whether both outlines match.
func (r *Report) Equal() bool {
	return r.OursOnly == 0 && r.ReferenceOnly == 0
}

// String renders the outline diff.
func (r *Report) String() string {
	return FormatDiff(r.Lines)
}

// Compare parses src with both parsers and diffs their outlines.
func Compare(src []byte, opts Options) *Report {
	return CompareTrees(parser.ParseBytes(src), ReferenceWithFlavor(src, opts.Flavor))
}

// CompareTrees diffs the outlines of two existing trees.
func CompareTrees(ours, ref *mdast.Node) *Report {
	report := &Report{
		Ours:      Outline(ours),
		Reference: Outline(ref),
	}
	report.Lines = Diff(report.Ours, report.Reference)

	for _, line := range report.Lines {
		switch line.Kind {
		case LineOursOnly:
			report.OursOnly++
		case LineReferenceOnly:
			report.ReferenceOnly++
		case LineSame:
		}
	}

	return report
}
