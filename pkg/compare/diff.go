package compare

import (
	"fmt"
	"strings"
)

// LineKind tells which outline an entry of a diff belongs to.
type LineKind int

const (
	// LineSame is an entry present in both outlines.
	LineSame LineKind = iota

	// LineOursOnly is an entry only the tree builder produced.
	LineOursOnly

	// LineReferenceOnly is an entry only the reference parser produced.
	LineReferenceOnly
)

// Prefix returns the marker printed before entries of this kind.
func (k LineKind) Prefix() string {
	switch k {
	case LineOursOnly:
		return "-"
	case LineReferenceOnly:
		return "+"
	default:
		return " "
	}
}

// Line is one entry of an outline diff.
type Line struct {
	Kind  LineKind
	Entry string
}

// Diff aligns two outlines on their longest common subsequence and returns
// every entry tagged with the side it came from.
func Diff(ours, ref []string) []Line {
	lcs := longestCommonSubsequence(ours, ref)

	lines := make([]Line, 0, max(len(ours), len(ref)))
	i, j, k := 0, 0, 0

	for i < len(ours) || j < len(ref) {
		if k < len(lcs) && i < len(ours) && j < len(ref) &&
			ours[i] == lcs[k] && ref[j] == lcs[k] {
			lines = append(lines, Line{Kind: LineSame, Entry: ours[i]})
			i++
			j++
			k++
			continue
		}

		for i < len(ours) && (k >= len(lcs) || ours[i] != lcs[k]) {
			lines = append(lines, Line{Kind: LineOursOnly, Entry: ours[i]})
			i++
		}

		for j < len(ref) && (k >= len(lcs) || ref[j] != lcs[k]) {
			lines = append(lines, Line{Kind: LineReferenceOnly, Entry: ref[j]})
			j++
		}
	}

	return lines
}

// FormatDiff renders lines one per row with their prefix.
func FormatDiff(lines []Line) string {
	var sb strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&sb, "%s %s\n", line.Kind.Prefix(), line.Entry)
	}
	return sb.String()
}

// longestCommonSubsequence computes the LCS of two string slices.
func longestCommonSubsequence(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	dp := make([][]int, len(a)+1)
	for row := range dp {
		dp[row] = make([]int, len(b)+1)
	}

	for row := 1; row <= len(a); row++ {
		for col := 1; col <= len(b); col++ {
			if a[row-1] == b[col-1] {
				dp[row][col] = dp[row-1][col-1] + 1
			} else {
				dp[row][col] = max(dp[row-1][col], dp[row][col-1])
			}
		}
	}

	n := dp[len(a)][len(b)]
	if n == 0 {
		return nil
	}

	lcs := make([]string, n)
	row, col, idx := len(a), len(b), n-1
	for row > 0 && col > 0 {
		switch {
		case a[row-1] == b[col-1]:
			lcs[idx] = a[row-1]
			row--
			col--
			idx--
		case dp[row-1][col] > dp[row][col-1]:
			row--
		default:
			col--
		}
	}

	return lcs
}
