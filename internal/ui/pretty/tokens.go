package pretty

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdmir/pkg/mdast"
)

// Token table formatting constants.
const (
	tokenColumnGap = 2
	headerPosition = "POS"
	headerKind     = "KIND"
	headerValue    = "VALUE"
	separatorChar  = "-"
)

// tokenRow holds the unstyled cells of one table row.
type tokenRow struct {
	position string
	kind     string
	value    string
	token    mdast.Token
}

// FormatTokens renders a token stream as an aligned table with a position,
// kind and quoted value column. Non-printing tokens are highlighted.
func (s *Styles) FormatTokens(tokens []mdast.Token) string {
	if len(tokens) == 0 {
		return ""
	}

	rows := make([]tokenRow, len(tokens))
	posWidth, kindWidth := len(headerPosition), len(headerKind)
	for i, tok := range tokens {
		rows[i] = tokenRow{
			position: tok.Position().String(),
			kind:     tok.Kind.String(),
			value:    strconv.Quote(tok.Value),
			token:    tok,
		}
		posWidth = max(posWidth, lipgloss.Width(rows[i].position))
		kindWidth = max(kindWidth, lipgloss.Width(rows[i].kind))
	}

	var sb strings.Builder

	header := pad(headerPosition, posWidth) + pad(headerKind, kindWidth) + headerValue
	sb.WriteString(s.TableHeader.Render(header))
	sb.WriteByte('\n')
	sb.WriteString(s.TableSeparator.Render(strings.Repeat(separatorChar, lipgloss.Width(header))))
	sb.WriteByte('\n')

	for _, row := range rows {
		kindStyle := s.TokenKind
		if row.token.Kind.IsNonPrinting() {
			kindStyle = s.NonPrinting
		}

		sb.WriteString(s.Position.Render(pad(row.position, posWidth)))
		sb.WriteString(kindStyle.Render(pad(row.kind, kindWidth)))
		if row.token.Kind != mdast.TokEOF {
			sb.WriteString(row.value)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// pad right-pads text to width plus the column gap.
func pad(text string, width int) string {
	return text + strings.Repeat(" ", width-lipgloss.Width(text)+tokenColumnGap)
}
