package mdast

import "fmt"

// TokenKind classifies a token produced by the scanner.
type TokenKind uint8

// Token kinds. Every ASCII punctuation character has its own kind so the
// parser can dispatch on a single comparison.
const (
	TokEOF TokenKind = iota
	TokText
	TokDigit

	// Whitespace.
	TokNewline
	TokSpace
	TokTab

	// ASCII punctuation and symbols.
	TokExclamation // '!'
	TokQuote       // '"'
	TokHash        // '#'
	TokDollar      // '$'
	TokPercent     // '%'
	TokAmpersand   // '&'
	TokApostrophe  // '\''
	TokLParen      // '('
	TokRParen      // ')'
	TokStar        // '*'
	TokPlus        // '+'
	TokComma       // ','
	TokMinus       // '-'
	TokPeriod      // '.'
	TokSlash       // '/'
	TokColon       // ':'
	TokSemicolon   // ';'
	TokLessThan    // '<'
	TokEquals      // '='
	TokGreaterThan // '>'
	TokQuestion    // '?'
	TokAt          // '@'
	TokLBracket    // '['
	TokBackslash   // '\\'
	TokRBracket    // ']'
	TokCaret       // '^'
	TokUnderscore  // '_'
	TokBacktick    // '`'
	TokLBrace      // '{'
	TokPipe        // '|'
	TokRBrace      // '}'
	TokTilde       // '~'

	// Non-printing characters.
	TokZeroWidthSpace   // U+200B
	TokByteOrderMark    // U+FEFF
	TokNonBreakingSpace // U+00A0 or a lone 0xA0 byte
	TokSoftHyphen       // U+00AD
	TokControlChar      // C0 controls except \t \n \r, and DEL

	tokenKindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var tokenKindNames = [tokenKindCount]string{
	TokEOF:              "eof",
	TokText:             "text",
	TokDigit:            "digit",
	TokNewline:          "newline",
	TokSpace:            "space",
	TokTab:              "tab",
	TokExclamation:      "exclamation",
	TokQuote:            "quote",
	TokHash:             "hash",
	TokDollar:           "dollar",
	TokPercent:          "percent",
	TokAmpersand:        "ampersand",
	TokApostrophe:       "apostrophe",
	TokLParen:           "lparen",
	TokRParen:           "rparen",
	TokStar:             "star",
	TokPlus:             "plus",
	TokComma:            "comma",
	TokMinus:            "minus",
	TokPeriod:           "period",
	TokSlash:            "slash",
	TokColon:            "colon",
	TokSemicolon:        "semicolon",
	TokLessThan:         "less_than",
	TokEquals:           "equals",
	TokGreaterThan:      "greater_than",
	TokQuestion:         "question",
	TokAt:               "at",
	TokLBracket:         "lbracket",
	TokBackslash:        "backslash",
	TokRBracket:         "rbracket",
	TokCaret:            "caret",
	TokUnderscore:       "underscore",
	TokBacktick:         "backtick",
	TokLBrace:           "lbrace",
	TokPipe:             "pipe",
	TokRBrace:           "rbrace",
	TokTilde:            "tilde",
	TokZeroWidthSpace:   "zero_width_space",
	TokByteOrderMark:    "byte_order_mark",
	TokNonBreakingSpace: "non_breaking_space",
	TokSoftHyphen:       "soft_hyphen",
	TokControlChar:      "control_char",
}

// String returns the wire name of the kind, e.g. "less_than".
func (k TokenKind) String() string {
	if k < tokenKindCount {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(k))
}

// IsValid reports whether k is one of the defined kinds.
func (k TokenKind) IsValid() bool {
	return k < tokenKindCount
}

// IsNonPrinting reports whether k is one of the non-printing categories.
func (k TokenKind) IsNonPrinting() bool {
	switch k {
	case TokZeroWidthSpace, TokByteOrderMark, TokNonBreakingSpace, TokSoftHyphen, TokControlChar:
		return true
	default:
		return false
	}
}

// IsHorizontalSpace reports whether k is a space or a tab.
func (k TokenKind) IsHorizontalSpace() bool {
	return k == TokSpace || k == TokTab
}

// ParseTokenKind returns the kind with the given wire name.
func ParseTokenKind(name string) (TokenKind, bool) {
	for i, n := range tokenKindNames {
		if n == name {
			return TokenKind(i), true
		}
	}
	return 0, false
}

// PunctuationKind returns the token kind for a single ASCII punctuation,
// whitespace or digit byte. The second result is false for any other byte.
func PunctuationKind(b byte) (TokenKind, bool) {
	switch b {
	case '\n':
		return TokNewline, true
	case ' ':
		return TokSpace, true
	case '\t':
		return TokTab, true
	case '!':
		return TokExclamation, true
	case '"':
		return TokQuote, true
	case '#':
		return TokHash, true
	case '$':
		return TokDollar, true
	case '%':
		return TokPercent, true
	case '&':
		return TokAmpersand, true
	case '\'':
		return TokApostrophe, true
	case '(':
		return TokLParen, true
	case ')':
		return TokRParen, true
	case '*':
		return TokStar, true
	case '+':
		return TokPlus, true
	case ',':
		return TokComma, true
	case '-':
		return TokMinus, true
	case '.':
		return TokPeriod, true
	case '/':
		return TokSlash, true
	case ':':
		return TokColon, true
	case ';':
		return TokSemicolon, true
	case '<':
		return TokLessThan, true
	case '=':
		return TokEquals, true
	case '>':
		return TokGreaterThan, true
	case '?':
		return TokQuestion, true
	case '@':
		return TokAt, true
	case '[':
		return TokLBracket, true
	case '\\':
		return TokBackslash, true
	case ']':
		return TokRBracket, true
	case '^':
		return TokCaret, true
	case '_':
		return TokUnderscore, true
	case '`':
		return TokBacktick, true
	case '{':
		return TokLBrace, true
	case '|':
		return TokPipe, true
	case '}':
		return TokRBrace, true
	case '~':
		return TokTilde, true
	}
	if b >= '0' && b <= '9' {
		return TokDigit, true
	}
	return 0, false
}

// Token is a classified lexical unit together with the 1-based position of
// its first character.
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// Value is the exact source text of the token. It is empty only for TokEOF.
	Value string

	Line   int
	Column int
}

// Position returns the token's source position.
func (t Token) Position() Position {
	return Position{Line: t.Line, Column: t.Column}
}

// Len returns the length of the token value in bytes.
func (t Token) Len() int {
	return len(t.Value)
}

// Is reports whether the token has the given kind.
func (t Token) Is(kind TokenKind) bool {
	return t.Kind == kind
}

// String formats the token for debugging, e.g. `text "hello" 1:3`.
func (t Token) String() string {
	if t.Kind == TokEOF {
		return fmt.Sprintf("eof %d:%d", t.Line, t.Column)
	}
	if len(t.Value) > 10 {
		return fmt.Sprintf("%s %.10q... %d:%d", t.Kind, t.Value, t.Line, t.Column)
	}
	return fmt.Sprintf("%s %q %d:%d", t.Kind, t.Value, t.Line, t.Column)
}

// ValidateTokens checks the stream invariants: exactly one TokEOF, at the
// end, and no empty token before it.
func ValidateTokens(tokens []Token) bool {
	if len(tokens) == 0 {
		return false
	}

	for _, tok := range tokens[:len(tokens)-1] {
		if tok.Kind == TokEOF || tok.Value == "" || !tok.Kind.IsValid() {
			return false
		}
	}

	last := tokens[len(tokens)-1]
	return last.Kind == TokEOF && last.Value == ""
}
