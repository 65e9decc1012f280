package scanner

import "github.com/yaklabco/mdmir/pkg/mdast"

// initialCapacityDivisor estimates one token per this many source bytes.
const initialCapacityDivisor = 3

// Tokenize scans src to completion. The returned slice always ends with
// exactly one eof token.
func Tokenize(src []byte) []mdast.Token {
	return TokenizeString(string(src))
}

// TokenizeString is Tokenize for string input. Token values share memory
// with src.
func TokenizeString(src string) []mdast.Token {
	s := New(src)
	tokens := make([]mdast.Token, 0, len(src)/initialCapacityDivisor+1)

	for {
		tok := s.Next()
		tokens = append(tokens, tok)
		if tok.Kind == mdast.TokEOF {
			return tokens
		}
	}
}
