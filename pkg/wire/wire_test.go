package wire_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdmir/pkg/mdast"
	"github.com/yaklabco/mdmir/pkg/parser"
	"github.com/yaklabco/mdmir/pkg/scanner"
	"github.com/yaklabco/mdmir/pkg/wire"
)

const sample = "# Title\n\nSome *text*, **more** and `code`.\n\n- a\n  - b\n\n```go\nfmt.Println(\"hi\")\n```\n"

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    wire.Format
		wantErr bool
	}{
		{"", wire.FormatJSON, false},
		{"json", wire.FormatJSON, false},
		{"yaml", wire.FormatYAML, false},
		{"yml", wire.FormatYAML, false},
		{"xml", "", true},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			got, err := wire.ParseFormat(testCase.input)
			if testCase.wantErr {
				require.ErrorIs(t, err, wire.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestTokens_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, format := range []wire.Format{wire.FormatJSON, wire.FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			t.Parallel()

			tokens := scanner.TokenizeString(sample + "tail\u200b")

			var buf bytes.Buffer
			require.NoError(t, wire.EncodeTokens(&buf, tokens, wire.Options{Format: format, Indent: 2}))

			decoded, err := wire.DecodeTokens(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, tokens, decoded)
		})
	}
}

func TestTree_RoundTrip(t *testing.T) {
	t.Parallel()

	root := parser.ParseString(sample)

	// Node kinds the parser never emits still survive the bridge.
	quote := mdast.NewNode(mdast.NodeBlockquote)
	mdast.AppendChild(quote, mdast.NewLink("https://example.com", mdast.NewText("x")))
	mdast.AppendChild(root, quote, mdast.NewNode(mdast.NodeHorizontalRule))
	mdast.AppendChild(root, mdast.NewImage("cat.png", mdast.NewText("cat")))

	for _, format := range []wire.Format{wire.FormatJSON, wire.FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, wire.EncodeTree(&buf, root, wire.Options{Format: format}))

			decoded, err := wire.DecodeTree(&buf, format)
			require.NoError(t, err)
			assert.True(t, mdast.Equal(root, decoded))
		})
	}
}

func TestRoundTrip_InvalidUTF8(t *testing.T) {
	t.Parallel()

	const input = "a\xa0b caf\xe9"

	for _, format := range []wire.Format{wire.FormatJSON, wire.FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			t.Parallel()

			tokens := scanner.TokenizeString(input)

			var buf bytes.Buffer
			require.NoError(t, wire.EncodeTokens(&buf, tokens, wire.Options{Format: format}))

			decoded, err := wire.DecodeTokens(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, tokens, decoded)

			var sb strings.Builder
			for _, tok := range decoded {
				sb.WriteString(tok.Value)
			}
			assert.Equal(t, input, sb.String())

			root := parser.ParseString(input)
			buf.Reset()
			require.NoError(t, wire.EncodeTree(&buf, root, wire.Options{Format: format}))

			tree, err := wire.DecodeTree(&buf, format)
			require.NoError(t, err)
			assert.True(t, mdast.Equal(root, tree))
		})
	}
}

func TestEncodeTokens_ValueBytesOnlyWhenNeeded(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, wire.EncodeTokens(&buf, scanner.TokenizeString("\xa0"), wire.Options{}))

	var generic []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &generic))
	require.Len(t, generic, 2)

	assert.Equal(t, "non_breaking_space", generic[0]["kind"])
	assert.Equal(t, "oA==", generic[0]["value_bytes"])
	assert.NotContains(t, generic[1], "value_bytes")
}

func TestEncodeTree_NullFields(t *testing.T) {
	t.Parallel()

	root := parser.ParseString("## Hi")

	var buf bytes.Buffer
	require.NoError(t, wire.EncodeTree(&buf, root, wire.Options{}))

	var generic map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &generic))

	assert.Equal(t, "document", generic["kind"])
	assert.Nil(t, generic["content"])
	assert.Nil(t, generic["level"])
	assert.NotContains(t, generic, "info")

	children, ok := generic["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 1)

	heading, ok := children[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "heading", heading["kind"])
	assert.InDelta(t, 2, heading["level"], 0)
	assert.Nil(t, heading["content"])

	text, ok := heading["children"].([]any)[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Hi", text["content"])
	assert.Equal(t, []any{}, text["children"])
}

func TestEncode_CompactAndIndented(t *testing.T) {
	t.Parallel()

	tokens := scanner.TokenizeString("a")

	var compact, indented bytes.Buffer
	require.NoError(t, wire.EncodeTokens(&compact, tokens, wire.Options{}))
	require.NoError(t, wire.EncodeTokens(&indented, tokens, wire.Options{Indent: 4}))

	assert.Equal(t,
		`[{"kind":"text","value":"a","line":1,"column":1},{"kind":"eof","value":"","line":1,"column":2}]`+"\n",
		compact.String())
	assert.Contains(t, indented.String(), "\n        \"kind\": \"text\"")
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := wire.EncodeTokens(&buf, nil, wire.Options{Format: "toml"})
	require.ErrorIs(t, err, wire.ErrUnsupportedFormat)

	_, err = wire.DecodeTree(strings.NewReader("{}"), "toml")
	require.ErrorIs(t, err, wire.ErrUnsupportedFormat)
}

func TestDecodeTokens(t *testing.T) {
	t.Parallel()

	t.Run("missing eof is appended", func(t *testing.T) {
		t.Parallel()

		input := `[{"kind":"text","value":"ab","line":1,"column":1},{"kind":"newline","value":"\n","line":1,"column":3}]`
		tokens, err := wire.DecodeTokens(strings.NewReader(input), wire.FormatJSON)
		require.NoError(t, err)
		require.Len(t, tokens, 3)
		assert.Equal(t, mdast.Token{Kind: mdast.TokEOF, Line: 2, Column: 1}, tokens[2])
	})

	t.Run("empty stream", func(t *testing.T) {
		t.Parallel()

		tokens, err := wire.DecodeTokens(strings.NewReader("[]"), wire.FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, []mdast.Token{{Kind: mdast.TokEOF, Line: 1, Column: 1}}, tokens)
	})

	t.Run("tokens after eof are dropped", func(t *testing.T) {
		t.Parallel()

		input := "- kind: eof\n  value: \"\"\n  line: 1\n  column: 1\n- kind: text\n  value: x\n  line: 1\n  column: 1\n"
		tokens, err := wire.DecodeTokens(strings.NewReader(input), wire.FormatYAML)
		require.NoError(t, err)
		assert.Len(t, tokens, 1)
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := wire.DecodeTokens(strings.NewReader(`[{"kind":"asterisk","value":"*"}]`), wire.FormatJSON)
		require.ErrorIs(t, err, wire.ErrUnknownKind)
	})

	t.Run("empty value", func(t *testing.T) {
		t.Parallel()

		_, err := wire.DecodeTokens(strings.NewReader(`[{"kind":"text","value":""}]`), wire.FormatJSON)
		require.ErrorIs(t, err, wire.ErrMalformedTokens)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Parallel()

		_, err := wire.DecodeTokens(strings.NewReader(`[{`), wire.FormatJSON)
		require.ErrorIs(t, err, wire.ErrSyntax)
	})
}

func TestDecodeTree(t *testing.T) {
	t.Parallel()

	t.Run("bad root", func(t *testing.T) {
		t.Parallel()

		input := `{"kind":"paragraph","content":null,"level":null,"children":[]}`
		_, err := wire.DecodeTree(strings.NewReader(input), wire.FormatJSON)
		require.ErrorIs(t, err, wire.ErrBadRoot)
	})

	t.Run("unknown nested kind", func(t *testing.T) {
		t.Parallel()

		input := `{"kind":"document","children":[{"kind":"table","children":[]}]}`
		_, err := wire.DecodeTree(strings.NewReader(input), wire.FormatJSON)
		require.ErrorIs(t, err, wire.ErrUnknownKind)
		assert.Contains(t, err.Error(), "$.children[0]")
	})

	t.Run("empty YAML document", func(t *testing.T) {
		t.Parallel()

		_, err := wire.DecodeTree(strings.NewReader(""), wire.FormatYAML)
		require.ErrorIs(t, err, wire.ErrBadRoot)
	})

	t.Run("fields default when omitted", func(t *testing.T) {
		t.Parallel()

		input := "kind: document\nchildren:\n  - kind: code_block\n    info: sh\n    content: ls\n"
		root, err := wire.DecodeTree(strings.NewReader(input), wire.FormatYAML)
		require.NoError(t, err)
		require.Len(t, root.Children, 1)
		assert.Equal(t, mdast.NewCodeBlock("sh", "ls"), root.Children[0])
	})
}

func TestEncodeTree_Nil(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.ErrorIs(t, wire.EncodeTree(&buf, nil, wire.Options{}), wire.ErrBadRoot)
}
