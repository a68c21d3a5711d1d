package parse

import (
	"strings"

	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/token"
)

// queryTokens lexes a query. The lexer types every plain scalar after a
// local tag as a string, so those scalars are typed again from their text,
// and a local tag with nothing after it on its line gets an implicit null
// value. A tagged value must therefore start on the tag's line.
func queryTokens(data []byte) token.Tokens {
	src := string(data)
	if !strings.HasSuffix(src, "\n") {
		// the lexer drops a tag which ends the input
		src += "\n"
	}
	in := lexer.Tokenize(src)
	res := make(token.Tokens, 0, len(in))
	var prev *token.Token
	for i, tk := range in {
		if localTag(prev) && tk.Type == token.StringType && sameLine(prev, tk) {
			tk.Type = token.New(tk.Value, tk.Origin, tk.Position).Type
		}
		res.Add(tk)
		prev = tk
		if !localTag(tk) {
			continue
		}
		var next *token.Token
		if i+1 < len(in) {
			next = in[i+1]
		}
		if bare(tk, next) {
			null := implicitNull(tk)
			res.Add(null)
			prev = null
		}
	}
	return res
}

func localTag(tk *token.Token) bool {
	return tk != nil && tk.Type == token.TagType && !strings.HasPrefix(tk.Value, "!!")
}

func sameLine(a, b *token.Token) bool {
	return a.Position != nil && b.Position != nil && a.Position.Line == b.Position.Line
}

// bare reports whether the tag tk has no value.
func bare(tk, next *token.Token) bool {
	if next == nil || !sameLine(tk, next) {
		return true
	}
	switch next.Type {
	case token.CollectEntryType, token.SequenceEndType, token.MappingEndType, token.CommentType:
		return true
	}
	return false
}

func implicitNull(tag *token.Token) *token.Token {
	var pos token.Position
	if tag.Position != nil {
		pos = *tag.Position
	}
	pos.Column += len(tag.Value)
	pos.Offset += len(tag.Value)
	tk := token.New("null", " null", &pos)
	tk.Type = token.ImplicitNullType
	return tk
}
