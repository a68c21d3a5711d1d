package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/lexer"

	"github.com/signadot/shape/format"
)

type EncState struct {
	indent int
	format format.Format
	colors *Colors
}

// Encode writes v to w followed by a newline. shape.Object values keep their
// field order in both formats.
func Encode(v any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	var (
		d   []byte
		err error
	)
	switch es.format {
	case format.JSONFormat:
		d, err = json.MarshalIndent(v, "", strings.Repeat(" ", es.indent))
	case format.YAMLFormat:
		d, err = yaml.MarshalWithOptions(v, yaml.Indent(es.indent))
	default:
		err = fmt.Errorf("%w: %d", format.ErrBadFormat, int(es.format))
	}
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", es.format, err)
	}
	s := string(d)
	if es.colors != nil {
		s = es.colors.printer().PrintTokens(lexer.Tokenize(s))
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err = io.WriteString(w, s)
	return err
}
