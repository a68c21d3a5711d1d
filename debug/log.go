package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

var out io.Writer = os.Stderr

// Logf writes a debug line to stderr. Composite arguments are rendered as
// indented JSON so nested query and source values stay readable.
func Logf(msg string, args ...any) {
	for i, a := range args {
		switch a.(type) {
		case map[string]any, []any, json.Marshaler:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(out, msg, args...)
}
