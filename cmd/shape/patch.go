package main

import (
	"encoding/json"
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/shape"
	"github.com/signadot/shape/parse"
)

// resultPatch applies a patch to a match result. A mapping is a JSON merge
// patch and a sequence is a list of JSON patch operations.
type resultPatch struct {
	merge []byte
	ops   jsonpatch.Patch
}

func readPatch(file string) (*resultPatch, error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("error reading patch: %w", err)
	}
	return newPatch(d)
}

func newPatch(d []byte) (*resultPatch, error) {
	docs, err := parse.Docs(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding patch: %w", err)
	}
	if len(docs) != 1 {
		return nil, fmt.Errorf("expected 1 patch document, got %d", len(docs))
	}
	j, err := json.Marshal(docs[0])
	if err != nil {
		return nil, fmt.Errorf("error encoding patch: %w", err)
	}
	switch docs[0].(type) {
	case shape.Object:
		return &resultPatch{merge: j}, nil
	case []any:
		ops, err := jsonpatch.DecodePatch(j)
		if err != nil {
			return nil, fmt.Errorf("error decoding patch operations: %w", err)
		}
		return &resultPatch{ops: ops}, nil
	}
	return nil, fmt.Errorf("patch must be a mapping or a sequence, got %T", docs[0])
}

func (p *resultPatch) apply(v any) (any, error) {
	doc, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error encoding result: %w", err)
	}
	var res []byte
	if p.merge != nil {
		res, err = jsonpatch.MergePatch(doc, p.merge)
	} else {
		res, err = p.ops.Apply(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("error patching result: %w", err)
	}
	docs, err := parse.Docs(res)
	if err != nil {
		return nil, err
	}
	if len(docs) != 1 {
		return nil, fmt.Errorf("patch produced %d documents", len(docs))
	}
	return docs[0], nil
}
