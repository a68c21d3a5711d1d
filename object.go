package shape

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Getter is implemented by sources which resolve their own properties.
type Getter interface {
	Get(name string) (any, bool)
}

type Field struct {
	Key   string
	Value any
}

// Object is a mapping which keeps its keys in order. As a query, its keys are
// matched in order and the result is an Object with the same key order.
type Object []Field

// ObjectOf builds an Object from alternating keys and values. It panics if a
// key is not a string or a value is missing.
func ObjectOf(kvs ...any) Object {
	if len(kvs)%2 != 0 {
		panic("shape.ObjectOf: odd number of arguments")
	}
	res := make(Object, 0, len(kvs)/2)
	for i := 0; i < len(kvs); i += 2 {
		k, ok := kvs[i].(string)
		if !ok {
			panic(fmt.Sprintf("shape.ObjectOf: key %v is %T, not string", kvs[i], kvs[i]))
		}
		res = append(res, Field{Key: k, Value: kvs[i+1]})
	}
	return res
}

func (o Object) Get(name string) (any, bool) {
	for i := range o {
		if o[i].Key == name {
			return o[i].Value, true
		}
	}
	return nil, false
}

func (o Object) Keys() []string {
	res := make([]string, len(o))
	for i := range o {
		res[i] = o[i].Key
	}
	return res
}

// Map returns the fields as an unordered map. Nested objects are left as is.
func (o Object) Map() map[string]any {
	res := make(map[string]any, len(o))
	for _, f := range o {
		res[f.Key] = f.Value
	}
	return res
}

func (o Object) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("error encoding field %q: %w", f.Key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o Object) MarshalYAML() (any, error) {
	res := make(yaml.MapSlice, len(o))
	for i, f := range o {
		res[i] = yaml.MapItem{Key: f.Key, Value: f.Value}
	}
	return res, nil
}

type undefined struct{}

func (undefined) String() string { return "undefined" }

func (undefined) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Undefined stands for an absent value: a property the source does not have,
// or a method call which produced nothing. It is distinct from nil, which is
// a value like any other. Source methods may return Undefined directly.
var Undefined any = undefined{}

func isUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}
