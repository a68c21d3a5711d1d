package shape

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expr compiles an expr-lang expression into a Predicate. The expression sees
// the effective value as `value` and the enclosing source object as `this`:
//
//	shape.Expr(`value >= 21`)
//	shape.Expr(`value == this.nickname`)
func Expr(src string) (Predicate, error) {
	prg, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: error compiling %q: %w", ErrQuery, src, err)
	}
	return func(value, this any) (any, error) {
		env := map[string]any{
			"value": exprValue(value),
			"this":  exprValue(this),
		}
		res, err := vm.Run(prg, env)
		if err != nil {
			return nil, fmt.Errorf("error evaluating %q: %w", src, err)
		}
		return res, nil
	}, nil
}

func MustExpr(src string) Predicate {
	p, err := Expr(src)
	if err != nil {
		panic(err)
	}
	return p
}

// exprValue converts ordered objects to maps so that member access works in
// expressions.
func exprValue(v any) any {
	switch x := v.(type) {
	case undefined:
		return nil
	case Object:
		res := make(map[string]any, len(x))
		for _, f := range x {
			res[f.Key] = exprValue(f.Value)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = exprValue(x[i])
		}
		return res
	}
	return v
}
