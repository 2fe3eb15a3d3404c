// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package derivation

import (
	"github.com/substrait-io/substrait-validator-sub000/meta"
)

// expr is the AST node interface: every derivation-language construct
// (literal, binding reference, operator application, type expression,
// if/then/else, function call) evaluates to a meta.Value given a binding
// context, or reports that it can't.
type expr interface {
	eval(ctx *meta.Context) (meta.Value, error)
}

// boolLit, intLit, strLit, enumLit are the constant leaves.
type boolLit bool
type intLit int64
type strLit string
type enumLit string

func (v boolLit) eval(*meta.Context) (meta.Value, error) { return meta.BoolValue(v), nil }
func (v intLit) eval(*meta.Context) (meta.Value, error)  { return meta.IntValue(v), nil }
func (v strLit) eval(*meta.Context) (meta.Value, error)  { return meta.StringValue(v), nil }
func (v enumLit) eval(*meta.Context) (meta.Value, error) { return meta.EnumValue(v), nil }

// bindingRef looks up a previously bound name (a function argument, or an
// intermediate "let"-like normal statement) in the context.
type bindingRef struct{ name string }

func (b bindingRef) eval(ctx *meta.Context) (meta.Value, error) {
	if v, ok := ctx.Lookup(b.name); ok {
		return v, nil
	}
	return nil, failedf("unbound name %q", b.name)
}

// unaryOp is `!x` or `-x`.
type unaryOp struct {
	op   tokenKind
	expr expr
}

func (u unaryOp) eval(ctx *meta.Context) (meta.Value, error) {
	v, err := u.expr.eval(ctx)
	if err != nil {
		return nil, err
	}
	switch u.op {
	case tokNot:
		b, ok := v.(meta.BoolValue)
		if !ok {
			return nil, failedf("'!' requires a metabool operand")
		}
		return meta.BoolValue(!bool(b)), nil
	case tokMinus:
		i, ok := v.(meta.IntValue)
		if !ok {
			return nil, failedf("unary '-' requires a metaint operand")
		}
		return meta.IntValue(-int64(i)), nil
	}
	return nil, failedf("unsupported unary operator")
}

// binaryOp covers &&, ||, ==, !=, <, <=, >, >=, +, -, *, /, left-associative
// and grouped by precedence during parsing.
type binaryOp struct {
	op          tokenKind
	left, right expr
}

func (b binaryOp) eval(ctx *meta.Context) (meta.Value, error) {
	switch b.op {
	case tokAnd, tokOr:
		lv, err := b.left.eval(ctx)
		if err != nil {
			return nil, err
		}
		lb, ok := lv.(meta.BoolValue)
		if !ok {
			return nil, failedf("'%s' requires metabool operands", opName(b.op))
		}
		// Short-circuit, matching the builtin and()/or() semantics.
		if b.op == tokAnd && !bool(lb) {
			return meta.BoolValue(false), nil
		}
		if b.op == tokOr && bool(lb) {
			return meta.BoolValue(true), nil
		}
		rv, err := b.right.eval(ctx)
		if err != nil {
			return nil, err
		}
		rb, ok := rv.(meta.BoolValue)
		if !ok {
			return nil, failedf("'%s' requires metabool operands", opName(b.op))
		}
		return rb, nil
	case tokEq, tokNeq:
		lv, err := b.left.eval(ctx)
		if err != nil {
			return nil, err
		}
		rv, err := b.right.eval(ctx)
		if err != nil {
			return nil, err
		}
		if lv.MetaType() != rv.MetaType() {
			return nil, failedf("cannot compare values of different meta-types")
		}
		eq := lv.Equal(rv)
		if b.op == tokNeq {
			eq = !eq
		}
		return meta.BoolValue(eq), nil
	case tokLt, tokLe, tokGt, tokGe:
		li, ri, err := intOperands(ctx, b.left, b.right)
		if err != nil {
			return nil, err
		}
		var result bool
		switch b.op {
		case tokLt:
			result = li < ri
		case tokLe:
			result = li <= ri
		case tokGt:
			result = li > ri
		case tokGe:
			result = li >= ri
		}
		return meta.BoolValue(result), nil
	case tokPlus, tokMinus, tokStar, tokSlash:
		li, ri, err := intOperands(ctx, b.left, b.right)
		if err != nil {
			return nil, err
		}
		switch b.op {
		case tokPlus:
			return meta.IntValue(li + ri), nil
		case tokMinus:
			return meta.IntValue(li - ri), nil
		case tokStar:
			return meta.IntValue(li * ri), nil
		case tokSlash:
			if ri == 0 {
				return nil, failedf("division by zero")
			}
			return meta.IntValue(li / ri), nil
		}
	}
	return nil, failedf("unsupported binary operator")
}

func intOperands(ctx *meta.Context, left, right expr) (int64, int64, error) {
	lv, err := left.eval(ctx)
	if err != nil {
		return 0, 0, err
	}
	rv, err := right.eval(ctx)
	if err != nil {
		return 0, 0, err
	}
	li, ok := lv.(meta.IntValue)
	if !ok {
		return 0, 0, failedf("operator requires metaint operands")
	}
	ri, ok := rv.(meta.IntValue)
	if !ok {
		return 0, 0, failedf("operator requires metaint operands")
	}
	return int64(li), int64(ri), nil
}

func opName(k tokenKind) string {
	switch k {
	case tokAnd:
		return "&&"
	case tokOr:
		return "||"
	default:
		return "?"
	}
}

// ifExpr is `if_then_else`'s infix spelling, `cond ? then : else`.
type ifExpr struct {
	cond, then, els expr
}

func (f ifExpr) eval(ctx *meta.Context) (meta.Value, error) {
	cv, err := f.cond.eval(ctx)
	if err != nil {
		return nil, err
	}
	cb, ok := cv.(meta.BoolValue)
	if !ok {
		return nil, failedf("'if' condition must be a metabool")
	}
	if bool(cb) {
		return f.then.eval(ctx)
	}
	return f.els.eval(ctx)
}

// callExpr invokes a named builtin function (§4.3's standard library:
// not, and, or, negate, add, subtract, multiply, divide, min, max, equal,
// not_equal, greater_than, less_than, greater_equal, less_equal, covers,
// if_then_else) with its evaluated arguments.
type callExpr struct {
	name string
	args []expr
}

func (c callExpr) eval(ctx *meta.Context) (meta.Value, error) {
	if c.name == "covers" {
		if len(c.args) != 2 {
			return nil, invalidf("covers expects 2 arguments, got %d", len(c.args))
		}
		v, err := c.args[0].eval(ctx)
		if err != nil {
			return nil, err
		}
		return meta.BoolValue(meta.Covers(v, asPattern(c.args[1]), ctx)), nil
	}
	if c.name == "and" || c.name == "or" {
		// Short-circuit left to right: stop at the first argument that
		// decides the result, leaving the rest unevaluated.
		decisive := c.name == "or"
		for _, a := range c.args {
			v, err := a.eval(ctx)
			if err != nil {
				return nil, err
			}
			b, err := wantBool(v, c.name)
			if err != nil {
				return nil, err
			}
			if b == decisive {
				return meta.BoolValue(decisive), nil
			}
		}
		return meta.BoolValue(!decisive), nil
	}
	fn, ok := builtins[c.name]
	if !ok {
		return nil, failedf("unknown function %q", c.name)
	}
	args := make([]meta.Value, len(c.args))
	for i, a := range c.args {
		v, err := a.eval(ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return fn(args, ctx)
}
