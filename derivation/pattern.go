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

import "github.com/substrait-io/substrait-validator-sub000/meta"

// patternLit wraps a meta.Pattern directly in the expr tree, for the
// pattern-only literals the grammar's patternMisc rule admits (boolAny,
// intAny/intRange/intAtLeast/intAtMost, enumAny/enumSet, strAny, dtAny): a
// bare "any" or range isn't a value until Evaluate narrows it to a
// singleton, exactly as meta.Pattern.Evaluate already models.
type patternLit struct{ pat meta.Pattern }

func (p patternLit) eval(ctx *meta.Context) (meta.Value, error) { return p.pat.Evaluate(ctx) }

// asPattern converts e into a meta.Pattern, for contexts that need one
// (the `covers` builtin's second argument, and a function overload's
// argument patterns). Literal values degrade to exact-match patterns;
// patternLit and typeExpr carry a pattern already; anything else falls back
// to evaluating the expression and requiring an exact value match, which is
// the correct behavior for composite expressions (e.g. `a + 1`) used where
// the grammar allows a pattern but the author wrote a value expression.
func asPattern(e expr) meta.Pattern {
	switch v := e.(type) {
	case boolLit:
		return meta.ExactBoolean(bool(v))
	case intLit:
		return meta.ExactInteger(int64(v))
	case strLit:
		return meta.ExactString(string(v))
	case enumLit:
		return meta.OptionsEnum(string(v))
	case bindingRef:
		return meta.Binding{Name: v.name}
	case patternLit:
		return v.pat
	case typeExpr:
		return v.asTypePattern()
	default:
		return exprPattern{e}
	}
}

// exprPattern adapts an arbitrary expr to meta.Pattern by requiring an
// exact match against the expression's evaluated value.
type exprPattern struct{ e expr }

func (p exprPattern) Match(v meta.Value, ctx *meta.Context) bool {
	if _, ok := v.(meta.UnresolvedValue); ok {
		return true
	}
	want, err := p.e.eval(ctx)
	if err != nil {
		return false
	}
	return want.MetaType() == v.MetaType() && want.Equal(v)
}

func (p exprPattern) Evaluate(ctx *meta.Context) (meta.Value, error) { return p.e.eval(ctx) }

func (p exprPattern) String() string { return "<expr>" }
