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
	"github.com/substrait-io/substrait-validator-sub000/types"
)

// Resolver looks up the user-defined type classes and variations a
// derivation expression's identifierPath might name, within the scope
// (module + its resolved dependencies) the expression was compiled in. The
// built-in simple/compound class keywords (i32, decimal, struct, ...) never
// go through a Resolver; only genuinely user-defined names do.
type Resolver interface {
	ResolveClass(name string) (types.ClassRef, bool)
	ResolveVariation(name string) (types.VariationRef, bool)
}

// typeParam is one parameter slot inside a type expression's `<...>`: an
// optional field name (NSTRUCT) paired with the sub-expression/pattern for
// its value.
type typeParam struct {
	name    string
	hasName bool
	value   expr
}

// typeExpr builds a data type (or, via asTypePattern, a datatype pattern)
// from a class keyword or resolved user-defined class reference, an
// optional nullability suffix, an optional variation suffix and a
// parameter list.
type typeExpr struct {
	class       types.Class
	hasClass    bool // false means "any class" (the `datatype` wildcard)
	nullable    bool
	hasNullable bool // false means "don't care"
	variation   types.Variation
	hasVariation bool
	params      []typeParam
	hasParams   bool
}

func (t typeExpr) eval(ctx *meta.Context) (meta.Value, error) {
	if !t.hasClass {
		return nil, invalidf("'datatype' wildcard has no single value")
	}
	nullable := t.hasNullable && t.nullable
	variation := types.SystemPreferredVariation()
	if t.hasVariation {
		variation = t.variation
	}
	var params []types.Parameter
	if t.hasParams {
		params = make([]types.Parameter, len(t.params))
		for i, p := range t.params {
			v, err := p.value.eval(ctx)
			if err != nil {
				return nil, err
			}
			if p.hasName {
				params[i] = types.NamedParameter(p.name, v)
			} else {
				params[i] = types.UnnamedParameter(v)
			}
		}
	}
	ty, err := types.New(t.class, nullable, variation, params)
	if err != nil {
		return nil, invalidf("%s", err.Error())
	}
	return ty, nil
}

// asTypePattern converts this node to the types.TypePattern it describes,
// for use as a function argument pattern or as covers()'s second operand.
func (t typeExpr) asTypePattern() types.TypePattern {
	pat := types.TypePattern{ClassPat: types.AnyClass(), Nullability: types.AnyNullability()}
	if t.hasClass {
		pat.ClassPat = types.ExactClass(t.class)
	}
	if t.hasNullable {
		pat.Nullability = types.ExactNullability(t.nullable)
	}
	if t.hasParams {
		pat.Parameters = make([]meta.Pattern, len(t.params))
		for i, p := range t.params {
			pat.Parameters[i] = asPattern(p.value)
		}
	}
	return pat
}
