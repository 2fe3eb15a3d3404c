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

package types

import (
	"fmt"
	"strings"

	"github.com/substrait-io/substrait-validator-sub000/meta"
)

// ClassPattern matches a Class: either any class, or one class exactly
// (weakly, per Class.WeakEqual, so an unresolved operand still matches).
type ClassPattern struct {
	Any   bool
	Exact Class
}

// AnyClass returns a ClassPattern matching every class.
func AnyClass() ClassPattern { return ClassPattern{Any: true} }

// ExactClass returns a ClassPattern matching only c.
func ExactClass(c Class) ClassPattern { return ClassPattern{Exact: c} }

func (p ClassPattern) match(c Class) bool {
	return p.Any || p.Exact.WeakEqual(c)
}

func (p ClassPattern) String() string {
	if p.Any {
		return "?"
	}
	return p.Exact.String()
}

// NullabilityPattern matches a type's nullable flag: any, or an exact
// requirement.
type NullabilityPattern struct {
	Any      bool
	Required bool
}

// AnyNullability matches both nullable and non-nullable types.
func AnyNullability() NullabilityPattern { return NullabilityPattern{Any: true} }

// ExactNullability matches only types whose Nullable() == required.
func ExactNullability(required bool) NullabilityPattern {
	return NullabilityPattern{Required: required}
}

func (p NullabilityPattern) match(nullable bool) bool {
	return p.Any || p.Required == nullable
}

func (p NullabilityPattern) String() string {
	if p.Any {
		return "?"
	}
	if p.Required {
		return "nullable"
	}
	return "non-null"
}

// TypePattern is the datatype variant of meta.Pattern (§4.2): it matches
// data-type values by class, nullability and, recursively, by parameter
// patterns. It lives in this package rather than meta so that meta need not
// depend on the data-type model (see package doc on identifier.go); it is
// exactly the kind of external Pattern implementer meta.Pattern's doc
// comment anticipates.
type TypePattern struct {
	ClassPat    ClassPattern
	Nullability NullabilityPattern
	// Parameters, when non-nil, constrains the type's parameter list:
	// length must match exactly and every slot's value must match the
	// corresponding sub-pattern. A nil Parameters means "don't care",
	// matching any parameter list (including one of different length).
	Parameters []meta.Pattern
}

// AnyType returns a TypePattern matching every data type.
func AnyType() TypePattern {
	return TypePattern{ClassPat: AnyClass(), Nullability: AnyNullability()}
}

// Match implements meta.Pattern.
func (p TypePattern) Match(v meta.Value, ctx *meta.Context) bool {
	if _, ok := v.(meta.UnresolvedValue); ok {
		return true
	}
	t, ok := v.(Type)
	if !ok {
		return false
	}
	if !p.ClassPat.match(t.Class()) {
		return false
	}
	if !p.Nullability.match(t.Nullable()) {
		return false
	}
	if p.Parameters == nil {
		return true
	}
	params := t.Parameters()
	if len(params) != len(p.Parameters) {
		return false
	}
	for i, sub := range p.Parameters {
		val := params[i].Value
		if val == nil {
			val = meta.UnresolvedValue{}
		}
		if !sub.Match(val, ctx) {
			return false
		}
	}
	return true
}

// Evaluate implements meta.Pattern: a TypePattern is only evaluable when it
// names an exact class and nullability, and every parameter sub-pattern is
// itself evaluable.
func (p TypePattern) Evaluate(ctx *meta.Context) (meta.Value, error) {
	if p.ClassPat.Any {
		return nil, invalidTypePattern("pattern does not name an exact class")
	}
	if p.Nullability.Any {
		return nil, invalidTypePattern("pattern does not name an exact nullability")
	}
	var params []Parameter
	if p.Parameters != nil {
		params = make([]Parameter, len(p.Parameters))
		for i, sub := range p.Parameters {
			v, err := sub.Evaluate(ctx)
			if err != nil {
				return nil, err
			}
			params[i] = UnnamedParameter(v)
		}
	}
	t, err := New(p.ClassPat.Exact, p.Nullability.Required, SystemPreferredVariation(), params)
	if err != nil {
		return nil, invalidTypePattern(err.Error())
	}
	return t, nil
}

// String implements meta.Pattern.
func (p TypePattern) String() string {
	var b strings.Builder
	b.WriteString(p.ClassPat.String())
	switch {
	case p.Nullability.Any:
	case p.Nullability.Required:
		b.WriteByte('?')
	}
	if p.Parameters != nil {
		b.WriteString("<")
		for i, sub := range p.Parameters {
			if i != 0 {
				b.WriteString(",")
			}
			b.WriteString(sub.String())
		}
		b.WriteString(">")
	}
	return b.String()
}

func invalidTypePattern(format string, args ...interface{}) error {
	return fmt.Errorf("datatype pattern: %s", fmt.Sprintf(format, args...))
}
