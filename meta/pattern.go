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

package meta

import (
	"fmt"

	"github.com/substrait-io/substrait-validator-sub000/diag"
)

// EvalError is returned by Pattern.Evaluate when a pattern cannot be reduced
// to a concrete Value. Its Classification is always diag.DerivationInvalid
// (the arguments don't fit the pattern's shape) or diag.DerivationFailed (a
// runtime failure while attempting to evaluate, e.g. integer overflow).
type EvalError struct {
	Classification diag.Classification
	Message        string
}

// Error implements the error interface.
func (e *EvalError) Error() string { return e.Message }

func invalidf(format string, args ...interface{}) *EvalError {
	return &EvalError{Classification: diag.DerivationInvalid, Message: fmt.Sprintf(format, args...)}
}

func failedf(format string, args ...interface{}) *EvalError {
	return &EvalError{Classification: diag.DerivationFailed, Message: fmt.Sprintf(format, args...)}
}

// Pattern is a matchable template over meta Values. Implementations outside
// this package (types.TypePattern) are expected and supported: Pattern is
// intentionally a narrow interface rather than a closed sum type so that the
// types package can add the "datatype" pattern variant without this
// package importing types (see package doc).
type Pattern interface {
	// Match reports whether v satisfies the pattern under ctx, extending
	// ctx with any new bindings along the way (existing bindings of the
	// same name must instead be checked for equality; see Binding).
	// An UnresolvedValue always matches.
	Match(v Value, ctx *Context) bool
	// Evaluate reduces the pattern to a concrete Value under ctx, or
	// returns an *EvalError if the pattern isn't evaluable (e.g. an
	// unbound binding, a non-singleton range, a non-singleton enum set,
	// or a non-concrete datatype pattern).
	Evaluate(ctx *Context) (Value, error)
	// String renders the pattern in surface syntax for diagnostics.
	String() string
}

// AnyPattern matches every value, including UnresolvedValue, and is never
// evaluable on its own.
type AnyPattern struct{}

// Match implements Pattern.
func (AnyPattern) Match(Value, *Context) bool { return true }

// Evaluate implements Pattern.
func (AnyPattern) Evaluate(*Context) (Value, error) {
	return nil, invalidf("'any' pattern has no single value")
}

func (AnyPattern) String() string { return "?" }

// Binding is a named pattern variable. The first time it is matched within
// an evaluation context it captures whatever value it is matched against;
// subsequent matches of the same name require equality with the captured
// value.
type Binding struct {
	Name string
}

// Match implements Pattern.
func (b Binding) Match(v Value, ctx *Context) bool {
	if _, ok := v.(UnresolvedValue); ok {
		// An unresolved operand still participates in binding so that
		// later references to the same name don't spuriously fail; but it
		// is itself treated as a wildcard match.
		if _, bound := ctx.Lookup(b.Name); !bound {
			ctx.Bind(b.Name, v)
		}
		return true
	}
	if existing, ok := ctx.Lookup(b.Name); ok {
		if _, unresolved := existing.(UnresolvedValue); unresolved {
			return true
		}
		return existing.Equal(v)
	}
	ctx.Bind(b.Name, v)
	return true
}

// Evaluate implements Pattern.
func (b Binding) Evaluate(ctx *Context) (Value, error) {
	if v, ok := ctx.Lookup(b.Name); ok {
		return v, nil
	}
	return nil, invalidf("binding %q is not bound in this context", b.Name)
}

func (b Binding) String() string { return b.Name }

// BooleanPattern matches metabool values, either any boolean or an exact
// value.
type BooleanPattern struct {
	// Any, when true, matches both true and false. Otherwise only Exact
	// matches.
	Any   bool
	Exact bool
}

// AnyBoolean returns a BooleanPattern matching both true and false.
func AnyBoolean() BooleanPattern { return BooleanPattern{Any: true} }

// ExactBoolean returns a BooleanPattern matching only v.
func ExactBoolean(v bool) BooleanPattern { return BooleanPattern{Exact: v} }

// Match implements Pattern.
func (p BooleanPattern) Match(v Value, ctx *Context) bool {
	if _, ok := v.(UnresolvedValue); ok {
		return true
	}
	b, ok := v.(BoolValue)
	if !ok {
		return false
	}
	if p.Any {
		return true
	}
	return bool(b) == p.Exact
}

// Evaluate implements Pattern.
func (p BooleanPattern) Evaluate(*Context) (Value, error) {
	if p.Any {
		return nil, invalidf("boolean pattern 'any' has no single value")
	}
	return BoolValue(p.Exact), nil
}

func (p BooleanPattern) String() string {
	if p.Any {
		return "boolean"
	}
	return fmt.Sprintf("%t", p.Exact)
}

// IntegerPattern matches metaint values within an inclusive range. Either
// bound may be absent, meaning unbounded in that direction.
type IntegerPattern struct {
	Min, Max     int64
	HasMin, HasMax bool
}

// AnyInteger returns an unbounded IntegerPattern.
func AnyInteger() IntegerPattern { return IntegerPattern{} }

// ExactInteger returns an IntegerPattern matching only v.
func ExactInteger(v int64) IntegerPattern {
	return IntegerPattern{Min: v, Max: v, HasMin: true, HasMax: true}
}

// RangeInteger returns an IntegerPattern matching [min, max].
func RangeInteger(min, max int64) IntegerPattern {
	return IntegerPattern{Min: min, Max: max, HasMin: true, HasMax: true}
}

// Match implements Pattern.
func (p IntegerPattern) Match(v Value, ctx *Context) bool {
	if _, ok := v.(UnresolvedValue); ok {
		return true
	}
	i, ok := v.(IntValue)
	if !ok {
		return false
	}
	n := int64(i)
	if p.HasMin && n < p.Min {
		return false
	}
	if p.HasMax && n > p.Max {
		return false
	}
	return true
}

// Evaluate implements Pattern.
func (p IntegerPattern) Evaluate(*Context) (Value, error) {
	if p.HasMin && p.HasMax && p.Min == p.Max {
		return IntValue(p.Min), nil
	}
	return nil, invalidf("integer range %s is not a singleton", p.String())
}

func (p IntegerPattern) String() string {
	switch {
	case p.HasMin && p.HasMax:
		return fmt.Sprintf("%d..%d", p.Min, p.Max)
	case p.HasMin:
		return fmt.Sprintf("%d..", p.Min)
	case p.HasMax:
		return fmt.Sprintf("..%d", p.Max)
	default:
		return "integer"
	}
}

// EnumPattern matches metaenum values, either any name or a set of options
// compared case-insensitively.
type EnumPattern struct {
	Any     bool
	Options []string
}

// AnyEnum returns an EnumPattern matching every name.
func AnyEnum() EnumPattern { return EnumPattern{Any: true} }

// OptionsEnum returns an EnumPattern matching any of options
// (case-insensitively).
func OptionsEnum(options ...string) EnumPattern { return EnumPattern{Options: options} }

// Match implements Pattern.
func (p EnumPattern) Match(v Value, ctx *Context) bool {
	if _, ok := v.(UnresolvedValue); ok {
		return true
	}
	e, ok := v.(EnumValue)
	if !ok {
		return false
	}
	if p.Any {
		return true
	}
	for _, o := range p.Options {
		if equalFold(o, string(e)) {
			return true
		}
	}
	return false
}

// Evaluate implements Pattern.
func (p EnumPattern) Evaluate(*Context) (Value, error) {
	if !p.Any && len(p.Options) == 1 {
		return EnumValue(p.Options[0]), nil
	}
	return nil, invalidf("enum pattern %s is not a singleton", p.String())
}

func (p EnumPattern) String() string {
	if p.Any {
		return "enum"
	}
	return "{" + joinComma(p.Options) + "}"
}

func joinComma(ss []string) string {
	out := ""
	for i, s := range ss {
		if i != 0 {
			out += ","
		}
		out += s
	}
	return out
}

// StringPattern matches metastr values, either any string or an exact one.
type StringPattern struct {
	Any   bool
	Exact string
}

// AnyString returns a StringPattern matching every string.
func AnyString() StringPattern { return StringPattern{Any: true} }

// ExactString returns a StringPattern matching only s.
func ExactString(s string) StringPattern { return StringPattern{Exact: s} }

// Match implements Pattern.
func (p StringPattern) Match(v Value, ctx *Context) bool {
	if _, ok := v.(UnresolvedValue); ok {
		return true
	}
	s, ok := v.(StringValue)
	if !ok {
		return false
	}
	if p.Any {
		return true
	}
	return string(s) == p.Exact
}

// Evaluate implements Pattern.
func (p StringPattern) Evaluate(*Context) (Value, error) {
	if !p.Any {
		return StringValue(p.Exact), nil
	}
	return nil, invalidf("string pattern 'any' has no single value")
}

func (p StringPattern) String() string {
	if p.Any {
		return "string"
	}
	return fmt.Sprintf("%q", p.Exact)
}

// Match is a free-function convenience wrapper equivalent to
// p.Match(v, ctx), kept because it reads better at call sites that already
// have p typed as the Pattern interface.
func Match(p Pattern, v Value, ctx *Context) bool { return p.Match(v, ctx) }

// Evaluate is the free-function form of p.Evaluate(ctx).
func Evaluate(p Pattern, ctx *Context) (Value, error) { return p.Evaluate(ctx) }

// Covers implements the `covers(v, p)` builtin: does p match v, without
// exporting any bindings produced along the way into the enclosing context.
func Covers(v Value, p Pattern, ctx *Context) bool {
	return p.Match(v, ctx.Fork())
}
