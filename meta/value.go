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

import "fmt"

// Value is a concrete meta value: the result of evaluating a Pattern, or an
// operand to match a Pattern against. Every implementation lives in this
// package except types.Type, which implements Value directly (MetaType
// TypeName) so that concrete data types can be carried through a Context
// without this package depending on types.
type Value interface {
	// MetaType reports which meta-type this value belongs to.
	MetaType() Type
	// Equal reports whether two values of the same meta-type are equal.
	// Values of different concrete Go types (but the same MetaType, e.g.
	// two types.Type implementations) must still compare correctly;
	// Equal is only ever called with both operands sharing a MetaType.
	Equal(other Value) bool
	// String renders the value for diagnostics.
	String() string
}

// Unresolved is the single value inhabiting the Unresolved meta-type. It
// compares equal to nothing (including itself is intentionally excluded per
// the invariant that unresolved values only ever act as wildcards on the
// pattern side; as a bare value it should not be asserted equal elsewhere).
type UnresolvedValue struct{}

// MetaType implements Value.
func (UnresolvedValue) MetaType() Type { return Unresolved }

// Equal implements Value. Two unresolved values are never considered equal:
// each represents a distinct, unknown quantity.
func (UnresolvedValue) Equal(Value) bool { return false }

func (UnresolvedValue) String() string { return "<unresolved>" }

// BoolValue is a metabool.
type BoolValue bool

// MetaType implements Value.
func (BoolValue) MetaType() Type { return Bool }

// Equal implements Value.
func (v BoolValue) Equal(other Value) bool {
	o, ok := other.(BoolValue)
	return ok && v == o
}

func (v BoolValue) String() string { return fmt.Sprintf("%t", bool(v)) }

// IntValue is a metaint (signed 64-bit).
type IntValue int64

// MetaType implements Value.
func (IntValue) MetaType() Type { return Int }

// Equal implements Value.
func (v IntValue) Equal(other Value) bool {
	o, ok := other.(IntValue)
	return ok && v == o
}

func (v IntValue) String() string { return fmt.Sprintf("%d", int64(v)) }

// EnumValue is a metaenum: a name drawn from some option set. Equality is
// case-insensitive, matching the case-insensitivity of enum patterns.
type EnumValue string

// MetaType implements Value.
func (EnumValue) MetaType() Type { return Enum }

// Equal implements Value.
func (v EnumValue) Equal(other Value) bool {
	o, ok := other.(EnumValue)
	return ok && equalFold(string(v), string(o))
}

func (v EnumValue) String() string { return string(v) }

// StringValue is a metastr.
type StringValue string

// MetaType implements Value.
func (StringValue) MetaType() Type { return String }

// Equal implements Value.
func (v StringValue) Equal(other Value) bool {
	o, ok := other.(StringValue)
	return ok && v == o
}

func (v StringValue) String() string { return string(v) }

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
