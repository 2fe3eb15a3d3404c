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

import "fmt"

// SimpleClass enumerates Substrait's built-in, unparameterized type classes.
type SimpleClass int

const (
	Boolean SimpleClass = iota
	I8
	I16
	I32
	I64
	FP32
	FP64
	StringClass
	Binary
	Timestamp
	TimestampTZ
	Date
	Time
	IntervalYear
	IntervalDay
	UUID
)

var simpleNames = [...]string{
	"boolean", "i8", "i16", "i32", "i64", "fp32", "fp64", "string", "binary",
	"timestamp", "timestamp_tz", "date", "time", "interval_year", "interval_day", "uuid",
}

// String implements fmt.Stringer.
func (s SimpleClass) String() string {
	if int(s) < len(simpleNames) {
		return simpleNames[s]
	}
	return fmt.Sprintf("SimpleClass(%d)", int(s))
}

// CompoundClass enumerates Substrait's built-in, parameterized type classes.
type CompoundClass int

const (
	FixedChar CompoundClass = iota
	VarChar
	FixedBinary
	Decimal
	Struct
	NStruct
	List
	Map
)

var compoundNames = [...]string{
	"FIXEDCHAR", "VARCHAR", "FIXEDBINARY", "DECIMAL", "STRUCT", "NSTRUCT", "LIST", "MAP",
}

// String implements fmt.Stringer.
func (c CompoundClass) String() string {
	if int(c) < len(compoundNames) {
		return compoundNames[c]
	}
	return fmt.Sprintf("CompoundClass(%d)", int(c))
}

// ClassKind discriminates the four Class variants.
type ClassKind int

const (
	ClassUnresolved ClassKind = iota
	ClassSimple
	ClassCompound
	ClassUserDefined
)

// Class is the head of a data type: unresolved, one of the built-in simple
// or compound classes, or a reference to a user-defined type class
// declaration (§3.4).
type Class struct {
	kind         ClassKind
	simple       SimpleClass
	compound     CompoundClass
	userDefined  ClassRef
}

// UnresolvedClass returns the Class used for error recovery.
func UnresolvedClass() Class { return Class{kind: ClassUnresolved} }

// NewSimpleClass wraps a SimpleClass.
func NewSimpleClass(s SimpleClass) Class { return Class{kind: ClassSimple, simple: s} }

// NewCompoundClass wraps a CompoundClass.
func NewCompoundClass(c CompoundClass) Class { return Class{kind: ClassCompound, compound: c} }

// NewUserDefinedClass wraps a reference to a user-defined type class.
func NewUserDefinedClass(ref ClassRef) Class { return Class{kind: ClassUserDefined, userDefined: ref} }

// Kind reports which variant c is.
func (c Class) Kind() ClassKind { return c.kind }

// Simple returns the wrapped SimpleClass; only meaningful if Kind() ==
// ClassSimple.
func (c Class) Simple() SimpleClass { return c.simple }

// Compound returns the wrapped CompoundClass; only meaningful if Kind() ==
// ClassCompound.
func (c Class) Compound() CompoundClass { return c.compound }

// UserDefined returns the wrapped reference; only meaningful if Kind() ==
// ClassUserDefined.
func (c Class) UserDefined() ClassRef { return c.userDefined }

// String implements fmt.Stringer.
func (c Class) String() string {
	switch c.kind {
	case ClassSimple:
		return c.simple.String()
	case ClassCompound:
		return c.compound.String()
	case ClassUserDefined:
		return c.userDefined.String()
	default:
		return "!"
	}
}

// Equal is strict equality: two unresolved classes are equal to each other
// (both being the error-recovery sentinel), but see WeakEqual for the
// wildcard behavior used during pattern matching.
func (c Class) Equal(other Class) bool {
	if c.kind != other.kind {
		return false
	}
	switch c.kind {
	case ClassSimple:
		return c.simple == other.simple
	case ClassCompound:
		return c.compound == other.compound
	case ClassUserDefined:
		return c.userDefined.Equal(other.userDefined)
	default:
		return true
	}
}

// WeakEqual reports whether two classes are equal, treating either side
// being unresolved as an automatic match (§4.2's "class must weakly-equal").
func (c Class) WeakEqual(other Class) bool {
	if c.kind == ClassUnresolved || other.kind == ClassUnresolved {
		return true
	}
	return c.Equal(other)
}

// HasParameters reports whether this class ever takes parameters (used to
// decide whether to print <> for an empty parameter list).
func (c Class) HasParameters() bool {
	return c.kind == ClassCompound || c.kind == ClassUserDefined
}

// ParameterName returns the logical name of the parameter at index, or the
// index itself stringified if the class assigns no name there.
func (c Class) ParameterName(index int) string {
	if c.kind == ClassCompound {
		if name, ok := compoundParameterName(c.compound, index); ok {
			return name
		}
	}
	return fmt.Sprintf("%d", index)
}

func compoundParameterName(c CompoundClass, index int) (string, bool) {
	switch {
	case (c == FixedChar || c == VarChar || c == FixedBinary) && index == 0:
		return "length", true
	case c == Decimal && index == 0:
		return "precision", true
	case c == Decimal && index == 1:
		return "scale", true
	case c == List && index == 0:
		return "element", true
	case c == Map && index == 0:
		return "key", true
	case c == Map && index == 1:
		return "value", true
	case c == Struct || c == NStruct:
		return fmt.Sprintf("%d", index), true
	}
	return "", false
}
