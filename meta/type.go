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

// Package meta implements the meta-type universe used for type-parameter
// patterns and the derivation language: a small, disjoint type system of
// bools, integers, enums, strings and data types, plus pattern values over
// them that support named bindings. It is deliberately the lowest-level
// package above diag/path: it has no dependency on the data-type model
// (package types), which instead depends on meta and implements meta.Value
// for its own Type so that concrete data types can flow through binding
// contexts as "typename" meta values (see types/pattern.go).
package meta

import "fmt"

// Type is the meta-type of a meta Value or Pattern.
type Type int

const (
	// Unresolved is the meta-type of a value that could not be determined,
	// e.g. because it depends on an unresolved extension reference. An
	// unresolved value matches any pattern, to suppress cascading errors.
	Unresolved Type = iota
	// Bool is a metabool.
	Bool
	// Int is a metaint (signed 64-bit).
	Int
	// Enum is a metaenum (a case-preserved string drawn from some option
	// set known to the pattern, not the value).
	Enum
	// String is a metastr.
	String
	// TypeName is a data type (package types' Type).
	TypeName
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case Unresolved:
		return "unresolved"
	case Bool:
		return "metabool"
	case Int:
		return "metaint"
	case Enum:
		return "metaenum"
	case String:
		return "metastr"
	case TypeName:
		return "typename"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}
