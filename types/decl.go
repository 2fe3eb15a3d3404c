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

import "github.com/substrait-io/substrait-validator-sub000/meta"

// ClassDecl is a user-defined type class declaration from an extension YAML
// module: just enough identity to be used as the UserDefined variant of
// Class. Substrait doesn't give user-defined type classes a parameter
// shape of their own (unlike the built-in Compound classes), so beyond its
// name a ClassDecl carries no further structure.
type ClassDecl struct {
	URI  string
	Name string
}

// VariationBehavior controls whether operations defined on a variation's
// base class apply to the variation itself (§3.4).
type VariationBehavior int

const (
	// Inherits means operations defined on the base class also apply to
	// values using this variation.
	Inherits VariationBehavior = iota
	// Separate means this variation's values are not implicitly
	// interchangeable with the base class for the purpose of operation
	// resolution.
	Separate
)

// VariationDecl is a user-defined type variation declaration: a name, the
// class it varies, and its function behavior.
type VariationDecl struct {
	URI      string
	Name     string
	Base     Class
	Behavior VariationBehavior
}

// DerivationProgram is the minimal surface the extension model needs from a
// compiled derivation program (package derivation's Program), to avoid this
// package importing derivation (which itself needs to resolve user-defined
// type/function names through this package's namespaces - see
// DESIGN.md). Evaluate runs the program against bound argument values
// (metaint/metabool/typename/... per parameter) and yields the derived
// return type's meta value, or an *meta.EvalError.
type DerivationProgram interface {
	Evaluate(args []meta.Value, ctx *meta.Context) (meta.Value, error)
	String() string
}

// ArgumentPattern is one positional parameter slot of a function overload's
// signature, binding an argument's data type (or other meta value, for
// non-type parameters on a generic function) to a pattern.
type ArgumentPattern struct {
	Name    string
	Pattern meta.Pattern
}

// FunctionOverload is one compound-named overload of a FunctionDecl.
type FunctionOverload struct {
	// CompoundName is the disambiguating suffix-qualified name, e.g.
	// "add:i32_i32".
	CompoundName string
	Arguments    []ArgumentPattern
	Variadic     bool
	Return       DerivationProgram
	// DeterministicOverride, NullabilityHandling etc. are left to the
	// FunctionOptions bag rather than hardcoded fields, matching how
	// sparse the set of options actually used by callers in this core is.
	Options map[string]string
}

// FunctionDecl is a user-defined scalar/aggregate/window function
// declaration: a simple name plus every compound-named overload declared
// for it.
type FunctionDecl struct {
	URI       string
	Name      string
	Overloads []FunctionOverload
}

// ClassRef, VariationRef and FunctionRef are the three reference kinds the
// extension resolution layer (§3.5) anchors to declarations found inside
// fetched extension modules.
type (
	ClassRef     = Reference[ClassDecl]
	VariationRef = Reference[VariationDecl]
	FunctionRef  = Reference[FunctionDecl]
)
