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

package validator

import (
	"strings"

	"github.com/substrait-io/substrait-validator-sub000/diag"
	"github.com/substrait-io/substrait-validator-sub000/meta"
	"github.com/substrait-io/substrait-validator-sub000/path"
	"github.com/substrait-io/substrait-validator-sub000/types"
)

// bindFunction implements §4.5: resolve sf's FunctionReference anchor to a
// FunctionDecl, pick the overload its argument types match, evaluate that
// overload's derivation program, and reconcile the result against any
// explicit output type the plan also carries. It always returns a usable
// type (falling back to unresolved) so a binding failure never stops the
// rest of the tree from being built.
func bindFunction(anchor uint32, argTypes []types.Type, explicit *types.Type, at *anchorTable, p path.Path, diags *[]diag.Diagnostic) types.Type {
	fa, ok := at.functions[anchor]
	if !ok {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.LinkMissingAnchor, "scalar function references undeclared anchor %d", anchor),
			diag.Error, p))
		return unresolvedType(explicit)
	}

	overloads := candidateOverloads(fa, diags, p)
	matches := matchOverloads(overloads, argTypes)

	switch len(matches) {
	case 0:
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.LinkUnresolvedReference, "no overload of %q accepts the given argument types", fa.name),
			diag.Error, p))
		return unresolvedType(explicit)
	case 1:
		return resolveReturnType(fa.name, matches[0], argTypes, explicit, p, diags)
	default:
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.LinkAmbiguousName, "%d overloads of %q match the given argument types", len(matches), fa.name),
			diag.Error, p))
		return resolveReturnType(fa.name, matches[0], argTypes, explicit, p, diags)
	}
}

// candidateOverloads narrows fa.decl's overloads to those reachable by the
// name the plan actually used: an exact compound-name match if the
// reference was compound (e.g. "add:i32_i32"), or, for a simple name, every
// overload -- flagging LinkCompoundVsSimpleFunctionName when more than one
// exists, since a simple name left that ambiguity for the argument-pattern
// match to resolve instead.
func candidateOverloads(fa funcAnchor, diags *[]diag.Diagnostic, p path.Path) []types.FunctionOverload {
	if idx := strings.IndexByte(fa.name, ':'); idx >= 0 {
		for _, o := range fa.decl.Overloads {
			if o.CompoundName == fa.name {
				return []types.FunctionOverload{o}
			}
		}
		return nil
	}
	if len(fa.decl.Overloads) > 1 {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.LinkCompoundVsSimpleFunctionName, "simple name %q used where %d overloads exist", fa.name, len(fa.decl.Overloads)),
			diag.Warning, p))
	}
	return fa.decl.Overloads
}

// matchOverloads filters candidates to those whose ArgumentPatterns all
// match argTypes positionally (variadic overloads repeat their last
// pattern against any trailing arguments).
func matchOverloads(candidates []types.FunctionOverload, argTypes []types.Type) []types.FunctionOverload {
	var matches []types.FunctionOverload
	for _, o := range candidates {
		if overloadMatches(o, argTypes) {
			matches = append(matches, o)
		}
	}
	return matches
}

func overloadMatches(o types.FunctionOverload, argTypes []types.Type) bool {
	if !o.Variadic && len(o.Arguments) != len(argTypes) {
		return false
	}
	if o.Variadic && len(argTypes) < len(o.Arguments)-1 {
		return false
	}
	ctx := meta.NewContext()
	for i, at := range argTypes {
		pat := patternFor(o, i)
		if pat == nil {
			return false
		}
		if !pat.Pattern.Match(at, ctx) {
			return false
		}
	}
	return true
}

func patternFor(o types.FunctionOverload, argIndex int) *types.ArgumentPattern {
	if argIndex < len(o.Arguments) {
		return &o.Arguments[argIndex]
	}
	if o.Variadic && len(o.Arguments) > 0 {
		return &o.Arguments[len(o.Arguments)-1]
	}
	return nil
}

// resolveReturnType rebinds m's argument patterns (Match's side effects on
// a throwaway context aren't retained, so binding happens again here against
// the context actually passed to Evaluate) and evaluates the overload's
// derivation program, reconciling against explicit when the plan also
// declares an output type.
func resolveReturnType(name string, m types.FunctionOverload, argTypes []types.Type, explicit *types.Type, p path.Path, diags *[]diag.Diagnostic) types.Type {
	ctx := meta.NewContext()
	for i, at := range argTypes {
		pat := patternFor(m, i)
		if pat == nil || !pat.Pattern.Match(at, ctx) {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.LinkUnresolvedReference, "argument %d of %q does not match its declared pattern", i, name),
				diag.Error, p))
			return unresolvedType(explicit)
		}
	}

	derived, err := m.Return.Evaluate(nil, ctx)
	if err != nil {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.LinkUnresolvedReference, "deriving return type of %q: %v", name, err),
			diag.Error, p))
		return unresolvedType(explicit)
	}
	derivedType, ok := derived.(types.Type)
	if !ok {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.LinkUnresolvedReference, "%q's derivation program did not produce a type", name),
			diag.Error, p))
		return unresolvedType(explicit)
	}

	if explicit != nil && !explicit.Equal(derivedType) {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.TypeMismatchedParameters, "%q's declared output type %s does not match its derived return type %s", name, explicit, derivedType),
			diag.Error, p))
		return *explicit
	}
	return derivedType
}

func unresolvedType(explicit *types.Type) types.Type {
	if explicit != nil {
		return *explicit
	}
	return types.NewSimple(types.Boolean, true)
}
