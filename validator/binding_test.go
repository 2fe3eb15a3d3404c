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
	"testing"

	"github.com/substrait-io/substrait-validator-sub000/diag"
	"github.com/substrait-io/substrait-validator-sub000/meta"
	"github.com/substrait-io/substrait-validator-sub000/path"
	"github.com/substrait-io/substrait-validator-sub000/types"
)

// fixedReturn is a DerivationProgram stub that ignores its arguments and
// always returns the same type, standing in for a compiled derivation
// program in tests that only care about bindFunction's overload-selection
// and reconciliation logic.
type fixedReturn struct {
	t types.Type
}

func (f fixedReturn) Evaluate(args []meta.Value, ctx *meta.Context) (meta.Value, error) { return f.t, nil }
func (f fixedReturn) String() string                                                    { return "fixed" }

func exactArg(t types.Type) types.ArgumentPattern {
	return types.ArgumentPattern{Pattern: types.TypePattern{ClassPat: types.ExactClass(t.Class()), Nullability: types.AnyNullability()}}
}

func declWithOverloads(overloads ...types.FunctionOverload) *types.FunctionDecl {
	return &types.FunctionDecl{URI: "u", Name: "add", Overloads: overloads}
}

func TestBindFunctionSingleMatch(t *testing.T) {
	i32 := types.NewSimple(types.I32, false)
	decl := declWithOverloads(types.FunctionOverload{
		CompoundName: "add:i32_i32",
		Arguments:    []types.ArgumentPattern{exactArg(i32), exactArg(i32)},
		Return:       fixedReturn{t: i32},
	})
	at := emptyAnchors()
	at.functions[1] = funcAnchor{decl: decl, name: "add:i32_i32"}

	var diags []diag.Diagnostic
	got := bindFunction(1, []types.Type{i32, i32}, nil, at, path.Root("plan"), &diags)

	if len(diags) != 0 {
		t.Fatalf("bindFunction() produced unexpected diagnostics: %v", diags)
	}
	if !got.Equal(i32) {
		t.Errorf("bindFunction() = %v, want %v", got, i32)
	}
}

func TestBindFunctionMissingAnchor(t *testing.T) {
	at := emptyAnchors()
	var diags []diag.Diagnostic

	bindFunction(99, nil, nil, at, path.Root("plan"), &diags)

	if len(diags) != 1 || diags[0].Cause.Classification != diag.LinkMissingAnchor {
		t.Fatalf("diags = %v, want a single LinkMissingAnchor diagnostic", diags)
	}
}

func TestBindFunctionNoMatchingOverload(t *testing.T) {
	i32 := types.NewSimple(types.I32, false)
	str := types.NewSimple(types.StringClass, false)
	decl := declWithOverloads(types.FunctionOverload{
		CompoundName: "add:i32_i32",
		Arguments:    []types.ArgumentPattern{exactArg(i32), exactArg(i32)},
		Return:       fixedReturn{t: i32},
	})
	at := emptyAnchors()
	at.functions[1] = funcAnchor{decl: decl, name: "add:i32_i32"}

	var diags []diag.Diagnostic
	bindFunction(1, []types.Type{str, str}, nil, at, path.Root("plan"), &diags)

	if len(diags) != 1 || diags[0].Cause.Classification != diag.LinkUnresolvedReference {
		t.Fatalf("diags = %v, want a single LinkUnresolvedReference diagnostic", diags)
	}
}

func TestBindFunctionSimpleNameAmbiguityWarns(t *testing.T) {
	i32 := types.NewSimple(types.I32, false)
	str := types.NewSimple(types.StringClass, false)
	decl := declWithOverloads(
		types.FunctionOverload{CompoundName: "add:i32_i32", Arguments: []types.ArgumentPattern{exactArg(i32), exactArg(i32)}, Return: fixedReturn{t: i32}},
		types.FunctionOverload{CompoundName: "add:str_str", Arguments: []types.ArgumentPattern{exactArg(str), exactArg(str)}, Return: fixedReturn{t: str}},
	)
	at := emptyAnchors()
	at.functions[1] = funcAnchor{decl: decl, name: "add"}

	var diags []diag.Diagnostic
	got := bindFunction(1, []types.Type{i32, i32}, nil, at, path.Root("plan"), &diags)

	if len(diags) != 1 || diags[0].Cause.Classification != diag.LinkCompoundVsSimpleFunctionName {
		t.Fatalf("diags = %v, want a single LinkCompoundVsSimpleFunctionName warning", diags)
	}
	if !got.Equal(i32) {
		t.Errorf("bindFunction() = %v, want %v (only the i32 overload matches the argument types)", got, i32)
	}
}

func TestBindFunctionExplicitTypeMismatch(t *testing.T) {
	i32 := types.NewSimple(types.I32, false)
	str := types.NewSimple(types.StringClass, false)
	decl := declWithOverloads(types.FunctionOverload{
		CompoundName: "add:i32_i32",
		Arguments:    []types.ArgumentPattern{exactArg(i32), exactArg(i32)},
		Return:       fixedReturn{t: i32},
	})
	at := emptyAnchors()
	at.functions[1] = funcAnchor{decl: decl, name: "add:i32_i32"}

	var diags []diag.Diagnostic
	got := bindFunction(1, []types.Type{i32, i32}, &str, at, path.Root("plan"), &diags)

	if len(diags) != 1 || diags[0].Cause.Classification != diag.TypeMismatchedParameters {
		t.Fatalf("diags = %v, want a single TypeMismatchedParameters diagnostic", diags)
	}
	if !got.Equal(str) {
		t.Errorf("bindFunction() = %v, want the explicit type %v to win", got, str)
	}
}

func TestUnresolvedType(t *testing.T) {
	if got := unresolvedType(nil); got.Class().Kind() != types.ClassSimple {
		t.Errorf("unresolvedType(nil) = %v, want a simple fallback", got)
	}
	str := types.NewSimple(types.StringClass, false)
	if got := unresolvedType(&str); !got.Equal(str) {
		t.Errorf("unresolvedType(&str) = %v, want %v", got, str)
	}
}
