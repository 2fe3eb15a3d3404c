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

package loader

import (
	"fmt"

	"github.com/substrait-io/substrait-validator-sub000/derivation"
	"github.com/substrait-io/substrait-validator-sub000/diag"
	"github.com/substrait-io/substrait-validator-sub000/path"
	"github.com/substrait-io/substrait-validator-sub000/types"
)

// buildModule populates mod (already registered under its URI) from doc,
// resolving user-defined class/variation/function names against mod itself
// plus deps (every dependency URI already fetched and resolved, in
// declaration order - see Load). Diagnostics for malformed individual
// declarations are appended to diags and do not abort the rest of the
// build, matching how a single bad function overload shouldn't take down
// every other declaration in the same document (§4.4, §7).
func buildModule(mod *types.Module, doc *document, deps []*types.Module, diags *[]diag.Diagnostic) {
	root := path.Root(mod.URI)
	resolver := &moduleResolver{self: mod, deps: deps}

	for i, d := range doc.Dependencies {
		if d.URI == "" {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.YamlMissingField, "dependency %d has no import URI", i),
				diag.Error, root.Child(path.Repeated("dependencies", i))))
			continue
		}
		mod.AddDependency(d.URI)
	}

	for i, t := range doc.Types {
		if t.Name == "" {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.YamlMissingField, "type class %d has no name", i),
				diag.Error, root.Child(path.Repeated("types", i))))
			continue
		}
		mod.Classes.DefineItem(t.Name, &types.ClassDecl{URI: mod.URI, Name: t.Name}, true)
	}

	for i, v := range doc.TypeVariations {
		p := root.Child(path.Repeated("type_variations", i))
		if v.Name == "" || v.Base == "" {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.YamlMissingField, "type variation %d is missing a name or base", i),
				diag.Error, p))
			continue
		}
		base, ok := resolveBuiltinOrUserClass(v.Base, resolver)
		if !ok {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.LinkUnresolvedReference, "variation %q names unknown base class %q", v.Name, v.Base),
				diag.Error, p))
			continue
		}
		behavior := types.Inherits
		if v.Behavior == "SEPARATE" {
			behavior = types.Separate
		}
		mod.Variations.DefineItem(v.Name, &types.VariationDecl{
			URI: mod.URI, Name: v.Name, Base: base, Behavior: behavior,
		}, true)
	}

	buildFunctions(mod, "scalar_functions", doc.ScalarFunctions, resolver, root, diags)
	buildFunctions(mod, "aggregate_functions", doc.AggregateFunctions, resolver, root, diags)
	buildFunctions(mod, "window_functions", doc.WindowFunctions, resolver, root, diags)
}

func buildFunctions(mod *types.Module, field string, decls []functionDecl, resolver derivation.Resolver, root path.Path, diags *[]diag.Diagnostic) {
	for i, f := range decls {
		p := root.Child(path.Repeated(field, i))
		if f.Name == "" {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.YamlMissingField, "function %d has no name", i),
				diag.Error, p))
			continue
		}
		overloads := make([]types.FunctionOverload, 0, len(f.Overloads))
		for j, impl := range f.Overloads {
			op := p.Child(path.Repeated("impls", j))
			overload, err := buildOverload(f.Name, impl, resolver)
			if err != nil {
				*diags = append(*diags, diag.New(
					diag.NewCause(diag.YamlSchemaValidationFailed, "%s", err.Error()),
					diag.Error, op))
				continue
			}
			overloads = append(overloads, overload)
		}
		mod.Functions.DefineItem(f.Name, &types.FunctionDecl{URI: mod.URI, Name: f.Name, Overloads: overloads}, true)
	}
}

func buildOverload(name string, impl overloadDecl, resolver derivation.Resolver) (types.FunctionOverload, error) {
	args := make([]types.ArgumentPattern, len(impl.Args))
	suffix := name
	sep := ":"
	for i, a := range impl.Args {
		pat, err := derivation.CompilePattern(a.Value, resolver)
		if err != nil {
			return types.FunctionOverload{}, fmt.Errorf("argument %d pattern %q: %w", i, a.Value, err)
		}
		args[i] = types.ArgumentPattern{Name: a.Name, Pattern: pat}
		suffix += sep + typeTag(a.Value)
		sep = "_"
	}
	variadic := impl.Variadic != nil
	if variadic {
		suffix += "..."
	}
	ret, err := derivation.Compile(impl.Return, resolver)
	if err != nil {
		return types.FunctionOverload{}, fmt.Errorf("return expression %q: %w", impl.Return, err)
	}
	return types.FunctionOverload{
		CompoundName: suffix,
		Arguments:    args,
		Variadic:     variadic,
		Return:       ret,
		Options:      impl.Options,
	}, nil
}

// typeTag abbreviates a pattern source string into the short form Substrait
// uses in a compound function name, e.g. "i32" stays "i32" and "any1" stays
// "any1". Argument-type matching goes by the ArgumentPattern itself, but a
// compound function reference in a plan is matched against the compound name
// built from these tags.
func typeTag(src string) string {
	out := make([]rune, 0, len(src))
	for _, r := range src {
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func resolveBuiltinOrUserClass(name string, resolver derivation.Resolver) (types.Class, bool) {
	if c, ok := builtinClassByName(name); ok {
		return c, true
	}
	if ref, ok := resolver.ResolveClass(name); ok {
		return types.NewUserDefinedClass(ref), true
	}
	return types.Class{}, false
}
