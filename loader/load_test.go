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
	"context"
	"fmt"
	"testing"

	"github.com/substrait-io/substrait-validator-sub000/diag"
	"github.com/substrait-io/substrait-validator-sub000/types"
)

func fetcherFromMap(docs map[string]string) Fetcher {
	return FetcherFunc(func(_ context.Context, uri string) ([]byte, error) {
		doc, ok := docs[uri]
		if !ok {
			return nil, fmt.Errorf("no document registered for %s", uri)
		}
		return []byte(doc), nil
	})
}

func hasClassification(diags []diag.Diagnostic, c diag.Classification) bool {
	for _, d := range diags {
		if d.Cause.Classification == c {
			return true
		}
	}
	return false
}

func TestLoadSingleDocumentNoDependencies(t *testing.T) {
	yamlDoc := `
types:
  - name: point
scalar_functions:
  - name: add
    impls:
      - args:
          - name: x
            value: i32
          - name: y
            value: i32
        return: i32
`
	reg := types.NewRegistry()
	fetch := fetcherFromMap(map[string]string{"urn:a": yamlDoc})
	mod, diags := Load(context.Background(), "urn:a", reg, fetch, Config{MaxDepth: 5})

	if len(diags) != 0 {
		t.Fatalf("Load() diags = %v, want none", diags)
	}
	if mod.URI != "urn:a" {
		t.Errorf("mod.URI = %q, want urn:a", mod.URI)
	}
	if r := mod.Classes.ResolvePublic("point"); len(r.Visible) != 1 {
		t.Errorf("Classes.ResolvePublic(\"point\") = %v, want 1 visible", r.Visible)
	}
	r := mod.Functions.ResolvePublic("add")
	if len(r.Visible) != 1 {
		t.Fatalf("Functions.ResolvePublic(\"add\") = %v, want 1 visible", r.Visible)
	}
	if len(r.Visible[0].Item.Overloads) != 1 {
		t.Errorf("add overloads = %d, want 1", len(r.Visible[0].Item.Overloads))
	}
	if len(r.Visible[0].Item.Overloads[0].Arguments) != 2 {
		t.Errorf("add overload arguments = %d, want 2", len(r.Visible[0].Item.Overloads[0].Arguments))
	}
}

func TestLoadWithDependencyResolvesVariationBase(t *testing.T) {
	depYAML := `
types:
  - name: base
`
	mainYAML := `
dependencies:
  - import: urn:dep
type_variations:
  - name: upper
    base: base
    functions: MIRRORS
`
	reg := types.NewRegistry()
	fetch := fetcherFromMap(map[string]string{"urn:a": mainYAML, "urn:dep": depYAML})
	mod, diags := Load(context.Background(), "urn:a", reg, fetch, Config{MaxDepth: 5})

	if len(diags) != 0 {
		t.Fatalf("Load() diags = %v, want none", diags)
	}
	if len(mod.Dependencies) != 1 || mod.Dependencies[0] != "urn:dep" {
		t.Errorf("Dependencies = %v, want [urn:dep]", mod.Dependencies)
	}
	if _, ok := reg.Get("urn:dep"); !ok {
		t.Errorf("urn:dep was not registered by the transitive load")
	}
	r := mod.Variations.ResolvePublic("upper")
	if len(r.Visible) != 1 {
		t.Fatalf("Variations.ResolvePublic(\"upper\") = %v, want 1 visible", r.Visible)
	}
	if r.Visible[0].Item.Base.Kind() != types.ClassUserDefined {
		t.Errorf("variation base Kind() = %v, want ClassUserDefined (resolved against urn:dep)", r.Visible[0].Item.Base.Kind())
	}
}

func TestLoadMissingDependencyURIReportsBothDiagnostics(t *testing.T) {
	mainYAML := `
dependencies:
  - name: unnamed
`
	reg := types.NewRegistry()
	fetch := fetcherFromMap(map[string]string{"urn:a": mainYAML})
	mod, diags := Load(context.Background(), "urn:a", reg, fetch, Config{MaxDepth: 5})

	if len(mod.Dependencies) != 0 {
		t.Errorf("Dependencies = %v, want none (the only entry has no import URI)", mod.Dependencies)
	}
	if !hasClassification(diags, diag.YamlMissingField) {
		t.Errorf("diags = %v, want a YamlMissingField entry", diags)
	}
	if !hasClassification(diags, diag.YamlSchemaValidationFailed) {
		t.Errorf("diags = %v, want a YamlSchemaValidationFailed entry (schema requires \"import\")", diags)
	}
}

func TestLoadOverrideSkipNeverFetches(t *testing.T) {
	reg := types.NewRegistry()
	fetch := FetcherFunc(func(context.Context, string) ([]byte, error) {
		t.Fatalf("Fetch should not be called for a Skip override")
		return nil, nil
	})
	cfg := Config{MaxDepth: 5, Overrides: []Override{{Pattern: "urn:skip:*", Skip: true}}}
	mod, diags := Load(context.Background(), "urn:skip:dep", reg, fetch, cfg)

	if len(diags) != 0 {
		t.Fatalf("Load() diags = %v, want none", diags)
	}
	if mod.URI != "urn:skip:dep" {
		t.Errorf("mod.URI = %q, want urn:skip:dep", mod.URI)
	}
}

func TestLoadOverrideReplacementRedirectsFetch(t *testing.T) {
	yamlDoc := `
types:
  - name: point
`
	reg := types.NewRegistry()
	fetch := fetcherFromMap(map[string]string{"urn:pinned": yamlDoc})
	cfg := Config{MaxDepth: 5, Overrides: []Override{{Pattern: "urn:original", Replacement: "urn:pinned"}}}
	mod, diags := Load(context.Background(), "urn:original", reg, fetch, cfg)

	if len(diags) != 0 {
		t.Fatalf("Load() diags = %v, want none", diags)
	}
	if mod.URI != "urn:pinned" {
		t.Errorf("mod.URI = %q, want urn:pinned (the replacement)", mod.URI)
	}
	if r := mod.Classes.ResolvePublic("point"); len(r.Visible) != 1 {
		t.Errorf("Classes.ResolvePublic(\"point\") = %v, want 1 visible", r.Visible)
	}
}

func TestLoadDependencyCycleTerminatesWithoutDiagnostic(t *testing.T) {
	// urn:a and urn:b depend on each other. By the time urn:b's own
	// dependency traversal reaches back to urn:a, urn:a is already present
	// in the registry (Ensure runs before the fetch), so the recursion
	// bottoms out there instead of looping.
	aYAML := `
dependencies:
  - import: urn:b
`
	bYAML := `
dependencies:
  - import: urn:a
`
	reg := types.NewRegistry()
	fetch := fetcherFromMap(map[string]string{"urn:a": aYAML, "urn:b": bYAML})
	mod, diags := Load(context.Background(), "urn:a", reg, fetch, Config{MaxDepth: 10})

	if len(diags) != 0 {
		t.Fatalf("Load() diags = %v, want none", diags)
	}
	if len(mod.Dependencies) != 1 || mod.Dependencies[0] != "urn:b" {
		t.Errorf("Dependencies = %v, want [urn:b]", mod.Dependencies)
	}
	depB, ok := reg.Get("urn:b")
	if !ok {
		t.Fatalf("urn:b was never registered")
	}
	if len(depB.Dependencies) != 1 || depB.Dependencies[0] != "urn:a" {
		t.Errorf("urn:b's Dependencies = %v, want [urn:a]", depB.Dependencies)
	}
}

func TestLoadDepthExceededStopsDescent(t *testing.T) {
	aYAML := `
dependencies:
  - import: urn:b
`
	bYAML := `
types:
  - name: unreachable
`
	reg := types.NewRegistry()
	fetch := fetcherFromMap(map[string]string{"urn:a": aYAML, "urn:b": bYAML})
	_, diags := Load(context.Background(), "urn:a", reg, fetch, Config{MaxDepth: 0})

	if !hasClassification(diags, diag.LinkDepthExceeded) {
		t.Fatalf("diags = %v, want a LinkDepthExceeded entry", diags)
	}
	if mod, ok := reg.Get("urn:b"); !ok || len(mod.Classes.ResolvePublic("unreachable").Visible) != 0 {
		t.Errorf("urn:b should be a placeholder module, never actually fetched past the depth limit")
	}
}

func TestLoadFetchErrorReportsDiagnosticAndPlaceholderModule(t *testing.T) {
	reg := types.NewRegistry()
	fetch := FetcherFunc(func(context.Context, string) ([]byte, error) {
		return nil, fmt.Errorf("connection refused")
	})
	mod, diags := Load(context.Background(), "urn:unreachable", reg, fetch, Config{MaxDepth: 5})

	if !hasClassification(diags, diag.LinkResolutionFailed) {
		t.Fatalf("diags = %v, want a LinkResolutionFailed entry", diags)
	}
	if mod.URI != "urn:unreachable" {
		t.Errorf("mod.URI = %q, want urn:unreachable (still registered as a placeholder)", mod.URI)
	}
}

func TestLoadMalformedYAMLReportsParseFailure(t *testing.T) {
	reg := types.NewRegistry()
	fetch := fetcherFromMap(map[string]string{"urn:a": "{{{not yaml"})
	_, diags := Load(context.Background(), "urn:a", reg, fetch, Config{MaxDepth: 5})

	if !hasClassification(diags, diag.YamlParseFailed) {
		t.Fatalf("diags = %v, want a YamlParseFailed entry", diags)
	}
}

func TestLoadReusesAlreadyRegisteredModule(t *testing.T) {
	yamlDoc := `
types:
  - name: point
`
	reg := types.NewRegistry()
	fetch := fetcherFromMap(map[string]string{"urn:a": yamlDoc})
	first, _ := Load(context.Background(), "urn:a", reg, fetch, Config{MaxDepth: 5})
	second, diags := Load(context.Background(), "urn:a", reg, fetch, Config{MaxDepth: 5})

	if first != second {
		t.Errorf("Load() twice with the same URI returned different Modules")
	}
	if len(diags) != 0 {
		t.Errorf("second Load() diags = %v, want none", diags)
	}
}
