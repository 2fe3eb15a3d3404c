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
	"context"
	"fmt"
	"testing"

	"github.com/substrait-io/substrait-validator-sub000/diag"
	"github.com/substrait-io/substrait-validator-sub000/loader"
	"github.com/substrait-io/substrait-validator-sub000/path"
	"github.com/substrait-io/substrait-validator-sub000/types"
	"github.com/substrait-io/substrait-validator-sub000/wireproto"
)

func fetcherFromDocs(docs map[string]string) loader.Fetcher {
	return loader.FetcherFunc(func(_ context.Context, uri string) ([]byte, error) {
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

func planWithExtensions(uris []*wireproto.ExtensionURI, decls []*wireproto.ExtensionDecl) *wireproto.Plan {
	return &wireproto.Plan{ExtensionURIs: uris, Extensions: decls}
}

func TestBuildAnchorsResolvesClassVariationAndFunction(t *testing.T) {
	doc := `
types:
  - name: point
type_variations:
  - name: upper
    base: point
    functions: MIRRORS
scalar_functions:
  - name: add
    impls:
      - args:
          - name: x
            value: i32
        return: i32
`
	cfg := NewConfig(URIResolver(fetcherFromDocs(map[string]string{"urn:ext": doc})))
	plan := planWithExtensions(
		[]*wireproto.ExtensionURI{{Anchor: 1, URI: "urn:ext"}},
		[]*wireproto.ExtensionDecl{
			{Kind: wireproto.ExtensionDeclType, ExtensionURIReference: 1, Anchor: 10, Name: "point"},
			{Kind: wireproto.ExtensionDeclTypeVariation, ExtensionURIReference: 1, Anchor: 20, Name: "upper"},
			{Kind: wireproto.ExtensionDeclFunction, ExtensionURIReference: 1, Anchor: 30, Name: "add"},
		},
	)
	var diags []diag.Diagnostic

	at := buildAnchors(context.Background(), plan, cfg, path.Root("plan"), &diags)

	if len(diags) != 0 {
		t.Fatalf("buildAnchors() produced unexpected diagnostics: %v", diags)
	}
	if at.uris[1] != "urn:ext" {
		t.Errorf("uris[1] = %q, want urn:ext", at.uris[1])
	}
	cls, ok := at.classes[10]
	if !ok || cls.Kind() != types.ClassUserDefined {
		t.Errorf("classes[10] = %v, ok=%v, want a resolved user-defined class", cls, ok)
	}
	v, ok := at.variations[20]
	if !ok || v.IsSystemPreferred() {
		t.Errorf("variations[20] = %v, ok=%v, want a resolved variation", v, ok)
	}
	fa, ok := at.functions[30]
	if !ok || fa.name != "add" || fa.decl == nil {
		t.Errorf("functions[30] = %+v, ok=%v, want a resolved add decl", fa, ok)
	}
}

func TestBuildAnchorsReportsLoadFailure(t *testing.T) {
	cfg := NewConfig(URIResolver(fetcherFromDocs(nil)))
	plan := planWithExtensions([]*wireproto.ExtensionURI{{Anchor: 1, URI: "urn:missing"}}, nil)
	var diags []diag.Diagnostic

	at := buildAnchors(context.Background(), plan, cfg, path.Root("plan"), &diags)

	if !hasClassification(diags, diag.LinkResolutionFailed) {
		t.Fatalf("diags = %v, want a LinkResolutionFailed entry", diags)
	}
	if len(at.uris) != 1 || at.uris[1] != "urn:missing" {
		t.Errorf("uris = %v, want {1: urn:missing} recorded regardless of load failure", at.uris)
	}
}

func TestBuildAnchorsReportsMissingURIAnchor(t *testing.T) {
	cfg := NewConfig()
	plan := planWithExtensions(nil, []*wireproto.ExtensionDecl{
		{Kind: wireproto.ExtensionDeclFunction, ExtensionURIReference: 99, Anchor: 1, Name: "add"},
	})
	var diags []diag.Diagnostic

	buildAnchors(context.Background(), plan, cfg, path.Root("plan"), &diags)

	if !hasClassification(diags, diag.LinkMissingAnchor) {
		t.Fatalf("diags = %v, want a LinkMissingAnchor entry", diags)
	}
}

func TestBuildAnchorsReportsUnresolvedReferences(t *testing.T) {
	doc := `
types:
  - name: point
`
	cfg := NewConfig(URIResolver(fetcherFromDocs(map[string]string{"urn:ext": doc})))
	plan := planWithExtensions(
		[]*wireproto.ExtensionURI{{Anchor: 1, URI: "urn:ext"}},
		[]*wireproto.ExtensionDecl{
			{Kind: wireproto.ExtensionDeclType, ExtensionURIReference: 1, Anchor: 10, Name: "not_a_class"},
			{Kind: wireproto.ExtensionDeclTypeVariation, ExtensionURIReference: 1, Anchor: 20, Name: "not_a_variation"},
			{Kind: wireproto.ExtensionDeclFunction, ExtensionURIReference: 1, Anchor: 30, Name: "not_a_function"},
		},
	)
	var diags []diag.Diagnostic

	at := buildAnchors(context.Background(), plan, cfg, path.Root("plan"), &diags)

	count := 0
	for _, d := range diags {
		if d.Cause.Classification == diag.LinkUnresolvedReference {
			count++
		}
	}
	if count != 3 {
		t.Fatalf("diags = %v, want 3 LinkUnresolvedReference entries", diags)
	}
	if cls, ok := at.classes[10]; !ok || cls.Kind() != types.ClassUnresolved {
		t.Errorf("classes[10] = %v, ok=%v, want the UnresolvedClass sentinel", cls, ok)
	}
	if v, ok := at.variations[20]; !ok || !v.IsSystemPreferred() {
		t.Errorf("variations[20] = %v, ok=%v, want the SystemPreferredVariation sentinel", v, ok)
	}
	if _, ok := at.functions[30]; ok {
		t.Errorf("functions[30] present, want absent (no sentinel for an unresolved function anchor)")
	}
}

func TestIsAnyURLAllowed(t *testing.T) {
	nilAllow := &anchorTable{}
	if nilAllow.isAnyURLAllowed("type.googleapis.com/my.Custom") {
		t.Errorf("isAnyURLAllowed() with a nil allowAnyURL = true, want false")
	}

	cfg := NewConfig(AllowProtoAnyURL("type.googleapis.com/my.*"))
	var diags []diag.Diagnostic
	at := buildAnchors(context.Background(), &wireproto.Plan{}, cfg, path.Root("plan"), &diags)
	if !at.isAnyURLAllowed("type.googleapis.com/my.Custom") {
		t.Errorf("isAnyURLAllowed() with a matching allowlist glob = false, want true")
	}
	if at.isAnyURLAllowed("type.googleapis.com/other.Custom") {
		t.Errorf("isAnyURLAllowed() with a non-matching URL = true, want false")
	}
}
