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

	"github.com/substrait-io/substrait-validator-sub000/diag"
	"github.com/substrait-io/substrait-validator-sub000/loader"
	"github.com/substrait-io/substrait-validator-sub000/path"
	"github.com/substrait-io/substrait-validator-sub000/types"
	"github.com/substrait-io/substrait-validator-sub000/wireproto"
)

// funcAnchor is what a function-reference anchor resolves to: the
// FunctionDecl it names, plus the exact name string the plan's extension
// declaration used to reach it (simple or compound; see §4.5).
type funcAnchor struct {
	decl *types.FunctionDecl
	name string
}

// anchorTable is the per-parse extension-reference context §4.6 calls the
// context object's "extension tables indexed by anchor": URIs, and the
// type-class/variation/function declarations the rest of the plan's
// anchors point to.
type anchorTable struct {
	uris       map[uint32]string
	classes    map[uint32]types.Class
	variations map[uint32]types.Variation
	functions  map[uint32]funcAnchor
	// allowAnyURL reports whether a google.protobuf.Any type URL encountered
	// during traversal (§6.2's allow_proto_any_url) should be exempted from
	// ProtoAny. nil (as in emptyAnchors, used for leaf contexts that have no
	// Config in scope) treats every URL as disallowed.
	allowAnyURL func(string) bool
}

// buildAnchors loads every extension URI the plan references (via
// loader.Load, transitively up to cfg's configured depth) and resolves
// every SimpleExtensionDeclaration anchor against the resulting
// types.Module graph, pushing a diagnostic for every anchor that fails to
// resolve instead of aborting.
func buildAnchors(ctx context.Context, plan *wireproto.Plan, cfg Config, root path.Path, diags *[]diag.Diagnostic) *anchorTable {
	at := &anchorTable{
		uris:        make(map[uint32]string),
		classes:     make(map[uint32]types.Class),
		variations:  make(map[uint32]types.Variation),
		functions:   make(map[uint32]funcAnchor),
		allowAnyURL: cfg.allowsAnyURL,
	}

	reg := types.NewRegistry()
	fetch := cfg.chainFetcher()
	modules := make(map[string]*types.Module, len(plan.ExtensionURIs))
	for i, u := range plan.ExtensionURIs {
		at.uris[u.Anchor] = u.URI
		p := root.Child(path.Repeated("extension_uris", i))
		_, loadDiags := loader.Load(ctx, u.URI, reg, fetch, cfg.loaderCfg)
		*diags = append(*diags, loadDiags...)
		if m, ok := reg.Get(u.URI); ok {
			modules[u.URI] = m
		} else {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.LinkResolutionFailed, "extension URI %q could not be loaded", u.URI),
				diag.Error, p))
		}
	}

	for i, d := range plan.Extensions {
		p := root.Child(path.Repeated("extensions", i))
		uri, ok := at.uris[d.ExtensionURIReference]
		if !ok {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.LinkMissingAnchor, "extension declaration references undeclared URI anchor %d", d.ExtensionURIReference),
				diag.Error, p))
			continue
		}
		mod, ok := modules[uri]
		if !ok {
			continue // already diagnosed above as a load failure
		}
		switch d.Kind {
		case wireproto.ExtensionDeclType:
			resolveClassAnchor(at, mod, d, p, diags)
		case wireproto.ExtensionDeclTypeVariation:
			resolveVariationAnchor(at, mod, d, p, diags)
		case wireproto.ExtensionDeclFunction:
			resolveFunctionAnchor(at, mod, d, p, diags)
		}
	}
	return at
}

// isAnyURLAllowed reports whether typeURL is exempted from ProtoAny,
// treating a nil allowAnyURL (an anchorTable built without a Config, e.g.
// emptyAnchors in a leaf context) as "nothing is allowlisted".
func (at *anchorTable) isAnyURLAllowed(typeURL string) bool {
	return at.allowAnyURL != nil && at.allowAnyURL(typeURL)
}

func resolveClassAnchor(at *anchorTable, mod *types.Module, d *wireproto.ExtensionDecl, p path.Path, diags *[]diag.Diagnostic) {
	r := mod.Classes.ResolvePublic(d.Name)
	if len(r.Visible) == 0 {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.LinkUnresolvedReference, "no type class named %q in %s", d.Name, mod.URI),
			diag.Error, p))
		at.classes[d.Anchor] = types.UnresolvedClass()
		return
	}
	at.classes[d.Anchor] = types.NewUserDefinedClass(types.NewReference[types.ClassDecl](mod.URI, d.Name).WithDefinition(r.Visible[0].Item))
}

func resolveVariationAnchor(at *anchorTable, mod *types.Module, d *wireproto.ExtensionDecl, p path.Path, diags *[]diag.Diagnostic) {
	r := mod.Variations.ResolvePublic(d.Name)
	if len(r.Visible) == 0 {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.LinkUnresolvedReference, "no type variation named %q in %s", d.Name, mod.URI),
			diag.Error, p))
		at.variations[d.Anchor] = types.SystemPreferredVariation()
		return
	}
	at.variations[d.Anchor] = types.NewVariation(types.NewReference[types.VariationDecl](mod.URI, d.Name).WithDefinition(r.Visible[0].Item))
}

func resolveFunctionAnchor(at *anchorTable, mod *types.Module, d *wireproto.ExtensionDecl, p path.Path, diags *[]diag.Diagnostic) {
	r := mod.Functions.ResolvePublic(d.Name)
	if len(r.Visible) == 0 {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.LinkUnresolvedReference, "no function named %q in %s", d.Name, mod.URI),
			diag.Error, p))
		return
	}
	at.functions[d.Anchor] = funcAnchor{decl: r.Visible[0].Item, name: d.Name}
}
