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

	"github.com/goccy/go-yaml"
	"github.com/golang/glog"

	"github.com/substrait-io/substrait-validator-sub000/diag"
	"github.com/substrait-io/substrait-validator-sub000/path"
	"github.com/substrait-io/substrait-validator-sub000/types"
)

// Load fetches uri (and, transitively, every URI it names as a dependency,
// up to cfg.MaxDepth) through fetch, parses each as an extension YAML
// document, and populates reg with the resulting types.Module graph. It
// returns the root module and every diagnostic accumulated along the way;
// a fetch or parse failure for a *dependency* degrades to a placeholder
// module plus a diagnostic rather than aborting the whole load, the same
// partial-failure posture ytypes takes toward a single malformed YANG
// augment.
func Load(ctx context.Context, uri string, reg *types.Registry, fetch Fetcher, cfg Config) (*types.Module, []diag.Diagnostic) {
	var diags []diag.Diagnostic
	seen := make(map[string]bool)
	mod := loadRecursive(ctx, uri, reg, fetch, cfg, 0, seen, &diags)
	return mod, diags
}

func loadRecursive(ctx context.Context, uri string, reg *types.Registry, fetch Fetcher, cfg Config, depth int, seen map[string]bool, diags *[]diag.Diagnostic) *types.Module {
	resolvedURI, skip := cfg.resolveURI(uri)
	if m, ok := reg.Get(resolvedURI); ok {
		return m
	}
	mod := reg.Ensure(resolvedURI)
	root := path.Root(resolvedURI)

	if skip {
		glog.V(1).Infof("loader: skipping %s per override rule", uri)
		return mod
	}
	if seen[resolvedURI] {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.LinkResolutionFailed, "dependency cycle detected at %s", resolvedURI),
			diag.Error, root))
		return mod
	}
	if depth > cfg.MaxDepth {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.LinkDepthExceeded, "dependency depth exceeded fetching %s", resolvedURI),
			diag.Warning, root))
		return mod
	}
	seen[resolvedURI] = true

	raw, err := fetch.Fetch(ctx, resolvedURI)
	if err != nil {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.LinkResolutionFailed, "fetching %s: %v", resolvedURI, err),
			diag.Error, root))
		return mod
	}

	doc, parseDiags := parseDocument(resolvedURI, raw)
	*diags = append(*diags, parseDiags...)
	if doc == nil {
		return mod
	}

	deps := make([]*types.Module, 0, len(doc.Dependencies))
	for _, d := range doc.Dependencies {
		if d.URI == "" {
			continue
		}
		deps = append(deps, loadRecursive(ctx, d.URI, reg, fetch, cfg, depth+1, seen, diags))
	}

	buildModule(mod, doc, deps, diags)
	return mod
}

// parseDocument unmarshals raw YAML into both the typed document struct
// (used to build the Module) and a generic value (used for schema
// validation, which can't assume the document is even shaped like
// `document` - that's exactly what it's checking).
func parseDocument(uri string, raw []byte) (*document, []diag.Diagnostic) {
	root := path.Root(uri)

	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, []diag.Diagnostic{diag.New(
			diag.NewCause(diag.YamlParseFailed, "%v", err), diag.Error, root)}
	}

	var diags []diag.Diagnostic
	if err := validateAgainstSchema(context.Background(), generic); err != nil {
		diags = append(diags, diag.New(
			diag.NewCause(diag.YamlSchemaValidationFailed, "%v", err), diag.Warning, root))
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		diags = append(diags, diag.New(
			diag.NewCause(diag.YamlParseFailed, "%v", err), diag.Error, root))
		return nil, diags
	}
	return &doc, diags
}
