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

// Package export implements the three output formats §4.7 names:
// export_proto (a protobuf-native mirror of the annotated tree),
// export_diagnostics (a flattened textual diagnostic list) and export_html
// (a navigable HTML document). None of the three re-derives anything: they
// only walk the tree.Tree the validator already built.
package export

import (
	"sort"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/substrait-io/substrait-validator-sub000/tree"
)

// Proto mirrors t as a structpb.Struct: §4.7 calls for "a protobuf message
// mirroring the annotated tree exactly", and structpb's generic
// Struct/Value/ListValue types are the proto-native generic-value shape
// used here instead of a bespoke generated message, since no .proto
// compiler is available to generate a dedicated ParseResult type (see
// wireproto's package doc for the same constraint on the input side).
// Each node becomes a nested Struct a consumer can walk the same way the
// in-memory tree is walked; the data type and the diagnostics are stored as
// their rendered strings.
func Proto(t *tree.Tree) (*structpb.Struct, error) {
	root, err := nodeToStruct(t.Root)
	if err != nil {
		return nil, err
	}
	diags := make([]interface{}, len(t.Diagnostics))
	for i, d := range t.Diagnostics {
		diags[i] = d.String()
	}
	return structpb.NewStruct(map[string]interface{}{
		"root":       root.AsMap(),
		"validity":   t.Validity().String(),
		"diagnostic": diags,
	})
}

func nodeToStruct(n *tree.Node) (*structpb.Struct, error) {
	if n == nil {
		return structpb.NewStruct(nil)
	}
	fields := map[string]interface{}{
		"kind":       string(n.Kind),
		"class":      n.Class,
		"path":       n.Path.String(),
		"recognized": n.Recognized,
	}
	if n.Brief != "" {
		fields["brief"] = n.Brief
	}
	if n.Summary != "" {
		fields["summary"] = n.Summary
	}
	if n.DataType != nil {
		fields["type"] = n.DataType.String()
	}
	children := make([]interface{}, 0, len(n.Children))
	for _, c := range n.Children {
		cs, err := nodeToStruct(c)
		if err != nil {
			return nil, err
		}
		children = append(children, cs.AsMap())
	}
	if len(children) > 0 {
		fields["children"] = children
	}
	return structpb.NewStruct(fields)
}

// sortedPaths is a small helper shared with export_html for deterministic
// per-path diagnostic grouping (§8's determinism property extends to
// export output, not just the in-memory tree).
func sortedPaths(byPath map[string]int) []string {
	out := make([]string, 0, len(byPath))
	for p := range byPath {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
