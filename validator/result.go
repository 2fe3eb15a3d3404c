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

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/substrait-io/substrait-validator-sub000/diag"
	"github.com/substrait-io/substrait-validator-sub000/export"
	"github.com/substrait-io/substrait-validator-sub000/path"
	"github.com/substrait-io/substrait-validator-sub000/tree"
	"github.com/substrait-io/substrait-validator-sub000/wireproto"
)

// Result is the handle §6.1 calls "result-handle": the outcome of Parse,
// giving access to the annotated tree, its validity, and every export
// format without re-running the walk.
type Result struct {
	tree *tree.Tree
}

// RootTree returns the parsed plan's annotated tree.
func (r *Result) RootTree() *tree.Tree { return r.tree }

// Diagnostics returns every diagnostic collected while parsing, in
// emission order.
func (r *Result) Diagnostics() []diag.Diagnostic { return r.tree.Diagnostics }

// Check reports the plan's overall Validity (§6.1's check(result-handle)).
func (r *Result) Check() diag.Validity { return r.tree.Validity() }

// ExportProto renders the result as export_proto (§4.7).
func (r *Result) ExportProto() (*structpb.Struct, error) { return export.Proto(r.tree) }

// ExportDiagnostics renders the result as export_diagnostics (§4.7).
func (r *Result) ExportDiagnostics() []byte { return export.Diagnostics(r.tree) }

// ExportHTML renders the result as export_html (§4.7).
func (r *Result) ExportHTML() []byte { return export.HTML(r.tree) }

// Parse implements §6.1's primary entry point: decode planBytes as a
// substrait.Plan, resolve every extension reference it carries against cfg,
// and walk every relation tree to build the annotated result. Parse itself
// never returns an error for a malformed *plan* (that always becomes a
// diagnostic instead, per §7's "never fail validation outright" posture);
// it only returns one if planBytes isn't even well-formed protobuf.
func Parse(ctx context.Context, planBytes []byte, cfg Config) (*Result, error) {
	plan, err := wireproto.DecodePlan(planBytes)
	if err != nil {
		return nil, err
	}

	root := path.Root("plan")
	var diags []diag.Diagnostic

	at := buildAnchors(ctx, plan, cfg, root, &diags)

	children := make([]*tree.Node, 0, len(plan.Relations))
	for i, pr := range plan.Relations {
		p := root.Child(path.Repeated("relations", i))
		child, rootNames := buildPlanRel(pr, at, p, &diags)
		if len(rootNames) > 0 {
			child.Summary = "plan root: " + joinDotted(rootNames)
		}
		children = append(children, child)
	}
	if len(plan.Relations) == 0 {
		diags = append(diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "plan has no relations"),
			diag.Error, root))
	}

	rootNode := tree.New("plan", "plan", root)
	rootNode.Children = children

	diags = adjustLevels(diags, cfg.overrider)
	return &Result{tree: tree.NewTree(rootNode, diags)}, nil
}

func buildPlanRel(pr *wireproto.PlanRel, at *anchorTable, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, []string) {
	if pr == nil {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "plan relation is unset"),
			diag.Error, p))
		return tree.New("plan_rel", "unset", p), nil
	}
	switch {
	case pr.Root != nil:
		child, _ := buildRelation(pr.Root.Input, at, p.Child(path.Field("input")), diags)
		return child, pr.Root.Names
	case pr.Rel != nil:
		child, _ := buildRelation(pr.Rel, at, p.Child(path.Field("rel")), diags)
		return child, nil
	default:
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingOneOf, "plan relation has neither rel nor root set"),
			diag.Error, p))
		return tree.New("plan_rel", "unset", p), nil
	}
}

// adjustLevels recomputes every diagnostic's Adjusted level through o,
// applied once after the whole tree is built so the walk above never has to
// thread the overrider through every diag.New call site.
func adjustLevels(diags []diag.Diagnostic, o *diag.Overrider) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = diag.NewAdjusted(d.Cause, d.Original, d.Path, o)
	}
	return out
}
