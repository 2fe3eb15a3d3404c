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
	"fmt"

	"github.com/substrait-io/substrait-validator-sub000/diag"
	"github.com/substrait-io/substrait-validator-sub000/path"
	"github.com/substrait-io/substrait-validator-sub000/tree"
	"github.com/substrait-io/substrait-validator-sub000/types"
	"github.com/substrait-io/substrait-validator-sub000/wireproto"
)

// buildRelation walks r and every descendant (§4.6), building the
// annotated subtree rooted at it and computing its output schema. It never
// returns a nil schema: an unrecognized or malformed relation still yields
// an empty one so its parent can keep composing without a nil check at
// every call site.
func buildRelation(r *wireproto.Rel, at *anchorTable, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, *schema) {
	if r == nil {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "relation field is unset"),
			diag.Error, p))
		return tree.New("relation", "unset", p), &schema{}
	}

	switch r.Kind {
	case wireproto.RelRead:
		return buildReadRel(r, p, diags)
	case wireproto.RelFilter:
		return buildFilterRel(r, at, p, diags)
	case wireproto.RelProject:
		return buildProjectRel(r, at, p, diags)
	case wireproto.RelJoin:
		return buildJoinRel(r, at, p, diags)
	case wireproto.RelAggregate:
		return buildAggregateRel(r, at, p, diags)
	case wireproto.RelFetch:
		return buildPassthroughRel(r, at, p, diags, "fetch")
	case wireproto.RelSort:
		return buildPassthroughRel(r, at, p, diags, "sort")
	case wireproto.RelSet:
		return buildSetRel(r, at, p, diags)
	case wireproto.RelCross:
		return buildCrossRel(r, at, p, diags)
	case wireproto.RelExtensionLeaf, wireproto.RelExtensionSingle, wireproto.RelExtensionMulti:
		return buildExtensionRel(r, at, p, diags)
	default:
		n := tree.New("relation", "unrecognized", p)
		n.Recognized = false
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingOneOf, "relation has no recognized rel_type set"),
			diag.Error, p))
		return n, &schema{}
	}
}

// flattenStruct walks wt depth-first the way substrait names nested-struct
// fields, pairing each non-struct leaf with its Type. A struct contributes
// only its elements, so an empty struct contributes nothing.
func flattenStruct(wt *wireproto.Type, at *anchorTable, p path.Path, diags *[]diag.Diagnostic, out *[]types.Type) {
	if wt == nil {
		return
	}
	if wt.Kind == wireproto.TypeStruct {
		for i, e := range wt.Elements {
			flattenStruct(e, at, p.Child(path.Repeated("types", i)), diags, out)
		}
		return
	}
	*out = append(*out, convertType(wt, at, p, diags))
}

func buildReadRel(r *wireproto.Rel, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, *schema) {
	n := tree.New("relation", "read", p)
	if r.ReadBaseSchema == nil {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "read relation has no base_schema"),
			diag.Error, p))
		return n, &schema{}
	}
	// Reads are leaves: there is no extension context yet to resolve a
	// user-defined column type against, so an empty anchorTable is correct
	// here (a column typed against an unresolved user-defined class reports
	// via convertType's own LinkMissingAnchor path).
	at := &anchorTable{classes: map[uint32]types.Class{}, variations: map[uint32]types.Variation{}}
	var flat []types.Type
	flattenStruct(r.ReadBaseSchema.Struct, at, p.Child(path.Field("base_schema")), diags, &flat)
	names := r.ReadBaseSchema.Names
	if len(names) != len(flat) {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "base_schema has %d names for %d fields", len(names), len(flat)),
			diag.Error, p))
	}
	if len(r.ReadNamedTable) > 0 {
		n.Brief = fmt.Sprintf("reads %s", joinDotted(r.ReadNamedTable))
	}
	return n, &schema{Names: names, Types: flat}
}

func joinDotted(parts []string) string {
	out := ""
	for i, s := range parts {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}

func buildFilterRel(r *wireproto.Rel, at *anchorTable, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, *schema) {
	n := tree.New("relation", "filter", p)
	inputChild, inputSchema := buildRelation(r.Input, at, p.Child(path.Field("input")), diags)
	n.AddChild(inputChild)
	if r.FilterCondition != nil {
		cond, condType := deriveExpr(r.FilterCondition, exprContext{schema: inputSchema, at: at}, p.Child(path.Field("condition")), diags)
		n.AddChild(cond)
		if condType.Class().Kind() != types.ClassUnresolved && !condType.Class().WeakEqual(types.NewSimpleClass(types.Boolean)) {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.TypeMismatchedParameters, "filter condition must be boolean, got %s", condType),
				diag.Error, p.Child(path.Field("condition"))))
		}
	} else {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "filter relation has no condition"),
			diag.Error, p))
	}
	return n, inputSchema
}

func buildProjectRel(r *wireproto.Rel, at *anchorTable, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, *schema) {
	n := tree.New("relation", "project", p)
	inputChild, inputSchema := buildRelation(r.Input, at, p.Child(path.Field("input")), diags)
	n.AddChild(inputChild)

	out := &schema{}
	for i, e := range r.ProjectExpressions {
		ep := p.Child(path.Repeated("expressions", i))
		child, t := deriveExpr(e, exprContext{schema: inputSchema, at: at}, ep, diags)
		n.AddChild(child)
		out.Names = append(out.Names, fmt.Sprintf("$%d", i))
		out.Types = append(out.Types, t)
	}
	return n, out
}

func buildJoinRel(r *wireproto.Rel, at *anchorTable, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, *schema) {
	n := tree.New("relation", "join", p)
	leftChild, leftSchema := buildRelation(r.Left, at, p.Child(path.Field("left")), diags)
	rightChild, rightSchema := buildRelation(r.Right, at, p.Child(path.Field("right")), diags)
	n.AddChild(leftChild)
	n.AddChild(rightChild)

	out := joinSchema(r.JoinType, leftSchema, rightSchema)
	if r.JoinCondition != nil {
		cond, condType := deriveExpr(r.JoinCondition, exprContext{schema: concat(leftSchema, rightSchema), at: at}, p.Child(path.Field("expression")), diags)
		n.AddChild(cond)
		if condType.Class().Kind() != types.ClassUnresolved && !condType.Class().WeakEqual(types.NewSimpleClass(types.Boolean)) {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.TypeMismatchedParameters, "join condition must be boolean, got %s", condType),
				diag.Error, p.Child(path.Field("expression"))))
		}
	}
	n.Brief = joinTypeName(r.JoinType)
	return n, out
}

func joinTypeName(jt int32) string {
	switch jt {
	case joinTypeInner:
		return "inner join"
	case joinTypeOuter:
		return "outer join"
	case joinTypeLeft:
		return "left join"
	case joinTypeRight:
		return "right join"
	case joinTypeLeftSemi:
		return "left semi join"
	case joinTypeLeftAnti:
		return "left anti join"
	case joinTypeLeftSingle:
		return "left single join"
	case joinTypeRightSingle:
		return "right single join"
	default:
		return "join"
	}
}

func buildAggregateRel(r *wireproto.Rel, at *anchorTable, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, *schema) {
	n := tree.New("relation", "aggregate", p)
	inputChild, inputSchema := buildRelation(r.Input, at, p.Child(path.Field("input")), diags)
	n.AddChild(inputChild)

	out := &schema{}
	ec := exprContext{schema: inputSchema, at: at}
	for i, g := range r.AggregateGroupings {
		gp := p.Child(path.Repeated("groupings", i))
		child, t := deriveExpr(g, ec, gp, diags)
		n.AddChild(child)
		out.Names = append(out.Names, fmt.Sprintf("group$%d", i))
		out.Types = append(out.Types, t)
	}
	for i, m := range r.AggregateMeasures {
		mp := p.Child(path.Repeated("measures", i))
		child, t := deriveScalarFunction(m, ec, mp, diags)
		n.AddChild(child)
		out.Names = append(out.Names, fmt.Sprintf("measure$%d", i))
		out.Types = append(out.Types, t)
	}
	return n, out
}

func buildPassthroughRel(r *wireproto.Rel, at *anchorTable, p path.Path, diags *[]diag.Diagnostic, class string) (*tree.Node, *schema) {
	n := tree.New("relation", class, p)
	inputChild, inputSchema := buildRelation(r.Input, at, p.Child(path.Field("input")), diags)
	n.AddChild(inputChild)
	if class == "fetch" {
		n.Brief = fmt.Sprintf("offset %d, count %d", r.FetchOffset, r.FetchCount)
	}
	return n, inputSchema
}

func buildSetRel(r *wireproto.Rel, at *anchorTable, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, *schema) {
	n := tree.New("relation", "set", p)
	var schemas []*schema
	for i, in := range r.Inputs {
		child, s := buildRelation(in, at, p.Child(path.Repeated("inputs", i)), diags)
		n.AddChild(child)
		schemas = append(schemas, s)
	}
	if len(r.Inputs) == 0 {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "set relation has no inputs"),
			diag.Error, p))
	}
	return n, setSchema(schemas)
}

func buildCrossRel(r *wireproto.Rel, at *anchorTable, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, *schema) {
	n := tree.New("relation", "cross", p)
	leftChild, leftSchema := buildRelation(r.Left, at, p.Child(path.Field("left")), diags)
	rightChild, rightSchema := buildRelation(r.Right, at, p.Child(path.Field("right")), diags)
	n.AddChild(leftChild)
	n.AddChild(rightChild)
	return n, concat(leftSchema, rightSchema)
}

func buildExtensionRel(r *wireproto.Rel, at *anchorTable, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, *schema) {
	class := map[wireproto.RelKind]string{
		wireproto.RelExtensionLeaf: "extension_leaf", wireproto.RelExtensionSingle: "extension_single",
		wireproto.RelExtensionMulti: "extension_multi",
	}[r.Kind]
	n := tree.New("relation", class, p)
	var out *schema
	if r.Input != nil {
		child, s := buildRelation(r.Input, at, p.Child(path.Field("input")), diags)
		n.AddChild(child)
		out = s
	}
	for i, in := range r.Inputs {
		child, s := buildRelation(in, at, p.Child(path.Repeated("inputs", i)), diags)
		n.AddChild(child)
		out = s
	}
	if out == nil {
		out = &schema{}
	}
	if r.ExtensionDetail == nil {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "%s relation has no detail", class),
			diag.Warning, p))
	} else {
		n.Summary = fmt.Sprintf("opaque extension detail: %s", r.ExtensionDetail.TypeUrl)
		if !at.isAnyURLAllowed(r.ExtensionDetail.TypeUrl) {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.ProtoAny, "unrecognized extension detail of type %q", r.ExtensionDetail.TypeUrl),
				diag.Warning, p))
		}
	}
	return n, out
}
