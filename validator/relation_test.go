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

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/types/known/anypb"

	"github.com/substrait-io/substrait-validator-sub000/diag"
	"github.com/substrait-io/substrait-validator-sub000/path"
	"github.com/substrait-io/substrait-validator-sub000/wireproto"
)

func namedTableRead(names []string, elements ...*wireproto.Type) *wireproto.Rel {
	return &wireproto.Rel{
		Kind:           wireproto.RelRead,
		ReadNamedTable: []string{"my_table"},
		ReadBaseSchema: &wireproto.NamedStruct{
			Names:  names,
			Struct: &wireproto.Type{Kind: wireproto.TypeStruct, Elements: elements},
		},
	}
}

func simpleWireType(k wireproto.SimpleKind) *wireproto.Type {
	return &wireproto.Type{Kind: wireproto.TypeSimple, Simple: k, Nullability: wireproto.NullabilityRequired}
}

func TestBuildReadRel(t *testing.T) {
	r := namedTableRead([]string{"a", "b"}, simpleWireType(wireproto.SimpleI32), simpleWireType(wireproto.SimpleString))
	var diags []diag.Diagnostic

	node, s := buildRelation(r, emptyAnchors(), path.Root("plan"), &diags)

	if len(diags) != 0 {
		t.Fatalf("buildRelation() produced unexpected diagnostics: %v", diags)
	}
	if diff := cmp.Diff([]string{"a", "b"}, s.Names); diff != "" {
		t.Errorf("schema Names mismatch (-want +got):\n%s", diff)
	}
	if node.Kind != "relation" || node.Class != "read" {
		t.Errorf("node = {Kind:%q Class:%q}, want {relation read}", node.Kind, node.Class)
	}
}

func TestBuildReadRelMissingSchema(t *testing.T) {
	r := &wireproto.Rel{Kind: wireproto.RelRead}
	var diags []diag.Diagnostic

	_, s := buildRelation(r, emptyAnchors(), path.Root("plan"), &diags)

	if len(diags) != 1 || diags[0].Cause.Classification != diag.ProtoMissingField {
		t.Fatalf("diags = %v, want a single ProtoMissingField diagnostic", diags)
	}
	if len(s.Names) != 0 {
		t.Errorf("schema = %+v, want empty", s)
	}
}

func TestBuildFilterRelRejectsNonBooleanCondition(t *testing.T) {
	read := namedTableRead([]string{"a"}, simpleWireType(wireproto.SimpleI32))
	filter := &wireproto.Rel{
		Kind:  wireproto.RelFilter,
		Input: read,
		FilterCondition: &wireproto.Expr{
			Kind:    wireproto.ExprFieldReference,
			FieldReference: &wireproto.FieldReference{StructFieldIndices: []int32{0}},
		},
	}
	var diags []diag.Diagnostic

	_, s := buildRelation(filter, emptyAnchors(), path.Root("plan"), &diags)

	if len(diags) != 1 || diags[0].Cause.Classification != diag.TypeMismatchedParameters {
		t.Fatalf("diags = %v, want a single TypeMismatchedParameters diagnostic", diags)
	}
	if diff := cmp.Diff([]string{"a"}, s.Names); diff != "" {
		t.Errorf("filter passes through its input schema unchanged (-want +got):\n%s", diff)
	}
}

func TestBuildProjectRelNamesOutputFields(t *testing.T) {
	read := namedTableRead([]string{"a"}, simpleWireType(wireproto.SimpleI32))
	project := &wireproto.Rel{
		Kind:  wireproto.RelProject,
		Input: read,
		ProjectExpressions: []*wireproto.Expr{
			{Kind: wireproto.ExprFieldReference, FieldReference: &wireproto.FieldReference{StructFieldIndices: []int32{0}}},
			{Kind: wireproto.ExprLiteral, Literal: &wireproto.Literal{FieldSet: 5}},
		},
	}
	var diags []diag.Diagnostic

	_, s := buildRelation(project, emptyAnchors(), path.Root("plan"), &diags)

	if diff := cmp.Diff([]string{"$0", "$1"}, s.Names); diff != "" {
		t.Errorf("project output names mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildJoinRelSchemaComposition(t *testing.T) {
	left := namedTableRead([]string{"l0"}, simpleWireType(wireproto.SimpleI32))
	right := namedTableRead([]string{"r0"}, simpleWireType(wireproto.SimpleString))
	join := &wireproto.Rel{Kind: wireproto.RelJoin, Left: left, Right: right, JoinType: joinTypeLeft}
	var diags []diag.Diagnostic

	node, s := buildRelation(join, emptyAnchors(), path.Root("plan"), &diags)

	if diff := cmp.Diff([]string{"l0", "r0"}, s.Names); diff != "" {
		t.Errorf("join schema names mismatch (-want +got):\n%s", diff)
	}
	if !s.Types[1].Nullable() {
		t.Errorf("right side of a left join should be widened to nullable")
	}
	if node.Brief != "left join" {
		t.Errorf("node.Brief = %q, want %q", node.Brief, "left join")
	}
}

func TestBuildSetRelRequiresInputs(t *testing.T) {
	r := &wireproto.Rel{Kind: wireproto.RelSet}
	var diags []diag.Diagnostic

	buildRelation(r, emptyAnchors(), path.Root("plan"), &diags)

	if len(diags) != 1 || diags[0].Cause.Classification != diag.ProtoMissingField {
		t.Fatalf("diags = %v, want a single ProtoMissingField diagnostic", diags)
	}
}

func TestBuildExtensionRelWithoutDetailWarns(t *testing.T) {
	r := &wireproto.Rel{Kind: wireproto.RelExtensionLeaf}
	var diags []diag.Diagnostic

	node, _ := buildRelation(r, emptyAnchors(), path.Root("plan"), &diags)

	if len(diags) != 1 || diags[0].Cause.Classification != diag.ProtoMissingField || diags[0].Original != diag.Warning {
		t.Fatalf("diags = %v, want a single ProtoMissingField warning", diags)
	}
	if node.Class != "extension_leaf" {
		t.Errorf("node.Class = %q, want %q", node.Class, "extension_leaf")
	}
}

func TestBuildExtensionRelWithDetailWarnsUnlessAllowlisted(t *testing.T) {
	r := &wireproto.Rel{Kind: wireproto.RelExtensionLeaf, ExtensionDetail: &anypb.Any{TypeUrl: "type.googleapis.com/my.Custom"}}

	t.Run("not allowlisted", func(t *testing.T) {
		var diags []diag.Diagnostic
		buildRelation(r, emptyAnchors(), path.Root("plan"), &diags)
		if len(diags) != 1 || diags[0].Cause.Classification != diag.ProtoAny {
			t.Fatalf("diags = %v, want a single ProtoAny warning", diags)
		}
	})

	t.Run("allowlisted", func(t *testing.T) {
		at := emptyAnchors()
		at.allowAnyURL = func(url string) bool { return url == "type.googleapis.com/my.Custom" }
		var diags []diag.Diagnostic
		node, _ := buildRelation(r, at, path.Root("plan"), &diags)
		if len(diags) != 0 {
			t.Fatalf("diags = %v, want none (type URL is allowlisted)", diags)
		}
		if node.Summary == "" {
			t.Errorf("node.Summary is empty, want the opaque-detail summary to still be recorded")
		}
	})
}

func TestBuildRelationNil(t *testing.T) {
	var diags []diag.Diagnostic
	node, s := buildRelation(nil, emptyAnchors(), path.Root("plan"), &diags)

	if len(diags) != 1 || diags[0].Cause.Classification != diag.ProtoMissingField {
		t.Fatalf("diags = %v, want a single ProtoMissingField diagnostic", diags)
	}
	if len(s.Names) != 0 {
		t.Errorf("schema = %+v, want empty", s)
	}
}
