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

package wireproto

import "testing"

func encodeLiteralExpr() []byte {
	lit := appendVarintField(nil, 15, 0)
	return appendBytesField(nil, fieldExprLiteral, lit)
}

func TestDecodeRelRead(t *testing.T) {
	i32 := encodeI32Type(false)
	structNested := appendBytesField(nil, 1, i32)
	namedStruct := appendStringField(nil, 1, "a")
	namedStruct = appendBytesField(namedStruct, 2, structNested)

	readMsg := appendBytesField(nil, 3, namedStruct)
	table := appendStringField(nil, 1, "t1")
	readMsg = appendBytesField(readMsg, 5, table)
	raw := appendBytesField(nil, fieldRelRead, readMsg)

	r, err := DecodeRel(raw)
	if err != nil {
		t.Fatalf("DecodeRel() error: %v", err)
	}
	if r.Kind != RelRead {
		t.Fatalf("Kind = %v, want RelRead", r.Kind)
	}
	if r.ReadBaseSchema == nil || len(r.ReadBaseSchema.Names) != 1 || r.ReadBaseSchema.Names[0] != "a" {
		t.Errorf("ReadBaseSchema = %+v, want Names=[a]", r.ReadBaseSchema)
	}
	if len(r.ReadNamedTable) != 1 || r.ReadNamedTable[0] != "t1" {
		t.Errorf("ReadNamedTable = %v, want [t1]", r.ReadNamedTable)
	}
}

func TestDecodeRelFilter(t *testing.T) {
	input := appendBytesField(nil, fieldRelRead, nil)
	cond := encodeLiteralExpr()

	filter := appendBytesField(nil, 2, input)
	filter = appendBytesField(filter, 3, cond)
	raw := appendBytesField(nil, fieldRelFilter, filter)

	r, err := DecodeRel(raw)
	if err != nil {
		t.Fatalf("DecodeRel() error: %v", err)
	}
	if r.Kind != RelFilter {
		t.Fatalf("Kind = %v, want RelFilter", r.Kind)
	}
	if r.Input == nil || r.Input.Kind != RelRead {
		t.Errorf("Input = %+v, want a Read relation", r.Input)
	}
	if r.FilterCondition == nil {
		t.Errorf("FilterCondition is nil, want set")
	}
}

func TestDecodeRelProject(t *testing.T) {
	input := appendBytesField(nil, fieldRelRead, nil)
	expr1 := encodeLiteralExpr()
	expr2 := encodeLiteralExpr()

	project := appendBytesField(nil, 2, input)
	project = appendBytesField(project, 3, expr1)
	project = appendBytesField(project, 3, expr2)
	raw := appendBytesField(nil, fieldRelProject, project)

	r, err := DecodeRel(raw)
	if err != nil {
		t.Fatalf("DecodeRel() error: %v", err)
	}
	if r.Kind != RelProject {
		t.Fatalf("Kind = %v, want RelProject", r.Kind)
	}
	if len(r.ProjectExpressions) != 2 {
		t.Errorf("ProjectExpressions = %d, want 2", len(r.ProjectExpressions))
	}
}

func TestDecodeRelJoin(t *testing.T) {
	left := appendBytesField(nil, fieldRelRead, nil)
	right := appendBytesField(nil, fieldRelRead, nil)
	cond := encodeLiteralExpr()

	join := appendBytesField(nil, 2, left)
	join = appendBytesField(join, 3, right)
	join = appendBytesField(join, 4, cond)
	join = appendVarintField(join, 6, 1)
	raw := appendBytesField(nil, fieldRelJoin, join)

	r, err := DecodeRel(raw)
	if err != nil {
		t.Fatalf("DecodeRel() error: %v", err)
	}
	if r.Kind != RelJoin {
		t.Fatalf("Kind = %v, want RelJoin", r.Kind)
	}
	if r.Left == nil || r.Right == nil {
		t.Errorf("Left/Right = %v/%v, want both set", r.Left, r.Right)
	}
	if r.JoinCondition == nil {
		t.Errorf("JoinCondition is nil, want set")
	}
	if r.JoinType != 1 {
		t.Errorf("JoinType = %d, want 1", r.JoinType)
	}
}

func TestDecodeRelAggregate(t *testing.T) {
	input := appendBytesField(nil, fieldRelRead, nil)
	grouping := appendBytesField(nil, 1, encodeLiteralExpr())

	measureFunc := appendVarintField(nil, 1, 9) // AggregateFunction.function_reference
	measure := appendBytesField(nil, 1, measureFunc)

	agg := appendBytesField(nil, 2, input)
	agg = appendBytesField(agg, 3, grouping)
	agg = appendBytesField(agg, 4, measure)
	raw := appendBytesField(nil, fieldRelAggregate, agg)

	r, err := DecodeRel(raw)
	if err != nil {
		t.Fatalf("DecodeRel() error: %v", err)
	}
	if r.Kind != RelAggregate {
		t.Fatalf("Kind = %v, want RelAggregate", r.Kind)
	}
	if len(r.AggregateGroupings) != 1 {
		t.Errorf("AggregateGroupings = %d, want 1", len(r.AggregateGroupings))
	}
	if len(r.AggregateMeasures) != 1 || r.AggregateMeasures[0].FunctionReference != 9 {
		t.Errorf("AggregateMeasures = %+v, want 1 measure with FunctionReference=9", r.AggregateMeasures)
	}
}

func TestDecodeRelFetch(t *testing.T) {
	input := appendBytesField(nil, fieldRelRead, nil)
	fetch := appendBytesField(nil, 2, input)
	fetch = appendVarintField(fetch, 3, 5)
	fetch = appendVarintField(fetch, 4, 10)
	raw := appendBytesField(nil, fieldRelFetch, fetch)

	r, err := DecodeRel(raw)
	if err != nil {
		t.Fatalf("DecodeRel() error: %v", err)
	}
	if r.Kind != RelFetch {
		t.Fatalf("Kind = %v, want RelFetch", r.Kind)
	}
	if r.FetchOffset != 5 || r.FetchCount != 10 {
		t.Errorf("FetchOffset/FetchCount = %d/%d, want 5/10", r.FetchOffset, r.FetchCount)
	}
}

func TestDecodeRelSort(t *testing.T) {
	input := appendBytesField(nil, fieldRelRead, nil)
	sort := appendBytesField(nil, 2, input)
	raw := appendBytesField(nil, fieldRelSort, sort)

	r, err := DecodeRel(raw)
	if err != nil {
		t.Fatalf("DecodeRel() error: %v", err)
	}
	if r.Kind != RelSort || r.Input == nil {
		t.Errorf("Kind/Input = %v/%v, want RelSort with an Input", r.Kind, r.Input)
	}
}

func TestDecodeRelSet(t *testing.T) {
	input1 := appendBytesField(nil, fieldRelRead, nil)
	input2 := appendBytesField(nil, fieldRelRead, nil)

	set := appendBytesField(nil, 2, input1)
	set = appendBytesField(set, 2, input2)
	set = appendVarintField(set, 3, 2)
	raw := appendBytesField(nil, fieldRelSet, set)

	r, err := DecodeRel(raw)
	if err != nil {
		t.Fatalf("DecodeRel() error: %v", err)
	}
	if r.Kind != RelSet {
		t.Fatalf("Kind = %v, want RelSet", r.Kind)
	}
	if len(r.Inputs) != 2 {
		t.Errorf("Inputs = %d, want 2", len(r.Inputs))
	}
	if r.SetOp != 2 {
		t.Errorf("SetOp = %d, want 2", r.SetOp)
	}
}

func TestDecodeRelCross(t *testing.T) {
	left := appendBytesField(nil, fieldRelRead, nil)
	right := appendBytesField(nil, fieldRelRead, nil)
	cross := appendBytesField(nil, 2, left)
	cross = appendBytesField(cross, 3, right)
	raw := appendBytesField(nil, fieldRelCross, cross)

	r, err := DecodeRel(raw)
	if err != nil {
		t.Fatalf("DecodeRel() error: %v", err)
	}
	if r.Kind != RelCross {
		t.Fatalf("Kind = %v, want RelCross", r.Kind)
	}
	if r.Left == nil || r.Right == nil {
		t.Errorf("Left/Right = %v/%v, want both set", r.Left, r.Right)
	}
}

func TestDecodeRelExtensionSingleWithAnyDetail(t *testing.T) {
	input := appendBytesField(nil, fieldRelRead, nil)
	any := appendStringField(nil, 1, "type.googleapis.com/my.Detail")
	any = appendBytesField(any, 2, []byte{0x01, 0x02})

	ext := appendBytesField(nil, 2, input)
	ext = appendBytesField(ext, 3, any)
	raw := appendBytesField(nil, fieldRelExtensionSingle, ext)

	r, err := DecodeRel(raw)
	if err != nil {
		t.Fatalf("DecodeRel() error: %v", err)
	}
	if r.Kind != RelExtensionSingle {
		t.Fatalf("Kind = %v, want RelExtensionSingle", r.Kind)
	}
	if r.Input == nil {
		t.Errorf("Input is nil, want set")
	}
	if r.ExtensionDetail == nil {
		t.Fatalf("ExtensionDetail is nil, want set")
	}
	if r.ExtensionDetail.TypeUrl != "type.googleapis.com/my.Detail" {
		t.Errorf("ExtensionDetail.TypeUrl = %q, want %q", r.ExtensionDetail.TypeUrl, "type.googleapis.com/my.Detail")
	}
	if len(r.ExtensionDetail.Value) != 2 {
		t.Errorf("ExtensionDetail.Value = %v, want 2 bytes", r.ExtensionDetail.Value)
	}
}

func TestDecodeRelExtensionMultiGathersInputs(t *testing.T) {
	input1 := appendBytesField(nil, fieldRelRead, nil)
	input2 := appendBytesField(nil, fieldRelRead, nil)

	ext := appendBytesField(nil, 2, input1)
	ext = appendBytesField(ext, 2, input2)
	raw := appendBytesField(nil, fieldRelExtensionMulti, ext)

	r, err := DecodeRel(raw)
	if err != nil {
		t.Fatalf("DecodeRel() error: %v", err)
	}
	if r.Kind != RelExtensionMulti {
		t.Fatalf("Kind = %v, want RelExtensionMulti", r.Kind)
	}
	if len(r.Inputs) != 2 {
		t.Errorf("Inputs = %d, want 2", len(r.Inputs))
	}
}

func TestDecodeRelExtensionLeafHasNoInput(t *testing.T) {
	any := appendStringField(nil, 1, "type.googleapis.com/my.Leaf")
	ext := appendBytesField(nil, 3, any)
	raw := appendBytesField(nil, fieldRelExtensionLeaf, ext)

	r, err := DecodeRel(raw)
	if err != nil {
		t.Fatalf("DecodeRel() error: %v", err)
	}
	if r.Kind != RelExtensionLeaf {
		t.Fatalf("Kind = %v, want RelExtensionLeaf", r.Kind)
	}
	if r.Input != nil {
		t.Errorf("Input = %v, want nil for a leaf extension relation", r.Input)
	}
	if r.ExtensionDetail == nil || r.ExtensionDetail.TypeUrl != "type.googleapis.com/my.Leaf" {
		t.Errorf("ExtensionDetail = %+v, want TypeUrl set", r.ExtensionDetail)
	}
}

func TestDecodeRelUnrecognizedVariant(t *testing.T) {
	r, err := DecodeRel(nil)
	if err != nil {
		t.Fatalf("DecodeRel(nil) error: %v", err)
	}
	if r.Kind != RelUnrecognized {
		t.Errorf("Kind = %v, want RelUnrecognized", r.Kind)
	}
}
