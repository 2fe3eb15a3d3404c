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

	"github.com/substrait-io/substrait-validator-sub000/types"
)

func simpleSchema(names []string, simples []types.SimpleClass, nullable bool) *schema {
	s := &schema{Names: append([]string(nil), names...), Types: make([]types.Type, len(simples))}
	for i, sc := range simples {
		s.Types[i] = types.NewSimple(sc, nullable)
	}
	return s
}

var typeCmpOpts = cmp.AllowUnexported(types.Type{})

func TestConcat(t *testing.T) {
	left := simpleSchema([]string{"a"}, []types.SimpleClass{types.I32}, false)
	right := simpleSchema([]string{"b", "c"}, []types.SimpleClass{types.StringClass, types.Boolean}, false)

	got := concat(left, right)
	want := simpleSchema([]string{"a", "b", "c"}, []types.SimpleClass{types.I32, types.StringClass, types.Boolean}, false)

	if diff := cmp.Diff(want, got, typeCmpOpts); diff != "" {
		t.Errorf("concat() mismatch (-want +got):\n%s", diff)
	}
}

func TestWidenNullable(t *testing.T) {
	s := simpleSchema([]string{"a", "b"}, []types.SimpleClass{types.I32, types.StringClass}, false)
	got := widenNullable(s)

	for i, ty := range got.Types {
		if !ty.Nullable() {
			t.Errorf("widenNullable() field %d (%s) not nullable", i, got.Names[i])
		}
	}
	if s.Types[0].Nullable() {
		t.Errorf("widenNullable() mutated its input in place")
	}
}

func TestJoinSchema(t *testing.T) {
	left := simpleSchema([]string{"l0"}, []types.SimpleClass{types.I32}, false)
	right := simpleSchema([]string{"r0"}, []types.SimpleClass{types.StringClass}, false)

	tests := []struct {
		desc      string
		joinType  int32
		wantNames []string
		wantNullable []bool // parallel to wantNames
	}{
		{
			desc:      "inner keeps both sides non-nullable",
			joinType:  joinTypeInner,
			wantNames: []string{"l0", "r0"},
			wantNullable: []bool{false, false},
		},
		{
			desc:      "left semi drops the right side",
			joinType:  joinTypeLeftSemi,
			wantNames: []string{"l0"},
			wantNullable: []bool{false},
		},
		{
			desc:      "left anti drops the right side",
			joinType:  joinTypeLeftAnti,
			wantNames: []string{"l0"},
			wantNullable: []bool{false},
		},
		{
			desc:      "left join widens the right side",
			joinType:  joinTypeLeft,
			wantNames: []string{"l0", "r0"},
			wantNullable: []bool{false, true},
		},
		{
			desc:      "right join widens the left side",
			joinType:  joinTypeRight,
			wantNames: []string{"l0", "r0"},
			wantNullable: []bool{true, false},
		},
		{
			desc:      "outer join widens both sides",
			joinType:  joinTypeOuter,
			wantNames: []string{"l0", "r0"},
			wantNullable: []bool{true, true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := joinSchema(tt.joinType, left, right)
			if diff := cmp.Diff(tt.wantNames, got.Names); diff != "" {
				t.Errorf("%s: Names mismatch (-want +got):\n%s", tt.desc, diff)
			}
			if len(got.Types) != len(tt.wantNullable) {
				t.Fatalf("%s: got %d fields, want %d", tt.desc, len(got.Types), len(tt.wantNullable))
			}
			for i, want := range tt.wantNullable {
				if got.Types[i].Nullable() != want {
					t.Errorf("%s: field %d (%s) Nullable() = %v, want %v", tt.desc, i, got.Names[i], got.Types[i].Nullable(), want)
				}
			}
		})
	}
}

func TestSetSchemaTakesFirstInput(t *testing.T) {
	first := simpleSchema([]string{"a"}, []types.SimpleClass{types.I32}, false)
	second := simpleSchema([]string{"b"}, []types.SimpleClass{types.StringClass}, false)

	got := setSchema([]*schema{first, second})
	if got != first {
		t.Errorf("setSchema() did not return the first input's schema by identity")
	}

	if got := setSchema(nil); len(got.Names) != 0 {
		t.Errorf("setSchema(nil) = %+v, want empty schema", got)
	}
}

func TestSchemaField(t *testing.T) {
	s := simpleSchema([]string{"a", "b"}, []types.SimpleClass{types.I32, types.StringClass}, false)

	if ty, ok := s.field(1); !ok || !ty.Class().Equal(types.NewSimpleClass(types.StringClass)) {
		t.Errorf("field(1) = (%v, %v), want the string-class type", ty, ok)
	}
	if _, ok := s.field(-1); ok {
		t.Errorf("field(-1) reported ok, want not found")
	}
	if _, ok := s.field(len(s.Types)); ok {
		t.Errorf("field(len) reported ok, want out-of-range not found")
	}
}
