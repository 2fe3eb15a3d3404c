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

import "github.com/substrait-io/substrait-validator-sub000/types"

// schema is a relation's output field list: names paired with data types,
// in order. It plays the role §4.6 calls "the current stream" that a
// FieldReference resolves against and that each relation kind's handler
// recomputes for its own output.
type schema struct {
	Names []string
	Types []types.Type
}

func (s *schema) field(index int) (types.Type, bool) {
	if index < 0 || index >= len(s.Types) {
		return types.Type{}, false
	}
	return s.Types[index], true
}

// concat appends other's fields after s's own, as a join's output schema
// does (left columns then right columns).
func concat(a, b *schema) *schema {
	out := &schema{
		Names: make([]string, 0, len(a.Names)+len(b.Names)),
		Types: make([]types.Type, 0, len(a.Types)+len(b.Types)),
	}
	out.Names = append(out.Names, a.Names...)
	out.Names = append(out.Names, b.Names...)
	out.Types = append(out.Types, a.Types...)
	out.Types = append(out.Types, b.Types...)
	return out
}

// widenNullable returns a copy of s with every field forced nullable, the
// shape an outer join's non-preserved side takes on in its parent's output
// schema (§4.6's "outer join widens the non-preserving side to nullable").
func widenNullable(s *schema) *schema {
	out := &schema{Names: append([]string(nil), s.Names...), Types: make([]types.Type, len(s.Types))}
	for i, t := range s.Types {
		out.Types[i] = t.WithNullable(true)
	}
	return out
}

// Substrait JoinRel.JoinType values (substrait/algebra.proto).
const (
	joinTypeUnspecified = 0
	joinTypeInner       = 1
	joinTypeOuter       = 2
	joinTypeLeft        = 3
	joinTypeRight       = 4
	joinTypeLeftSemi    = 5
	joinTypeLeftAnti    = 6
	joinTypeLeftSingle  = 7
	joinTypeRightSingle = 8
)

// joinSchema composes a join's output schema from its two input schemas per
// §4.6: semi/anti joins drop the right side entirely (they only filter the
// left), and an outer join widens whichever side(s) it doesn't guarantee
// are matched to nullable before concatenation.
func joinSchema(joinType int32, left, right *schema) *schema {
	switch joinType {
	case joinTypeLeftSemi, joinTypeLeftAnti:
		return left
	case joinTypeLeftSingle:
		return concat(left, widenNullable(right))
	case joinTypeRightSingle:
		return concat(widenNullable(left), right)
	case joinTypeLeft:
		return concat(left, widenNullable(right))
	case joinTypeRight:
		return concat(widenNullable(left), right)
	case joinTypeOuter:
		return concat(widenNullable(left), widenNullable(right))
	default: // inner, unspecified
		return concat(left, right)
	}
}

// setSchema composes a Set relation's output schema: it is the first
// input's schema. The inputs are not compared with one another, so a
// difference in arity or field types between them is not reported.
func setSchema(inputs []*schema) *schema {
	if len(inputs) == 0 {
		return &schema{}
	}
	return inputs[0]
}
