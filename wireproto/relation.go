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

import "google.golang.org/protobuf/types/known/anypb"

// RelKind discriminates substrait.Rel's oneof variants this validator
// recognizes (§4.6 lists the per-relation handlers this maps onto 1:1).
type RelKind int

const (
	RelUnrecognized RelKind = iota
	RelRead
	RelFilter
	RelProject
	RelJoin
	RelAggregate
	RelFetch
	RelSort
	RelSet
	RelCross
	RelExtensionLeaf
	RelExtensionSingle
	RelExtensionMulti
)

const (
	fieldRelRead           = 1
	fieldRelFilter         = 2
	fieldRelFetch          = 3
	fieldRelAggregate      = 4
	fieldRelSort           = 5
	fieldRelJoin           = 6
	fieldRelProject        = 8
	fieldRelSet            = 9
	fieldRelExtensionSingle = 10
	fieldRelExtensionMulti  = 11
	fieldRelExtensionLeaf   = 12
	fieldRelCross           = 13
)

// Rel is the decoded form of one substrait.Rel message: the oneof variant
// actually set, its common input(s), and kind-specific detail. Every input
// slot is itself a *Rel so the tree builder can recurse uniformly.
type Rel struct {
	Kind RelKind

	// Input/Left/Right/Inputs hold the child relation(s); which are
	// populated depends on Kind.
	Input  *Rel
	Left   *Rel
	Right  *Rel
	Inputs []*Rel

	// ReadBaseSchema is Read's declared output schema (NamedStruct): its
	// field names and its struct Type (see decodeNamedStruct).
	ReadBaseSchema *NamedStruct
	ReadNamedTable []string

	FilterCondition *Expr

	ProjectExpressions []*Expr

	JoinType      int32
	JoinCondition *Expr

	AggregateGroupings []*Expr
	AggregateMeasures  []*ScalarFunction

	FetchOffset int64
	FetchCount  int64

	SetOp int32

	// ExtensionDetail carries the decoded google.protobuf.Any payload of an
	// ExtensionLeafRel/SingleRel/MultiRel's "detail" field, split into its
	// type_url and value per §3.2's "opaque any blob (type-URL + bytes)"
	// primitive: §7 treats an Any value as a diagnostic in its own right
	// (ProtoAny) unless a specific extension contract recognizes it, which
	// is outside this validator's built-in relation handlers.
	ExtensionDetail *anypb.Any
}

// NamedStruct is a decoded substrait.NamedStruct: a flattened list of leaf
// field names (struct nesting is flattened depth-first, matching how
// substrait itself names nested-struct fields) paired with the struct's
// Type.
type NamedStruct struct {
	Names  []string
	Struct *Type
}

func decodeNamedStruct(raw []byte) (*NamedStruct, error) {
	ns := &NamedStruct{}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 1:
			s, _ := f.str()
			ns.Names = append(ns.Names, s)
		case 2:
			b, _ := f.bytes()
			t, err := decodeStruct(b)
			if err != nil {
				return err
			}
			ns.Struct = t
		}
		return nil
	})
	return ns, err
}

// DecodeRel decodes a substrait.Rel message.
func DecodeRel(raw []byte) (*Rel, error) {
	r := &Rel{}
	err := forEachField(raw, func(f field) error {
		b, _ := f.bytes()
		switch f.num {
		case fieldRelRead:
			r.Kind = RelRead
			return decodeReadRel(r, b)
		case fieldRelFilter:
			r.Kind = RelFilter
			return decodeFilterRel(r, b)
		case fieldRelProject:
			r.Kind = RelProject
			return decodeProjectRel(r, b)
		case fieldRelJoin:
			r.Kind = RelJoin
			return decodeJoinRel(r, b)
		case fieldRelAggregate:
			r.Kind = RelAggregate
			return decodeAggregateRel(r, b)
		case fieldRelFetch:
			r.Kind = RelFetch
			return decodeFetchRel(r, b)
		case fieldRelSort:
			r.Kind = RelSort
			return decodeSortRel(r, b)
		case fieldRelSet:
			r.Kind = RelSet
			return decodeSetRel(r, b)
		case fieldRelCross:
			r.Kind = RelCross
			return decodeCrossRel(r, b)
		case fieldRelExtensionLeaf:
			r.Kind = RelExtensionLeaf
			return decodeExtensionRel(r, b, false, false)
		case fieldRelExtensionSingle:
			r.Kind = RelExtensionSingle
			return decodeExtensionRel(r, b, true, false)
		case fieldRelExtensionMulti:
			r.Kind = RelExtensionMulti
			return decodeExtensionRel(r, b, false, true)
		}
		return nil
	})
	return r, err
}

func decodeChildRel(raw []byte) (*Rel, error) { return DecodeRel(raw) }

func decodeReadRel(r *Rel, raw []byte) error {
	return forEachField(raw, func(f field) error {
		b, _ := f.bytes()
		switch f.num {
		case 3: // base_schema
			ns, err := decodeNamedStruct(b)
			if err != nil {
				return err
			}
			r.ReadBaseSchema = ns
		case 5: // named_table
			return forEachField(b, func(inner field) error {
				if inner.num == 1 {
					s, _ := inner.str()
					r.ReadNamedTable = append(r.ReadNamedTable, s)
				}
				return nil
			})
		}
		return nil
	})
}

func decodeFilterRel(r *Rel, raw []byte) error {
	return forEachField(raw, func(f field) error {
		b, _ := f.bytes()
		switch f.num {
		case 1: // common, ignored at this granularity
		case 2:
			input, err := decodeChildRel(b)
			if err != nil {
				return err
			}
			r.Input = input
		case 3:
			e, err := DecodeExpr(b)
			if err != nil {
				return err
			}
			r.FilterCondition = e
		}
		return nil
	})
}

func decodeProjectRel(r *Rel, raw []byte) error {
	return forEachField(raw, func(f field) error {
		b, _ := f.bytes()
		switch f.num {
		case 2:
			input, err := decodeChildRel(b)
			if err != nil {
				return err
			}
			r.Input = input
		case 3:
			e, err := DecodeExpr(b)
			if err != nil {
				return err
			}
			r.ProjectExpressions = append(r.ProjectExpressions, e)
		}
		return nil
	})
}

func decodeJoinRel(r *Rel, raw []byte) error {
	return forEachField(raw, func(f field) error {
		switch f.num {
		case 2:
			b, _ := f.bytes()
			left, err := decodeChildRel(b)
			if err != nil {
				return err
			}
			r.Left = left
		case 3:
			b, _ := f.bytes()
			right, err := decodeChildRel(b)
			if err != nil {
				return err
			}
			r.Right = right
		case 4:
			b, _ := f.bytes()
			e, err := DecodeExpr(b)
			if err != nil {
				return err
			}
			r.JoinCondition = e
		case 6:
			v, _ := f.int32()
			r.JoinType = v
		}
		return nil
	})
}

func decodeAggregateRel(r *Rel, raw []byte) error {
	return forEachField(raw, func(f field) error {
		b, _ := f.bytes()
		switch f.num {
		case 2:
			input, err := decodeChildRel(b)
			if err != nil {
				return err
			}
			r.Input = input
		case 3: // groupings (Grouping message, itself wrapping expressions at field 1)
			return forEachField(b, func(inner field) error {
				if inner.num != 1 {
					return nil
				}
				ib, _ := inner.bytes()
				e, err := DecodeExpr(ib)
				if err != nil {
					return err
				}
				r.AggregateGroupings = append(r.AggregateGroupings, e)
				return nil
			})
		case 4: // measures (Measure message, wrapping a Measure.measure AggregateFunction at field 1)
			return forEachField(b, func(inner field) error {
				if inner.num != 1 {
					return nil
				}
				ib, _ := inner.bytes()
				sf, err := decodeScalarFunction(ib)
				if err != nil {
					return err
				}
				r.AggregateMeasures = append(r.AggregateMeasures, sf)
				return nil
			})
		}
		return nil
	})
}

func decodeFetchRel(r *Rel, raw []byte) error {
	return forEachField(raw, func(f field) error {
		switch f.num {
		case 2:
			b, _ := f.bytes()
			input, err := decodeChildRel(b)
			if err != nil {
				return err
			}
			r.Input = input
		case 3:
			v, _ := f.int64()
			r.FetchOffset = v
		case 4:
			v, _ := f.int64()
			r.FetchCount = v
		}
		return nil
	})
}

func decodeSortRel(r *Rel, raw []byte) error {
	return forEachField(raw, func(f field) error {
		if f.num != 2 {
			return nil
		}
		b, _ := f.bytes()
		input, err := decodeChildRel(b)
		if err != nil {
			return err
		}
		r.Input = input
		return nil
	})
}

func decodeSetRel(r *Rel, raw []byte) error {
	return forEachField(raw, func(f field) error {
		switch f.num {
		case 2:
			b, _ := f.bytes()
			input, err := decodeChildRel(b)
			if err != nil {
				return err
			}
			r.Inputs = append(r.Inputs, input)
		case 3:
			v, _ := f.int32()
			r.SetOp = v
		}
		return nil
	})
}

func decodeCrossRel(r *Rel, raw []byte) error {
	return forEachField(raw, func(f field) error {
		b, _ := f.bytes()
		switch f.num {
		case 2:
			left, err := decodeChildRel(b)
			if err != nil {
				return err
			}
			r.Left = left
		case 3:
			right, err := decodeChildRel(b)
			if err != nil {
				return err
			}
			r.Right = right
		}
		return nil
	})
}

func decodeExtensionRel(r *Rel, raw []byte, single, multi bool) error {
	return forEachField(raw, func(f field) error {
		b, _ := f.bytes()
		switch {
		case single && f.num == 2:
			input, err := decodeChildRel(b)
			if err != nil {
				return err
			}
			r.Input = input
		case multi && f.num == 2:
			input, err := decodeChildRel(b)
			if err != nil {
				return err
			}
			r.Inputs = append(r.Inputs, input)
		case f.num == 3:
			any, err := decodeAny(b)
			if err != nil {
				return err
			}
			r.ExtensionDetail = any
		}
		return nil
	})
}

// decodeAny decodes a google.protobuf.Any message's wire bytes directly
// into an *anypb.Any (type_url=1, value=2): no protoc is available to
// generate a full Any unmarshaler from, but anypb.Any's own field shape is
// fixed and well known, so it is decoded the same field-by-field way every
// other message in this package is.
func decodeAny(raw []byte) (*anypb.Any, error) {
	a := &anypb.Any{}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 1:
			s, _ := f.str()
			a.TypeUrl = s
		case 2:
			b, _ := f.bytes()
			a.Value = b
		}
		return nil
	})
	return a, err
}
