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

// ExprKind discriminates substrait.Expression's oneof "rex_type" variants
// this validator recognizes. Anything else decodes to ExprUnrecognized,
// which the tree builder reports as a ProtoMissingOneOf error diagnostic
// (§7) rather than a hard failure.
type ExprKind int

const (
	ExprUnrecognized ExprKind = iota
	ExprLiteral
	ExprFieldReference
	ExprScalarFunction
	ExprIfThen
	ExprCast
	ExprSingularOrList
	ExprMultiOrList
)

const (
	fieldExprLiteral        = 1
	fieldExprFieldReference = 3
	fieldExprScalarFunction = 2
	fieldExprIfThen         = 10
	fieldExprCast           = 11
	fieldExprSingularOrList = 14
	fieldExprMultiOrList    = 15
)

// Literal is a decoded substrait.Expression.Literal, capturing only the
// oneof tag actually set and its raw payload; the validator's per-kind
// handlers parse the payload further once they know the declared type.
type Literal struct {
	FieldSet   int32
	Raw        []byte
	Nullable   bool
	TypeNode   *Type // explicit "type" variant (field 20), for nulls/empty lists
}

// FieldReference is a decoded direct struct-field reference: a sequence of
// 0-based struct-field indices (§3.6's "recognized child" path, restricted
// to the direct-reference case; masked references are out of scope here).
type FieldReference struct {
	StructFieldIndices []int32
}

// ScalarFunction is a decoded Expression.ScalarFunction: an anchor into the
// extension function namespace, plus its argument expressions and declared
// output type.
type ScalarFunction struct {
	FunctionReference uint32
	Arguments         []*Expr
	OutputType        *Type
}

// IfClause is one WHEN/THEN pair of an IfThen expression.
type IfClause struct {
	If   *Expr
	Then *Expr
}

// IfThen is a decoded Expression.IfThen.
type IfThen struct {
	Clauses []IfClause
	Else    *Expr
}

// Cast is a decoded Expression.Cast.
type Cast struct {
	Type  *Type
	Input *Expr
}

// OrList is shared shape for SingularOrList/MultiOrList.
type OrList struct {
	Values  []*Expr
	Options [][]*Expr
}

// Expr is the decoded form of one substrait.Expression message.
type Expr struct {
	Kind           ExprKind
	Literal        *Literal
	FieldReference *FieldReference
	ScalarFunction *ScalarFunction
	IfThen         *IfThen
	Cast           *Cast
	OrList         *OrList
}

// DecodeExpr decodes a substrait.Expression message.
func DecodeExpr(raw []byte) (*Expr, error) {
	e := &Expr{}
	err := forEachField(raw, func(f field) error {
		b, _ := f.bytes()
		switch f.num {
		case fieldExprLiteral:
			e.Kind = ExprLiteral
			lit, err := decodeLiteral(b)
			if err != nil {
				return err
			}
			e.Literal = lit
		case fieldExprFieldReference:
			e.Kind = ExprFieldReference
			fr, err := decodeFieldReference(b)
			if err != nil {
				return err
			}
			e.FieldReference = fr
		case fieldExprScalarFunction:
			e.Kind = ExprScalarFunction
			sf, err := decodeScalarFunction(b)
			if err != nil {
				return err
			}
			e.ScalarFunction = sf
		case fieldExprIfThen:
			e.Kind = ExprIfThen
			it, err := decodeIfThen(b)
			if err != nil {
				return err
			}
			e.IfThen = it
		case fieldExprCast:
			e.Kind = ExprCast
			c, err := decodeCast(b)
			if err != nil {
				return err
			}
			e.Cast = c
		case fieldExprSingularOrList, fieldExprMultiOrList:
			if f.num == fieldExprSingularOrList {
				e.Kind = ExprSingularOrList
			} else {
				e.Kind = ExprMultiOrList
			}
			ol, err := decodeOrList(b, f.num == fieldExprMultiOrList)
			if err != nil {
				return err
			}
			e.OrList = ol
		}
		return nil
	})
	return e, err
}

func decodeLiteral(raw []byte) (*Literal, error) {
	l := &Literal{}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 15: // nullable
			v, _ := f.bool()
			l.Nullable = v
		case 20: // type (explicit, for NULL literals)
			b, _ := f.bytes()
			t, err := DecodeType(b)
			if err != nil {
				return err
			}
			l.TypeNode = t
		default:
			l.FieldSet = int32(f.num)
			l.Raw = f.raw
		}
		return nil
	})
	return l, err
}

func decodeFieldReference(raw []byte) (*FieldReference, error) {
	fr := &FieldReference{}
	err := forEachField(raw, func(f field) error {
		if f.num != 1 { // direct_reference
			return nil
		}
		b, _ := f.bytes()
		return forEachField(b, func(inner field) error {
			if inner.num != 1 { // struct_field
				return nil
			}
			b2, _ := inner.bytes()
			return forEachField(b2, func(leaf field) error {
				if leaf.num == 1 {
					v, _ := leaf.int32()
					fr.StructFieldIndices = append(fr.StructFieldIndices, v)
				}
				return nil
			})
		})
	})
	return fr, err
}

func decodeScalarFunction(raw []byte) (*ScalarFunction, error) {
	sf := &ScalarFunction{}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 1:
			v, _ := f.varint()
			sf.FunctionReference = uint32(v)
		case 2:
			b, _ := f.bytes()
			arg, err := decodeFunctionArgument(b)
			if err != nil {
				return err
			}
			if arg != nil {
				sf.Arguments = append(sf.Arguments, arg)
			}
		case 3:
			b, _ := f.bytes()
			t, err := DecodeType(b)
			if err != nil {
				return err
			}
			sf.OutputType = t
		}
		return nil
	})
	return sf, err
}

// decodeFunctionArgument decodes a FunctionArgument, unwrapping its "value"
// variant (field 3; enum/type-only arguments are left nil).
func decodeFunctionArgument(raw []byte) (*Expr, error) {
	var expr *Expr
	err := forEachField(raw, func(f field) error {
		if f.num != 3 {
			return nil
		}
		b, _ := f.bytes()
		e, err := DecodeExpr(b)
		if err != nil {
			return err
		}
		expr = e
		return nil
	})
	return expr, err
}

func decodeIfThen(raw []byte) (*IfThen, error) {
	it := &IfThen{}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 1:
			b, _ := f.bytes()
			clause, err := decodeIfClause(b)
			if err != nil {
				return err
			}
			it.Clauses = append(it.Clauses, clause)
		case 2:
			b, _ := f.bytes()
			e, err := DecodeExpr(b)
			if err != nil {
				return err
			}
			it.Else = e
		}
		return nil
	})
	return it, err
}

func decodeIfClause(raw []byte) (IfClause, error) {
	var c IfClause
	err := forEachField(raw, func(f field) error {
		b, _ := f.bytes()
		e, err := DecodeExpr(b)
		if err != nil {
			return err
		}
		switch f.num {
		case 1:
			c.If = e
		case 2:
			c.Then = e
		}
		return nil
	})
	return c, err
}

func decodeCast(raw []byte) (*Cast, error) {
	c := &Cast{}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 1:
			b, _ := f.bytes()
			t, err := DecodeType(b)
			if err != nil {
				return err
			}
			c.Type = t
		case 2:
			b, _ := f.bytes()
			e, err := DecodeExpr(b)
			if err != nil {
				return err
			}
			c.Input = e
		}
		return nil
	})
	return c, err
}

func decodeOrList(raw []byte, multi bool) (*OrList, error) {
	ol := &OrList{}
	err := forEachField(raw, func(f field) error {
		b, _ := f.bytes()
		switch {
		case !multi && f.num == 1, multi && f.num == 1:
			e, err := DecodeExpr(b)
			if err != nil {
				return err
			}
			ol.Values = append(ol.Values, e)
		case f.num == 2:
			opt, err := decodeOrListOption(b, multi)
			if err != nil {
				return err
			}
			ol.Options = append(ol.Options, opt)
		}
		return nil
	})
	return ol, err
}

func decodeOrListOption(raw []byte, multi bool) ([]*Expr, error) {
	var out []*Expr
	err := forEachField(raw, func(f field) error {
		if f.num != 1 {
			return nil
		}
		b, _ := f.bytes()
		e, err := DecodeExpr(b)
		if err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	return out, err
}
