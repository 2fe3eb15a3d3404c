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

// literalSimpleByField mirrors substrait.Expression.Literal's oneof field
// numbers against the unparameterized type they imply, matching the
// numbering wireproto.Type uses for the same primitives (both messages
// share substrait.proto's field-number space for these leaf kinds).
var literalSimpleByField = map[int32]types.SimpleClass{
	1: types.Boolean, 2: types.I8, 3: types.I16, 5: types.I32, 7: types.I64,
	10: types.FP32, 11: types.FP64, 12: types.StringClass, 13: types.Binary,
	14: types.Timestamp, 16: types.Date, 17: types.Time,
	19: types.IntervalYear, 29: types.TimestampTZ, 32: types.UUID,
}

// exprContext bundles the per-node inputs every exprNode call needs, so
// deriveExpr's many recursive call sites don't have to thread two separate
// parameters through each other.
type exprContext struct {
	schema *schema
	at     *anchorTable
}

// deriveExpr builds the annotated tree.Node for e and derives its data
// type, recursing into subexpressions (§4.6). It never fails outright: an
// unrecognized expression shape yields an unresolved type and a
// Recognized=false node rather than aborting the relation it lives in.
func deriveExpr(e *wireproto.Expr, ec exprContext, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, types.Type) {
	if e == nil {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "expression field is unset"),
			diag.Error, p))
		t := unresolvedType(nil)
		return tree.New("expression", "unset", p), t
	}

	switch e.Kind {
	case wireproto.ExprLiteral:
		return deriveLiteral(e.Literal, ec, p, diags)
	case wireproto.ExprFieldReference:
		return deriveFieldReference(e.FieldReference, ec, p, diags)
	case wireproto.ExprScalarFunction:
		return deriveScalarFunction(e.ScalarFunction, ec, p, diags)
	case wireproto.ExprIfThen:
		return deriveIfThen(e.IfThen, ec, p, diags)
	case wireproto.ExprCast:
		return deriveCast(e.Cast, ec, p, diags)
	case wireproto.ExprSingularOrList, wireproto.ExprMultiOrList:
		return deriveOrList(e.OrList, ec, p, diags)
	default:
		n := tree.New("expression", "unrecognized", p)
		n.Recognized = false
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingOneOf, "expression has no recognized rex_type set"),
			diag.Error, p))
		return n, unresolvedType(nil)
	}
}

func deriveLiteral(l *wireproto.Literal, ec exprContext, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, types.Type) {
	n := tree.New("expression", "literal", p)
	if l == nil {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "literal field is unset"),
			diag.Error, p))
		t := unresolvedType(nil)
		n.DataType = &t
		return n, t
	}
	if l.TypeNode != nil {
		t := convertType(l.TypeNode, ec.at, p, diags)
		n.DataType = &t
		n.Brief = "explicitly typed null literal"
		return n, t
	}
	sc, ok := literalSimpleByField[l.FieldSet]
	if !ok {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingOneOf, "literal has no recognized value set"),
			diag.Error, p))
		t := unresolvedType(nil)
		n.DataType = &t
		n.Recognized = false
		return n, t
	}
	t := types.NewSimple(sc, l.Nullable)
	n.DataType = &t
	return n, t
}

func deriveFieldReference(fr *wireproto.FieldReference, ec exprContext, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, types.Type) {
	n := tree.New("expression", "field_reference", p)
	if fr == nil || len(fr.StructFieldIndices) == 0 {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "field reference has no struct field path"),
			diag.Error, p))
		t := unresolvedType(nil)
		n.DataType = &t
		return n, t
	}
	index := int(fr.StructFieldIndices[0])
	t, ok := ec.schema.field(index)
	if !ok {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ExpressionFieldRefMissingStream, "field index %d is outside the current stream (%d fields)", index, len(ec.schema.Types)),
			diag.Error, p))
		t = unresolvedType(nil)
	} else if index < len(ec.schema.Names) {
		n.Brief = fmt.Sprintf("references %q", ec.schema.Names[index])
	}
	n.DataType = &t
	return n, t
}

func deriveScalarFunction(sf *wireproto.ScalarFunction, ec exprContext, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, types.Type) {
	n := tree.New("expression", "scalar_function", p)
	if sf == nil {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "scalar function field is unset"),
			diag.Error, p))
		t := unresolvedType(nil)
		n.DataType = &t
		return n, t
	}

	argTypes := make([]types.Type, len(sf.Arguments))
	for i, a := range sf.Arguments {
		ap := p.Child(path.Repeated("arguments", i))
		child, at := deriveExpr(a, ec, ap, diags)
		n.AddChild(child)
		argTypes[i] = at
	}

	var explicit *types.Type
	if sf.OutputType != nil {
		t := convertType(sf.OutputType, ec.at, p.Child(path.Field("output_type")), diags)
		explicit = &t
	}

	t := bindFunction(sf.FunctionReference, argTypes, explicit, ec.at, p, diags)
	n.DataType = &t
	if fa, ok := ec.at.functions[sf.FunctionReference]; ok {
		n.Brief = fmt.Sprintf("calls %s", fa.name)
	}
	return n, t
}

func deriveIfThen(it *wireproto.IfThen, ec exprContext, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, types.Type) {
	n := tree.New("expression", "if_then", p)
	if it == nil || len(it.Clauses) == 0 {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "if/then has no clauses"),
			diag.Error, p))
		t := unresolvedType(nil)
		n.DataType = &t
		return n, t
	}

	var result types.Type
	haveResult := false
	for i, c := range it.Clauses {
		cp := p.Child(path.Repeated("ifs", i))
		ifChild, ifType := deriveExpr(c.If, ec, cp.Child(path.Field("if")), diags)
		if ifType.Class().Kind() != types.ClassUnresolved && !ifType.Class().WeakEqual(types.NewSimpleClass(types.Boolean)) {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.TypeMismatchedParameters, "if/then condition must be boolean, got %s", ifType),
				diag.Error, cp))
		}
		thenChild, thenType := deriveExpr(c.Then, ec, cp.Child(path.Field("then")), diags)
		n.AddChild(ifChild)
		n.AddChild(thenChild)
		if !haveResult {
			result = thenType
			haveResult = true
		}
	}
	if it.Else != nil {
		elseChild, elseType := deriveExpr(it.Else, ec, p.Child(path.Field("else")), diags)
		n.AddChild(elseChild)
		if !haveResult {
			result = elseType
			haveResult = true
		} else if elseType.Nullable() {
			result = result.WithNullable(true)
		}
	} else {
		result = result.WithNullable(true)
	}
	n.DataType = &result
	return n, result
}

func deriveCast(c *wireproto.Cast, ec exprContext, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, types.Type) {
	n := tree.New("expression", "cast", p)
	if c == nil || c.Type == nil {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "cast has no target type"),
			diag.Error, p))
		t := unresolvedType(nil)
		n.DataType = &t
		return n, t
	}
	inputChild, _ := deriveExpr(c.Input, ec, p.Child(path.Field("input")), diags)
	n.AddChild(inputChild)
	t := convertType(c.Type, ec.at, p.Child(path.Field("type")), diags)
	n.DataType = &t
	return n, t
}

func deriveOrList(ol *wireproto.OrList, ec exprContext, p path.Path, diags *[]diag.Diagnostic) (*tree.Node, types.Type) {
	n := tree.New("expression", "or_list", p)
	if ol == nil {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "or list has no values"),
			diag.Error, p))
		t := unresolvedType(nil)
		n.DataType = &t
		return n, t
	}
	for i, v := range ol.Values {
		child, _ := deriveExpr(v, ec, p.Child(path.Repeated("value", i)), diags)
		n.AddChild(child)
	}
	for i, opt := range ol.Options {
		for j, o := range opt {
			child, _ := deriveExpr(o, ec, p.Child(path.Repeated("options", i)).Child(path.Repeated("fields", j)), diags)
			n.AddChild(child)
		}
	}
	t := types.NewSimple(types.Boolean, true)
	n.DataType = &t
	return n, t
}
