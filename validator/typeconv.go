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
	"github.com/substrait-io/substrait-validator-sub000/diag"
	"github.com/substrait-io/substrait-validator-sub000/meta"
	"github.com/substrait-io/substrait-validator-sub000/path"
	"github.com/substrait-io/substrait-validator-sub000/types"
	"github.com/substrait-io/substrait-validator-sub000/wireproto"
)

// simpleClassByWire maps wireproto.SimpleKind onto types.SimpleClass. Both
// enumerations list the same 16 unparameterized classes in the same order
// (Boolean..UUID per substrait/type.proto); the conversion still goes
// through this explicit map rather than an index cast, so the
// correspondence stays visible to anyone auditing it.
var simpleClassByWire = map[wireproto.SimpleKind]types.SimpleClass{
	wireproto.SimpleBoolean:      types.Boolean,
	wireproto.SimpleI8:          types.I8,
	wireproto.SimpleI16:         types.I16,
	wireproto.SimpleI32:         types.I32,
	wireproto.SimpleI64:         types.I64,
	wireproto.SimpleFP32:        types.FP32,
	wireproto.SimpleFP64:        types.FP64,
	wireproto.SimpleString:      types.StringClass,
	wireproto.SimpleBinary:      types.Binary,
	wireproto.SimpleTimestamp:   types.Timestamp,
	wireproto.SimpleTimestampTZ: types.TimestampTZ,
	wireproto.SimpleDate:        types.Date,
	wireproto.SimpleTime:        types.Time,
	wireproto.SimpleIntervalYear: types.IntervalYear,
	wireproto.SimpleIntervalDay:  types.IntervalDay,
	wireproto.SimpleUUID:         types.UUID,
}

// convertType turns a decoded wireproto.Type into a types.Type, resolving
// TypeUserDefined and the type_variation_reference against at, and emitting
// ProtoMissingField/LinkMissingAnchor diagnostics at p for anything that
// doesn't check out. The returned Type is always usable (falling back to
// UnresolvedClass on any failure) so that callers never need a second error
// path just to keep walking the rest of the plan.
func convertType(wt *wireproto.Type, at *anchorTable, p path.Path, diags *[]diag.Diagnostic) types.Type {
	if wt == nil {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingField, "type field is unset"),
			diag.Error, p))
		return types.NewSimple(types.Boolean, true)
	}

	variation := convertVariation(wt.Variation, at, p, diags)
	nullable := wt.Nullability != wireproto.NullabilityRequired

	switch wt.Kind {
	case wireproto.TypeSimple:
		sc, ok := simpleClassByWire[wt.Simple]
		if !ok {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.ProtoMissingField, "unrecognized simple type kind %d", wt.Simple),
				diag.Error, p))
			return types.NewSimple(types.Boolean, nullable)
		}
		return types.MustNew(types.NewSimpleClass(sc), nullable, variation, nil)

	case wireproto.TypeFixedChar, wireproto.TypeVarChar, wireproto.TypeFixedBinary:
		cc := map[wireproto.TypeKind]types.CompoundClass{
			wireproto.TypeFixedChar: types.FixedChar, wireproto.TypeVarChar: types.VarChar,
			wireproto.TypeFixedBinary: types.FixedBinary,
		}[wt.Kind]
		return mustCompound(cc, nullable, variation, p, diags,
			types.UnnamedParameter(meta.IntValue(wt.Length)))

	case wireproto.TypeDecimal:
		return mustCompound(types.Decimal, nullable, variation, p, diags,
			types.UnnamedParameter(meta.IntValue(wt.Length)),
			types.UnnamedParameter(meta.IntValue(wt.Scale)))

	case wireproto.TypeStruct:
		params := make([]types.Parameter, len(wt.Elements))
		for i, e := range wt.Elements {
			ep := p.Child(path.Repeated("types", i))
			params[i] = types.UnnamedParameter(convertType(e, at, ep, diags))
		}
		return mustCompound(types.Struct, nullable, variation, p, diags, params...)

	case wireproto.TypeList:
		if len(wt.Elements) != 1 {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.ProtoMissingField, "LIST requires an element type"),
				diag.Error, p))
			return types.NewSimple(types.Boolean, nullable)
		}
		elem := convertType(wt.Elements[0], at, p.Child(path.Field("type")), diags)
		return mustCompound(types.List, nullable, variation, p, diags, types.UnnamedParameter(elem))

	case wireproto.TypeMap:
		if len(wt.Elements) != 2 {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.ProtoMissingField, "MAP requires key and value types"),
				diag.Error, p))
			return types.NewSimple(types.Boolean, nullable)
		}
		key := convertType(wt.Elements[0], at, p.Child(path.Field("key")), diags)
		val := convertType(wt.Elements[1], at, p.Child(path.Field("value")), diags)
		return mustCompound(types.Map, nullable, variation, p, diags,
			types.UnnamedParameter(key), types.UnnamedParameter(val))

	case wireproto.TypeUserDefined:
		class, ok := at.classes[wt.UserDefinedRef]
		if !ok {
			*diags = append(*diags, diag.New(
				diag.NewCause(diag.LinkMissingAnchor, "user defined type references undeclared anchor %d", wt.UserDefinedRef),
				diag.Error, p))
			class = types.UnresolvedClass()
		}
		return types.MustNew(class, nullable, variation, nil)

	default:
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.ProtoMissingOneOf, "type message has no kind set"),
			diag.Error, p))
		return types.NewSimple(types.Boolean, nullable)
	}
}

// mustCompound wraps types.New for a built-in compound class, demoting a
// ConstructError (which should only be reachable via a malformed plan, e.g.
// a DECIMAL scale outside 0..precision) to a diagnostic rather than a panic.
func mustCompound(c types.CompoundClass, nullable bool, variation types.Variation, p path.Path, diags *[]diag.Diagnostic, params ...types.Parameter) types.Type {
	t, err := types.New(types.NewCompoundClass(c), nullable, variation, params)
	if err != nil {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.TypeMismatchedParameters, "%v", err),
			diag.Error, p))
		return types.NewSimple(types.Boolean, nullable)
	}
	return t
}

func convertVariation(anchor uint32, at *anchorTable, p path.Path, diags *[]diag.Diagnostic) types.Variation {
	if anchor == 0 {
		return types.SystemPreferredVariation()
	}
	v, ok := at.variations[anchor]
	if !ok {
		*diags = append(*diags, diag.New(
			diag.NewCause(diag.LinkMissingAnchor, "type variation references undeclared anchor %d", anchor),
			diag.Error, p))
		return types.SystemPreferredVariation()
	}
	return v
}
