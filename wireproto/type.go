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

import "google.golang.org/protobuf/encoding/protowire"

// Nullability mirrors substrait.Type.Nullability's three-valued enum:
// UNSPECIFIED defers to context (§3.4's "nullable unless told otherwise" for
// a bare literal), NULLABLE and REQUIRED are explicit.
type Nullability int32

const (
	NullabilityUnspecified Nullability = 0
	NullabilityNullable    Nullability = 1
	NullabilityRequired    Nullability = 2
)

// simple type.kind field numbers, per substrait/proto/substrait/type.proto's
// Type message (the representative subset this validator recognizes).
const (
	fieldTypeBoolean      protowire.Number = 1
	fieldTypeI8           protowire.Number = 2
	fieldTypeI16          protowire.Number = 3
	fieldTypeI32          protowire.Number = 5
	fieldTypeI64          protowire.Number = 7
	fieldTypeFP32         protowire.Number = 10
	fieldTypeFP64         protowire.Number = 11
	fieldTypeString       protowire.Number = 12
	fieldTypeBinary       protowire.Number = 13
	fieldTypeTimestamp    protowire.Number = 14
	fieldTypeDate         protowire.Number = 16
	fieldTypeTime         protowire.Number = 17
	fieldTypeIntervalYear protowire.Number = 19
	fieldTypeIntervalDay  protowire.Number = 20
	fieldTypeFixedChar    protowire.Number = 21
	fieldTypeVarChar      protowire.Number = 22
	fieldTypeFixedBinary  protowire.Number = 23
	fieldTypeDecimal      protowire.Number = 24
	fieldTypeStruct       protowire.Number = 25
	fieldTypeList         protowire.Number = 27
	fieldTypeMap          protowire.Number = 28
	fieldTypeTimestampTZ  protowire.Number = 29
	fieldTypeUserDefined  protowire.Number = 31
	fieldTypeUUID         protowire.Number = 32
)

// TypeKind discriminates the decoded Type variant. It is deliberately a
// smaller, flatter enumeration than types.ClassKind: wireproto only has to
// carry "which wire variant was this" through to the validator, which is
// what resolves a user-defined-type-reference anchor into an actual
// types.Class.
type TypeKind int

const (
	TypeUnset TypeKind = iota
	TypeSimple
	TypeFixedChar
	TypeVarChar
	TypeFixedBinary
	TypeDecimal
	TypeStruct
	TypeList
	TypeMap
	TypeUserDefined
)

// SimpleKind enumerates the unparameterized Type variants (simpleKindByField
// maps each one's substrait.proto field tag onto it), standing in for a
// types.SimpleClass until the validator's tree-builder maps one to the other.
type SimpleKind int

const (
	SimpleBoolean SimpleKind = iota
	SimpleI8
	SimpleI16
	SimpleI32
	SimpleI64
	SimpleFP32
	SimpleFP64
	SimpleString
	SimpleBinary
	SimpleTimestamp
	SimpleTimestampTZ
	SimpleDate
	SimpleTime
	SimpleIntervalYear
	SimpleIntervalDay
	SimpleUUID
)

// Type is the decoded form of a substrait.Type message.
type Type struct {
	Kind        TypeKind
	Simple      SimpleKind
	Nullability Nullability
	Variation   uint32 // type_variation_reference; 0 = system-preferred

	// Length is FIXEDCHAR/VARCHAR/FIXEDBINARY's length, or DECIMAL's
	// precision.
	Length int32
	// Scale is DECIMAL's scale.
	Scale int32
	// Elements holds STRUCT's field types (in order) or LIST's single
	// element type / MAP's [key, value] pair.
	Elements []*Type
	// UserDefinedRef is the anchor naming the referenced type class, for
	// TypeUserDefined.
	UserDefinedRef uint32
}

// DecodeType decodes a substrait.Type message from raw bytes.
func DecodeType(raw []byte) (*Type, error) {
	var result *Type
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case fieldTypeBoolean, fieldTypeI8, fieldTypeI16, fieldTypeI32, fieldTypeI64,
			fieldTypeFP32, fieldTypeFP64, fieldTypeString, fieldTypeBinary,
			fieldTypeTimestamp, fieldTypeDate, fieldTypeTime, fieldTypeIntervalYear,
			fieldTypeIntervalDay, fieldTypeTimestampTZ, fieldTypeUUID:
			b, _ := f.bytes()
			t, err := decodeSimpleVariant(f.num, b)
			if err != nil {
				return err
			}
			result = t
		case fieldTypeFixedChar, fieldTypeVarChar, fieldTypeFixedBinary:
			b, _ := f.bytes()
			t, err := decodeLengthVariant(f.num, b)
			if err != nil {
				return err
			}
			result = t
		case fieldTypeDecimal:
			b, _ := f.bytes()
			t, err := decodeDecimal(b)
			if err != nil {
				return err
			}
			result = t
		case fieldTypeStruct:
			b, _ := f.bytes()
			t, err := decodeStruct(b)
			if err != nil {
				return err
			}
			result = t
		case fieldTypeList:
			b, _ := f.bytes()
			t, err := decodeList(b)
			if err != nil {
				return err
			}
			result = t
		case fieldTypeMap:
			b, _ := f.bytes()
			t, err := decodeMap(b)
			if err != nil {
				return err
			}
			result = t
		case fieldTypeUserDefined:
			b, _ := f.bytes()
			t, err := decodeUserDefined(b)
			if err != nil {
				return err
			}
			result = t
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = &Type{Kind: TypeUnset}
	}
	return result, nil
}

var simpleKindByField = map[protowire.Number]SimpleKind{
	fieldTypeBoolean: SimpleBoolean, fieldTypeI8: SimpleI8, fieldTypeI16: SimpleI16,
	fieldTypeI32: SimpleI32, fieldTypeI64: SimpleI64, fieldTypeFP32: SimpleFP32,
	fieldTypeFP64: SimpleFP64, fieldTypeString: SimpleString, fieldTypeBinary: SimpleBinary,
	fieldTypeTimestamp: SimpleTimestamp, fieldTypeTimestampTZ: SimpleTimestampTZ,
	fieldTypeDate: SimpleDate, fieldTypeTime: SimpleTime,
	fieldTypeIntervalYear: SimpleIntervalYear, fieldTypeIntervalDay: SimpleIntervalDay,
	fieldTypeUUID: SimpleUUID,
}

// every simple Type variant shares the same two-field shape:
// nullability=1, type_variation_reference=2.
func decodeSimpleVariant(which protowire.Number, raw []byte) (*Type, error) {
	t := &Type{Kind: TypeSimple, Simple: simpleKindByField[which]}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 1:
			v, _ := f.int32()
			t.Nullability = Nullability(v)
		case 2:
			v, _ := f.varint()
			t.Variation = uint32(v)
		}
		return nil
	})
	return t, err
}

// FIXEDCHAR/VARCHAR/FIXEDBINARY share: length=1, nullability=2,
// type_variation_reference=3.
func decodeLengthVariant(which protowire.Number, raw []byte) (*Type, error) {
	kind := map[protowire.Number]TypeKind{
		fieldTypeFixedChar: TypeFixedChar, fieldTypeVarChar: TypeVarChar, fieldTypeFixedBinary: TypeFixedBinary,
	}[which]
	t := &Type{Kind: kind}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 1:
			v, _ := f.int32()
			t.Length = v
		case 2:
			v, _ := f.int32()
			t.Nullability = Nullability(v)
		case 3:
			v, _ := f.varint()
			t.Variation = uint32(v)
		}
		return nil
	})
	return t, err
}

// DECIMAL: scale=1, precision=2, nullability=3, type_variation_reference=4.
func decodeDecimal(raw []byte) (*Type, error) {
	t := &Type{Kind: TypeDecimal}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 1:
			v, _ := f.int32()
			t.Scale = v
		case 2:
			v, _ := f.int32()
			t.Length = v // precision, reusing Length per the class.go parameter-order convention
		case 3:
			v, _ := f.int32()
			t.Nullability = Nullability(v)
		case 4:
			v, _ := f.varint()
			t.Variation = uint32(v)
		}
		return nil
	})
	return t, err
}

// STRUCT: types=1 (repeated), nullability=2, type_variation_reference=3.
func decodeStruct(raw []byte) (*Type, error) {
	t := &Type{Kind: TypeStruct}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 1:
			b, _ := f.bytes()
			elem, err := DecodeType(b)
			if err != nil {
				return err
			}
			t.Elements = append(t.Elements, elem)
		case 2:
			v, _ := f.int32()
			t.Nullability = Nullability(v)
		case 3:
			v, _ := f.varint()
			t.Variation = uint32(v)
		}
		return nil
	})
	return t, err
}

// LIST: type=1, nullability=2, type_variation_reference=3.
func decodeList(raw []byte) (*Type, error) {
	t := &Type{Kind: TypeList}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 1:
			b, _ := f.bytes()
			elem, err := DecodeType(b)
			if err != nil {
				return err
			}
			t.Elements = []*Type{elem}
		case 2:
			v, _ := f.int32()
			t.Nullability = Nullability(v)
		case 3:
			v, _ := f.varint()
			t.Variation = uint32(v)
		}
		return nil
	})
	return t, err
}

// MAP: key=1, value=2, nullability=3, type_variation_reference=4.
func decodeMap(raw []byte) (*Type, error) {
	t := &Type{Kind: TypeMap, Elements: make([]*Type, 2)}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 1:
			b, _ := f.bytes()
			key, err := DecodeType(b)
			if err != nil {
				return err
			}
			t.Elements[0] = key
		case 2:
			b, _ := f.bytes()
			val, err := DecodeType(b)
			if err != nil {
				return err
			}
			t.Elements[1] = val
		case 3:
			v, _ := f.int32()
			t.Nullability = Nullability(v)
		case 4:
			v, _ := f.varint()
			t.Variation = uint32(v)
		}
		return nil
	})
	return t, err
}

// user_defined: type_reference=1, nullability=2, type_variation_reference=3.
func decodeUserDefined(raw []byte) (*Type, error) {
	t := &Type{Kind: TypeUserDefined}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 1:
			v, _ := f.varint()
			t.UserDefinedRef = uint32(v)
		case 2:
			v, _ := f.int32()
			t.Nullability = Nullability(v)
		case 3:
			v, _ := f.varint()
			t.Variation = uint32(v)
		}
		return nil
	})
	return t, err
}
