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

// Package diag defines the classification codes, diagnostic causes, and
// level-override machinery used across the validator. It has no dependency
// on the rest of the module so that every other package can depend on it.
package diag

import "fmt"

// Classification is a stable, enumerated diagnostic code. Codes whose value
// is divisible by 1000 are "group roots": they do not describe a concrete
// diagnostic on their own, but classify a family of diagnostics for the
// purpose of level-override configuration (see Overrider).
type Classification struct {
	code        int
	name        string
	description string
	groupDesc   string
}

// Code returns the numeric classification code.
func (c Classification) Code() int { return c.code }

// Name returns the stable identifier of the classification, e.g.
// "ProtoMissingField".
func (c Classification) Name() string { return c.name }

// Description returns a human-readable description of this specific
// classification.
func (c Classification) Description() string { return c.description }

// Group returns the group-root classification that this classification
// belongs to. A group root is its own group.
func (c Classification) Group() Classification {
	root := (c.code / 1000) * 1000
	if g, ok := byCode[root]; ok {
		return g
	}
	return c
}

// IsGroupRoot reports whether c is a group root (code divisible by 1000).
func (c Classification) IsGroupRoot() bool { return c.code%1000 == 0 }

// GroupDescription returns the description of the group this classification
// belongs to, used to explain an adjusted diagnostic level to a reader.
func (c Classification) GroupDescription() string {
	return c.Group().groupDesc
}

// String renders "Name (code NNNN)".
func (c Classification) String() string {
	return fmt.Sprintf("%s (code %04d)", c.name, c.code)
}

var byCode = map[int]Classification{}
var byName = map[string]Classification{}

func register(code int, name, description string) Classification {
	c := Classification{code: code, name: name, description: description}
	if _, dup := byCode[code]; dup {
		panic(fmt.Sprintf("diag: duplicate classification code %d", code))
	}
	byCode[code] = c
	byName[name] = c
	return c
}

func registerGroup(code int, name, description, groupDesc string) Classification {
	c := register(code, name, description)
	c.groupDesc = groupDesc
	byCode[code] = c
	return c
}

// FromCode looks up a Classification by its numeric code. The second return
// value is false if no classification with that code has been registered.
func FromCode(code int) (Classification, bool) {
	c, ok := byCode[code]
	return c, ok
}

// FromName looks up a Classification by its stable name.
func FromName(name string) (Classification, bool) {
	c, ok := byName[name]
	return c, ok
}

// Group roots. Each root's description is used as the GroupDescription for
// every classification inside it.
var (
	Unclassified       = registerGroup(0, "Unclassified", "an uncategorized diagnostic", "uncategorized diagnostics")
	ProtobufShape       = registerGroup(1000, "ProtobufShape", "a malformed or incomplete protobuf message", "protobuf message shape problems")
	YamlShape           = registerGroup(2000, "YamlShape", "a malformed extension YAML document", "extension YAML document shape problems")
	LinkResolution      = registerGroup(3000, "LinkResolution", "a failure to resolve an extension reference", "extension/URI link resolution problems")
	TypeSystem          = registerGroup(4000, "TypeSystem", "a data-type or meta-type inconsistency", "type system problems")
	RelationStructure   = registerGroup(5000, "RelationStructure", "a malformed relational operator", "relation structure problems")
	ExpressionStructure = registerGroup(6000, "ExpressionStructure", "a malformed scalar or aggregate expression", "expression structure problems")
	Redundant           = registerGroup(9000, "Redundant", "a construct that has no effect", "advisory / redundant-construct diagnostics")
)

// Specific classifications.
var (
	NotYetImplemented = register(1, "NotYetImplemented", "this construct is recognized but not yet validated")

	ProtoMissingField  = register(1001, "ProtoMissingField", "a required protobuf field is missing")
	ProtoMissingOneOf  = register(1002, "ProtoMissingOneOf", "a required oneof field has no variant selected")
	ProtoAny           = register(1003, "ProtoAny", "a protobuf Any value was encountered without an explicit allowance")
	ProtoUnknownField  = register(1004, "ProtoUnknownField", "an unrecognized protobuf field was set to a non-default value")

	YamlParseFailed            = register(2001, "YamlParseFailed", "the extension document is not well-formed YAML")
	YamlSchemaValidationFailed = register(2002, "YamlSchemaValidationFailed", "the extension document does not conform to the extension schema")
	YamlMissingField           = register(2003, "YamlMissingField", "a required field is missing from an extension declaration")

	LinkMissingAnchor                = register(3001, "LinkMissingAnchor", "an anchor was referenced that was never declared")
	LinkAmbiguousName                = register(3002, "LinkAmbiguousName", "a name resolved to more than one candidate")
	LinkCompoundVsSimpleFunctionName = register(3003, "LinkCompoundVsSimpleFunctionName", "a simple function name was used where multiple overloads exist")
	LinkResolutionFailed             = register(3004, "LinkResolutionFailed", "the resolver chain failed to fetch a referenced URI")
	LinkUnresolvedReference          = register(3005, "LinkUnresolvedReference", "a reference could not be resolved to any declaration")
	LinkDepthExceeded                = register(3006, "LinkDepthExceeded", "transitive URI resolution exceeded the configured depth limit")

	TypeMismatch            = register(4001, "TypeMismatch", "an operand's data type did not match what was expected")
	TypeMismatchedParameters = register(4002, "TypeMismatchedParameters", "a type parameter violated a class invariant")
	TypeUnknown             = register(4003, "TypeUnknown", "a data type could not be derived")
	DerivationInvalid       = register(4004, "DerivationInvalid", "a derivation program's pattern did not match its arguments")
	DerivationFailed        = register(4005, "DerivationFailed", "a derivation program failed at evaluation time")

	RelationRootMissing     = register(5001, "RelationRootMissing", "the plan has no root relation")
	NamedTableInvalidName   = register(5002, "NamedTableInvalidName", "a named table reference has an unsupported number of name segments")
	RelationSchemaMismatch  = register(5003, "RelationSchemaMismatch", "a relation's declared schema does not match its derived schema")

	ExpressionFieldRefMissingStream = register(6001, "ExpressionFieldRefMissingStream", "a field reference pointed outside the current schema")
	ExpressionInvalidLiteral        = register(6002, "ExpressionInvalidLiteral", "a literal expression is malformed for its declared type")

	RedundantCast = register(9001, "RedundantCast", "a cast to the operand's own type has no effect")
)
