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

package loader

import (
	"strings"

	"github.com/substrait-io/substrait-validator-sub000/types"
)

// builtinClasses maps every built-in simple/compound type class's extension
// YAML spelling (lowercase, matching the keywords accepted by the
// derivation-language parser) to its types.Class, for resolving a type
// variation's "base" field without going through the derivation grammar.
var builtinClasses = map[string]types.Class{
	"boolean":       types.NewSimpleClass(types.Boolean),
	"i8":            types.NewSimpleClass(types.I8),
	"i16":           types.NewSimpleClass(types.I16),
	"i32":           types.NewSimpleClass(types.I32),
	"i64":           types.NewSimpleClass(types.I64),
	"fp32":          types.NewSimpleClass(types.FP32),
	"fp64":          types.NewSimpleClass(types.FP64),
	"string":        types.NewSimpleClass(types.StringClass),
	"binary":        types.NewSimpleClass(types.Binary),
	"timestamp":     types.NewSimpleClass(types.Timestamp),
	"timestamp_tz":  types.NewSimpleClass(types.TimestampTZ),
	"date":          types.NewSimpleClass(types.Date),
	"time":          types.NewSimpleClass(types.Time),
	"interval_year": types.NewSimpleClass(types.IntervalYear),
	"interval_day":  types.NewSimpleClass(types.IntervalDay),
	"uuid":          types.NewSimpleClass(types.UUID),

	"fixedchar":   types.NewCompoundClass(types.FixedChar),
	"varchar":     types.NewCompoundClass(types.VarChar),
	"fixedbinary": types.NewCompoundClass(types.FixedBinary),
	"decimal":     types.NewCompoundClass(types.Decimal),
	"struct":      types.NewCompoundClass(types.Struct),
	"nstruct":     types.NewCompoundClass(types.NStruct),
	"list":        types.NewCompoundClass(types.List),
	"map":         types.NewCompoundClass(types.Map),
}

func builtinClassByName(name string) (types.Class, bool) {
	c, ok := builtinClasses[strings.ToLower(name)]
	return c, ok
}
