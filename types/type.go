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

package types

import (
	"fmt"
	"strings"

	"github.com/substrait-io/substrait-validator-sub000/diag"
	"github.com/substrait-io/substrait-validator-sub000/meta"
)

// Type is an immutable data type: a class, nullability, variation and
// parameter list (§3.4). Once constructed (via New, which enforces the
// class-specific parameter invariants), a Type never changes; equal
// sub-structure may be freely shared between Types.
type Type struct {
	class      Class
	nullable   bool
	variation  Variation
	parameters []Parameter
}

// ConstructError reports a class invariant violation caught by New.
type ConstructError struct {
	Cause diag.Cause
}

// Error implements the error interface.
func (e *ConstructError) Error() string { return e.Cause.Message }

func mismatch(format string, args ...interface{}) *ConstructError {
	return &ConstructError{Cause: diag.NewCause(diag.TypeMismatchedParameters, format, args...)}
}

// New constructs a Type, validating class-specific parameter invariants
// (§3.4's table). An unresolved class accepts any parameter list, so that
// error recovery doesn't cascade.
func New(class Class, nullable bool, variation Variation, params []Parameter) (Type, error) {
	if err := checkParameters(class, params); err != nil {
		return Type{}, err
	}
	if !variation.IsSystemPreferred() && variation.Reference().Resolved() {
		if !variation.Reference().Definition.Base.WeakEqual(class) {
			return Type{}, mismatch("variation %s is not derived from class %s", variation, class)
		}
	}
	return Type{class: class, nullable: nullable, variation: variation, parameters: append([]Parameter(nil), params...)}, nil
}

// MustNew is New, panicking on error; intended for tests and for building
// the small set of well-known built-in types (simple classes never fail).
func MustNew(class Class, nullable bool, variation Variation, params []Parameter) Type {
	t, err := New(class, nullable, variation, params)
	if err != nil {
		panic(err)
	}
	return t
}

// NewSimple is a convenience constructor for an unparameterized simple type.
func NewSimple(s SimpleClass, nullable bool) Type {
	return MustNew(NewSimpleClass(s), nullable, SystemPreferredVariation(), nil)
}

func checkParameters(class Class, params []Parameter) error {
	switch class.Kind() {
	case ClassUnresolved:
		return nil
	case ClassSimple:
		if len(params) != 0 {
			return mismatch("simple types cannot be parameterized")
		}
		return nil
	case ClassCompound:
		return checkCompoundParameters(class.Compound(), params)
	case ClassUserDefined:
		// User-defined type classes carry no parameter shape of their own
		// in this core (see ClassDecl); any parameter list is accepted.
		return nil
	}
	return nil
}

func normalParam(describe string, p Parameter) (meta.Value, error) {
	if p.HasName() {
		return nil, mismatch("%s does not support naming", describe)
	}
	if p.Value == nil {
		return nil, mismatch("%s is mandatory", describe)
	}
	return p.Value, nil
}

func checkCompoundParameters(c CompoundClass, params []Parameter) error {
	switch c {
	case FixedChar, VarChar, FixedBinary:
		if len(params) != 1 {
			return mismatch("%s expects a single parameter (length)", c)
		}
		v, err := normalParam(fmt.Sprintf("%s length parameter", c), params[0])
		if err != nil {
			return err
		}
		length, ok := v.(meta.IntValue)
		if !ok {
			return mismatch("%s length parameter must be a positive integer", c)
		}
		const minLength, maxLength = 1, 2147483647
		if int64(length) < minLength || int64(length) > maxLength {
			return mismatch("%s length %d is out of range %d..%d", c, int64(length), minLength, maxLength)
		}
	case Decimal:
		if len(params) != 2 {
			return mismatch("%s expects two parameters (precision and scale)", c)
		}
		pv, err := normalParam(fmt.Sprintf("%s precision parameter", c), params[0])
		if err != nil {
			return err
		}
		precision, ok := pv.(meta.IntValue)
		if !ok {
			return mismatch("%s precision parameter must be a positive integer", c)
		}
		const minPrecision, maxPrecision = 1, 38
		if int64(precision) < minPrecision || int64(precision) > maxPrecision {
			return mismatch("%s precision %d is out of range %d..%d", c, int64(precision), minPrecision, maxPrecision)
		}
		sv, err := normalParam(fmt.Sprintf("%s scale parameter", c), params[1])
		if err != nil {
			return err
		}
		scale, ok := sv.(meta.IntValue)
		if !ok {
			return mismatch("%s scale parameter must be a positive integer", c)
		}
		if int64(scale) < 0 || int64(scale) > int64(precision) {
			return mismatch("%s scale %d is out of range 0..%d", c, int64(scale), int64(precision))
		}
	case Struct:
		for _, p := range params {
			if p.HasName() {
				return mismatch("%s parameters do not support naming (did you mean to use NSTRUCT?)", c)
			}
			if p.Value == nil {
				return mismatch("%s parameters are mandatory and must be types", c)
			}
			if _, ok := p.Value.(Type); !ok {
				return mismatch("%s parameters are mandatory and must be types", c)
			}
		}
	case NStruct:
		seen := make(map[string]bool, len(params))
		for _, p := range params {
			if !p.HasName() || p.Value == nil {
				return mismatch("%s parameters are mandatory and must be name-type pairs", c)
			}
			if _, ok := p.Value.(Type); !ok {
				return mismatch("%s parameters are mandatory and must be name-type pairs", c)
			}
			if seen[p.Name] {
				return mismatch("duplicate field name in %s: %s", c, p.Name)
			}
			seen[p.Name] = true
		}
	case List:
		if len(params) != 1 {
			return mismatch("%s expects a single parameter (element type)", c)
		}
		v, err := normalParam(fmt.Sprintf("%s element type parameter", c), params[0])
		if err != nil {
			return err
		}
		if _, ok := v.(Type); !ok {
			return mismatch("%s element type parameter must be a type", c)
		}
	case Map:
		if len(params) != 2 {
			return mismatch("%s expects two parameters (key type and value type)", c)
		}
		kv, err := normalParam(fmt.Sprintf("%s key type parameter", c), params[0])
		if err != nil {
			return err
		}
		if _, ok := kv.(Type); !ok {
			return mismatch("%s key type parameter must be a type", c)
		}
		vv, err := normalParam(fmt.Sprintf("%s value type parameter", c), params[1])
		if err != nil {
			return err
		}
		if _, ok := vv.(Type); !ok {
			return mismatch("%s value type parameter must be a type", c)
		}
	}
	return nil
}

// Class returns the type's class.
func (t Type) Class() Class { return t.class }

// Nullable reports whether this type admits the null value.
func (t Type) Nullable() bool { return t.nullable }

// Variation returns the type's variation.
func (t Type) Variation() Variation { return t.variation }

// Parameters returns the type's parameter list. The returned slice must not
// be mutated.
func (t Type) Parameters() []Parameter { return t.parameters }

// WithNullable returns a copy of t with its nullability replaced.
func (t Type) WithNullable(nullable bool) Type {
	t.nullable = nullable
	return t
}

// MetaType implements meta.Value: a Type is itself the carrier for the
// "typename" meta-type, so that concrete data types can be bound and
// compared through a meta.Context without this package needing a separate
// wrapper value.
func (t Type) MetaType() meta.Type { return meta.TypeName }

// Equal implements meta.Value and the plain data-type equality used
// elsewhere: classes must match exactly (not just weakly), nullability and
// variation must match, and parameters must pairwise match per
// Parameter.Equal's naming rule.
func (t Type) Equal(other meta.Value) bool {
	o, ok := other.(Type)
	if !ok {
		return false
	}
	if !t.class.Equal(o.class) || t.nullable != o.nullable || !t.variation.Equal(o.variation) {
		return false
	}
	if len(t.parameters) != len(o.parameters) {
		return false
	}
	for i := range t.parameters {
		if !t.parameters[i].Equal(o.parameters[i]) {
			return false
		}
	}
	return true
}

// String renders the type in Substrait's surface syntax, e.g.
// "DECIMAL?<38,0>" or "LIST<i32>".
func (t Type) String() string {
	var b strings.Builder
	b.WriteString(t.class.String())
	if t.nullable {
		b.WriteByte('?')
	}
	if !t.variation.IsSystemPreferred() {
		b.WriteString("[")
		b.WriteString(t.variation.String())
		b.WriteString("]")
	}
	if len(t.parameters) > 0 || t.class.HasParameters() && len(t.parameters) > 0 {
		b.WriteString("<")
		for i, p := range t.parameters {
			if i != 0 {
				b.WriteString(",")
			}
			b.WriteString(p.String())
		}
		b.WriteString(">")
	}
	return b.String()
}
