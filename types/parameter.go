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

	"github.com/substrait-io/substrait-validator-sub000/meta"
)

// Parameter is one slot of a parameterized data type: an optional name plus
// an optional meta value. A nil Value models Substrait's "optional
// parameter explicitly absent" case (e.g. an unspecified DECIMAL precision
// in a partially-constrained function signature).
type Parameter struct {
	Name  string
	named bool
	Value meta.Value
}

// UnnamedParameter constructs a Parameter with no name.
func UnnamedParameter(v meta.Value) Parameter { return Parameter{Value: v} }

// NamedParameter constructs a Parameter carrying a field name (used by
// NSTRUCT).
func NamedParameter(name string, v meta.Value) Parameter {
	return Parameter{Name: name, named: true, Value: v}
}

// HasName reports whether this parameter carries a name.
func (p Parameter) HasName() bool { return p.named }

// IsNull reports whether this parameter's value is the explicit-absent
// sentinel.
func (p Parameter) IsNull() bool { return p.Value == nil }

// String renders the parameter the way export_proto/export_diagnostics
// would.
func (p Parameter) String() string {
	val := "null"
	if p.Value != nil {
		val = p.Value.String()
	}
	if p.named {
		return fmt.Sprintf("%s: %s", p.Name, val)
	}
	return val
}

// Equal compares two parameters by value only; per §3.3's invariant,
// equality of data-type values ignores parameter *name* when a name is
// absent on either side. When both sides do carry a name, the names must
// also match.
func (p Parameter) Equal(other Parameter) bool {
	if p.named && other.named && p.Name != other.Name {
		return false
	}
	if p.Value == nil || other.Value == nil {
		return p.Value == nil && other.Value == nil
	}
	if p.Value.MetaType() != other.Value.MetaType() {
		return false
	}
	return p.Value.Equal(other.Value)
}
