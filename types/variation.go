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

// Variation is an alternative physical representation of a type class: the
// implicit "system-preferred" variation every class has, or a reference to
// a user-defined type variation declaration (§3.4).
type Variation struct {
	systemPreferred bool
	ref             VariationRef
}

// SystemPreferredVariation returns the default variation, equal to
// "unspecified" per the GLOSSARY.
func SystemPreferredVariation() Variation { return Variation{systemPreferred: true} }

// NewVariation wraps a reference to a user-defined type variation.
func NewVariation(ref VariationRef) Variation { return Variation{ref: ref} }

// IsSystemPreferred reports whether this is the default variation.
func (v Variation) IsSystemPreferred() bool { return v.systemPreferred }

// Reference returns the wrapped reference; only meaningful if
// !IsSystemPreferred().
func (v Variation) Reference() VariationRef { return v.ref }

// Behavior returns the variation's function-behavior flag. The system
// preferred variation always inherits the base class's operations.
func (v Variation) Behavior() VariationBehavior {
	if v.systemPreferred || v.ref.Definition == nil {
		return Inherits
	}
	return v.ref.Definition.Behavior
}

// CompatibleWith reports whether a value using this variation may be used
// wherever a value of class `applied` (with the system-preferred variation)
// is expected, i.e. whether this variation inherits `applied`'s operations.
// An unresolved variation reference is treated as compatible, suppressing
// cascading diagnostics.
func (v Variation) CompatibleWith(applied Class) bool {
	if v.systemPreferred {
		return true
	}
	if !v.ref.Resolved() {
		return true
	}
	return v.Behavior() == Inherits && v.ref.Definition.Base.WeakEqual(applied)
}

// Equal compares variations for strict equality: both system-preferred, or
// both the same resolved reference.
func (v Variation) Equal(other Variation) bool {
	if v.systemPreferred != other.systemPreferred {
		return false
	}
	if v.systemPreferred {
		return true
	}
	return v.ref.Equal(other.ref)
}

// String implements fmt.Stringer.
func (v Variation) String() string {
	if v.systemPreferred {
		return "system-preferred"
	}
	return v.ref.String()
}
