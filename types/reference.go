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

import "fmt"

// Reference binds an Identifier to the URI it was looked up in, and
// optionally to a resolved definition of type T (a *ClassDecl, *VariationDecl
// or *FunctionDecl). References are equality-compared by (URI, name);
// unresolved references compare unequal to everything, including each
// other, since two unresolved names might turn out to name different things
// once resolution actually succeeds.
type Reference[T any] struct {
	URI        string
	ID         Identifier
	Definition *T
}

// NewReference constructs an unresolved Reference for name within uri.
func NewReference[T any](uri, name string) Reference[T] {
	return Reference[T]{URI: uri, ID: NewIdentifier(name)}
}

// Resolved reports whether this reference carries a resolved Definition.
func (r Reference[T]) Resolved() bool { return r.Definition != nil }

// WithDefinition returns a copy of r with its Definition set.
func (r Reference[T]) WithDefinition(def *T) Reference[T] {
	r.Definition = def
	return r
}

// Equal implements the (uri, name) equality rule from §3.5. Two unresolved
// references are never equal to each other, matching the "pessimistic"
// comparison the spec calls for.
func (r Reference[T]) Equal(other Reference[T]) bool {
	if !r.Resolved() || !other.Resolved() {
		return false
	}
	return r.URI == other.URI && r.ID.Equal(other.ID)
}

// String renders "uri#name" for diagnostics.
func (r Reference[T]) String() string {
	return fmt.Sprintf("%s#%s", r.URI, r.ID.String())
}
