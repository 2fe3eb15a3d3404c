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

// Package types implements the data-type model (§3.4) and the extension
// resolution model (§3.5) in a single package. The two are grounded on
// genuinely mutually-recursive Rust modules in the original implementation
// (data::Class::UserDefined holds an extension reference, while a type
// variation's declaration needs to name the data::Class it extends and a
// function's argument patterns are built from data types); Go has no
// equivalent of same-crate, cross-module recursive visibility, so rather
// than force an artificial one-directional split (which would need a
// trick like generic opaque tokens threaded through a third package just to
// satisfy the compiler) the two halves are kept as one package, the way
// go/types itself bundles Type, Object, Scope and Package together for the
// same reason. See DESIGN.md.
package types

import (
	"fmt"

	"github.com/substrait-io/substrait-validator-sub000/path"
)

// Identifier records the name used to refer to an extension member,
// preserving the reference's original case convention, plus (if the name is
// also abstracted by an anchor number in the plan) the anchor's defining
// path. It is retained even when resolution fails, so that diagnostics can
// still report what the user wrote.
type Identifier struct {
	name       string
	hasName    bool
	anchorPath path.Path
	hasAnchor  bool
}

// NewIdentifier returns an Identifier with the given original-case name.
func NewIdentifier(name string) Identifier {
	return Identifier{name: name, hasName: true}
}

// Name returns the identifier's name and whether one is known.
func (id Identifier) Name() (string, bool) { return id.name, id.hasName }

// AnchorPath returns the path to the node that defined this identifier's
// anchor, if known.
func (id Identifier) AnchorPath() (path.Path, bool) {
	return id.anchorPath, id.hasAnchor
}

// WithAnchorPath returns a copy of id with its anchor-defining path set.
func (id Identifier) WithAnchorPath(p path.Path) Identifier {
	id.anchorPath = p
	id.hasAnchor = true
	return id
}

// String renders the identifier's name, or "?" if unknown.
func (id Identifier) String() string {
	if !id.hasName {
		return "?"
	}
	return id.name
}

// Equal compares identifiers by name only (anchor path is provenance, not
// identity).
func (id Identifier) Equal(other Identifier) bool {
	return id.hasName == other.hasName && id.name == other.name
}

var _ fmt.Stringer = Identifier{}
