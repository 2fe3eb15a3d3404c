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

// Module is everything declared by a single fetched extension YAML document
// (§3.5): its three name-spaced declaration kinds, the set of URIs it
// depends on (for cycle/depth bookkeeping), and the running counter used to
// mint anchor numbers for its own declarations when the validator exports a
// plan that re-embeds them.
type Module struct {
	URI string

	Classes    *Namespace[ClassDecl]
	Variations *Namespace[VariationDecl]
	Functions  *Namespace[FunctionDecl]

	// Dependencies lists the URIs this module's "dependencies" block names,
	// in declaration order, for depth-limited transitive resolution (§6.3).
	Dependencies []string

	// nextAnchor hands out anchor numbers for re-exporting this module's own
	// declarations; it never needs to match the anchors used by the plan
	// that originally referenced this module; see Registry.
	nextAnchor uint32
}

// NewModule returns an empty Module for the given URI.
func NewModule(uri string) *Module {
	return &Module{
		URI:        uri,
		Classes:    NewNamespace[ClassDecl](),
		Variations: NewNamespace[VariationDecl](),
		Functions:  NewNamespace[FunctionDecl](),
	}
}

// NextAnchor returns a fresh, module-local anchor number and advances the
// counter.
func (m *Module) NextAnchor() uint32 {
	m.nextAnchor++
	return m.nextAnchor
}

// AddDependency records uri as one of this module's declared dependencies,
// if it isn't already present.
func (m *Module) AddDependency(uri string) {
	for _, d := range m.Dependencies {
		if d == uri {
			return
		}
	}
	m.Dependencies = append(m.Dependencies, uri)
}
