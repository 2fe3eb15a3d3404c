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

// Registry owns every Module fetched while validating a single plan, keyed
// by URI. A Reference never embeds a *Module directly for its back-link to
// the module it was resolved from: it carries the URI string instead
// (Reference.URI) and looks the module back up through a Registry on
// demand. That sidesteps the retain-cycle the design notes flag for a
// reference-counted implementation without needing a weak pointer at all -
// the Go idiom for "don't hold the big thing alive just to remember where
// you came from" is simply not to hold a pointer to it.
type Registry struct {
	modules map[string]*Module
	// order preserves first-seen URI order, so that iteration (e.g. when
	// re-exporting every fetched module) is deterministic rather than at
	// the mercy of Go's randomized map order.
	order []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*Module)}
}

// Get returns the module registered for uri, if any.
func (r *Registry) Get(uri string) (*Module, bool) {
	m, ok := r.modules[uri]
	return m, ok
}

// Ensure returns the module for uri, creating and registering an empty one
// if none exists yet. Used both when a fetch succeeds (the loader then
// populates the returned Module) and when a placeholder is needed for a URI
// that couldn't be fetched at all.
func (r *Registry) Ensure(uri string) *Module {
	if m, ok := r.modules[uri]; ok {
		return m
	}
	m := NewModule(uri)
	r.modules[uri] = m
	r.order = append(r.order, uri)
	return m
}

// URIs returns every registered URI in first-seen order.
func (r *Registry) URIs() []string {
	return append([]string(nil), r.order...)
}

// Modules returns every registered module in first-seen order.
func (r *Registry) Modules() []*Module {
	out := make([]*Module, 0, len(r.order))
	for _, uri := range r.order {
		out = append(out, r.modules[uri])
	}
	return out
}
