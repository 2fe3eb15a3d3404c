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

import "github.com/substrait-io/substrait-validator-sub000/types"

// moduleResolver implements derivation.Resolver by searching a module's own
// namespaces first, then each already-resolved dependency module's public
// namespace, in declaration order. It is the loader-side counterpart of
// `rs/src/parse/extensions/simple/mod.rs`'s per-class variation/class
// resolution, generalized to the full class/variation surface that
// derivation-language type expressions can name.
type moduleResolver struct {
	self *types.Module
	deps []*types.Module
}

func (r *moduleResolver) ResolveClass(name string) (types.ClassRef, bool) {
	if res := r.self.Classes.ResolveLocal(name); len(res.Visible) == 1 {
		return types.NewReference[types.ClassDecl](r.self.URI, name).WithDefinition(res.Visible[0].Item), true
	}
	for _, dep := range r.deps {
		if res := dep.Classes.ResolvePublic(name); len(res.Visible) == 1 {
			return types.NewReference[types.ClassDecl](dep.URI, name).WithDefinition(res.Visible[0].Item), true
		}
	}
	return types.ClassRef{}, false
}

func (r *moduleResolver) ResolveVariation(name string) (types.VariationRef, bool) {
	if res := r.self.Variations.ResolveLocal(name); len(res.Visible) == 1 {
		return types.NewReference[types.VariationDecl](r.self.URI, name).WithDefinition(res.Visible[0].Item), true
	}
	for _, dep := range r.deps {
		if res := dep.Variations.ResolvePublic(name); len(res.Visible) == 1 {
			return types.NewReference[types.VariationDecl](dep.URI, name).WithDefinition(res.Visible[0].Item), true
		}
	}
	return types.VariationRef{}, false
}
