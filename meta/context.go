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

package meta

// Context carries the binding table live during a single Match/Evaluate
// walk. It is copy-on-write: Fork returns a Context that shares the parent's
// bindings until the first write, so that covers() (§4.3's builtin, which
// must not leak bindings into the enclosing context) can try a match and
// discard the result cheaply.
type Context struct {
	bindings map[string]Value
	// parent is non-nil for a forked context; Lookup falls through to it for
	// names this context has not bound itself.
	parent *Context
}

// NewContext returns an empty binding context.
func NewContext() *Context {
	return &Context{}
}

// Fork returns a child Context sharing ctx's bindings. Writes to the child
// (via Bind) do not affect ctx; reads fall through to ctx for names the
// child hasn't bound itself.
func (ctx *Context) Fork() *Context {
	return &Context{parent: ctx}
}

// Lookup returns the value bound to name and whether it was found, checking
// the local bindings first and then the parent chain.
func (ctx *Context) Lookup(name string) (Value, bool) {
	for c := ctx; c != nil; c = c.parent {
		if c.bindings != nil {
			if v, ok := c.bindings[name]; ok {
				return v, true
			}
		}
	}
	return nil, false
}

// Bind records that name is bound to v in this Context (not its parent).
// Bind should only be called for a name that Lookup has not already found;
// callers that need "first match captures, subsequent matches require
// equality" semantics must call Lookup first (see Match for Binding).
func (ctx *Context) Bind(name string, v Value) {
	if ctx.bindings == nil {
		ctx.bindings = make(map[string]Value)
	}
	ctx.bindings[name] = v
}
