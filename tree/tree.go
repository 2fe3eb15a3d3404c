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

package tree

import "github.com/substrait-io/substrait-validator-sub000/diag"

// Tree is the complete annotated tree produced by one traversal of a Plan:
// its Root node, plus every diagnostic accumulated along the way. A node
// itself carries no diagnostics directly (§3.6 describes diagnostics as
// living alongside the tree, addressed by Path); Tree is what correlates
// the two for iteration and export.
type Tree struct {
	Root        *Node
	Diagnostics []diag.Diagnostic
}

// NewTree wraps root and diags into a Tree.
func NewTree(root *Node, diags []diag.Diagnostic) *Tree {
	return &Tree{Root: root, Diagnostics: diags}
}

// ByPath indexes t's nodes by their Path.String() rendering, for tests and
// exporters that need random access instead of a full Walk.
func (t *Tree) ByPath() map[string]*Node {
	index := make(map[string]*Node)
	if t.Root == nil {
		return index
	}
	t.Root.Walk(func(n *Node) {
		index[n.Path.String()] = n
	})
	return index
}

// Validity computes the tree's overall validity from its diagnostics'
// Adjusted levels (§4.1).
func (t *Tree) Validity() diag.Validity {
	return diag.Check(t.Diagnostics)
}
