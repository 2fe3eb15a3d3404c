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

// Package tree implements the annotated tree the validator builds while
// walking a decoded Plan (§3.6): one Node per recognized protobuf message,
// carrying its node-type tag, semantic class, a brief/summary description
// pair, its derived data type (if the node denotes a typed value) and its
// children. The shape mirrors the per-leaf annotated-node idiom `ytypes`
// builds while walking a YANG-schema-driven GoStruct tree (see
// `ytypes/validate.go`'s per-node error/path bookkeeping), generalized from
// "validate a leaf against its schema" to "annotate a node with its derived
// type and a human-readable summary".
package tree

import (
	"github.com/substrait-io/substrait-validator-sub000/path"
	"github.com/substrait-io/substrait-validator-sub000/types"
)

// Kind tags the protobuf message (or logical grouping) a Node stands for.
// It is a plain string rather than a closed enum because the set of
// message names a plan can contain is open-ended (new relation/expression
// kinds), and a string tag is what ends up in export_proto/export_html
// anyway.
type Kind string

// Node is one annotated element of the parsed plan tree. A Node exists for
// every protobuf message this validator recognizes, whether or not it
// carries a derived type: an i32 literal and a FilterRel are both Nodes,
// only the former has a non-nil Type.
type Node struct {
	// Kind identifies what kind of thing this node represents. e.g.
	// "FilterRel", "Expression.ScalarFunction", "Type".
	Kind Kind
	// Class groups nodes for summary purposes, independent of Kind:
	// "relation", "expression", "type", "extension" (§3.6's "semantic
	// class").
	Class string
	// Path locates this node within the originating Plan message.
	Path path.Path
	// Brief is a short, single-line description suitable for an outline
	// view; Summary is a longer prose description including whatever this
	// node's diagnostics contributed. Both are produced by the validator as
	// it finishes annotating a node, not computed lazily here.
	Brief   string
	Summary string
	// DataType is this node's derived data type, if it denotes a typed
	// value (an Expression or a NamedStruct field); nil otherwise.
	DataType *types.Type
	// Recognized is false for a node the validator encountered but does not
	// implement a handler for (an unrecognized oneof variant, an
	// unsupported extension relation): its children, if any, are still
	// walked opaquely but contribute no semantic diagnostics beyond
	// NotYetImplemented.
	Recognized bool
	// Children are this node's child nodes in declaration order.
	Children []*Node
}

// New returns a Node with Recognized defaulted to true (the common case);
// callers building a placeholder for an unrecognized message should set it
// to false explicitly.
func New(kind Kind, class string, p path.Path) *Node {
	return &Node{Kind: kind, Class: class, Path: p, Recognized: true}
}

// AddChild appends child to n's children and returns it, for fluent
// construction while walking a relation/expression tree.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// Walk calls visit for n and every descendant, depth-first pre-order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}
