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

// Package path implements value-typed, comparable locations within a parsed
// plan tree. Paths are built up incrementally as the traversal engine walks
// into fields, repeated elements, oneof variants and array entries, and are
// attached to every diagnostic and cross-reference so that a consumer can
// locate the offending node in the exported tree.
package path

import (
	"bytes"
	"fmt"
)

// Kind discriminates the element variants a Path can be built from.
type Kind int

const (
	// KindField selects a named, singular protobuf field.
	KindField Kind = iota
	// KindRepeated selects the element at Index within a repeated protobuf
	// field named Name.
	KindRepeated
	// KindOneOf selects the variant named Variant of the oneof field Name.
	KindOneOf
	// KindIndex selects the element at Index within an array that is not
	// itself a protobuf repeated field (e.g. a YAML sequence).
	KindIndex
)

// Element is a single step of a Path.
type Element struct {
	kind    Kind
	name    string
	variant string
	index   int
}

// Field constructs a named-field path element.
func Field(name string) Element { return Element{kind: KindField, name: name} }

// Repeated constructs a repeated-field path element.
func Repeated(name string, index int) Element {
	return Element{kind: KindRepeated, name: name, index: index}
}

// OneOf constructs a oneof-variant path element.
func OneOf(name, variant string) Element {
	return Element{kind: KindOneOf, name: name, variant: variant}
}

// Index constructs an array-index path element.
func Index(index int) Element {
	return Element{kind: KindIndex, index: index}
}

// Kind reports which variant this element is.
func (e Element) Kind() Kind { return e.kind }

// Name returns the field/oneof name. It is empty for Index elements.
func (e Element) Name() string { return e.name }

// Variant returns the selected oneof variant name. It is only meaningful
// for OneOf elements.
func (e Element) Variant() string { return e.variant }

// Index returns the zero-based index. It is only meaningful for Repeated
// and Index elements.
func (e Element) Index() int { return e.index }

// String renders an element the way export_diagnostics does, e.g. "foo",
// "bar[3]", "baz{quux}", "[2]".
func (e Element) String() string {
	switch e.kind {
	case KindField:
		return e.name
	case KindRepeated:
		return fmt.Sprintf("%s[%d]", e.name, e.index)
	case KindOneOf:
		return fmt.Sprintf("%s{%s}", e.name, e.variant)
	case KindIndex:
		return fmt.Sprintf("[%d]", e.index)
	default:
		return "?"
	}
}

// Path is an ordered, comparable sequence of Elements rooted at a named
// document. Paths are immutable; Child returns a new Path and never mutates
// the receiver's backing array.
type Path struct {
	root     string
	elements []Element
}

// Root constructs the empty path for a document identified by root, e.g.
// "plan" for the top-level Substrait Plan message or the URI of an
// extension YAML document.
func Root(root string) Path {
	return Path{root: root}
}

// RootTag returns the opaque root document identifier.
func (p Path) RootTag() string { return p.root }

// Elements returns the path elements in root-to-leaf order. The returned
// slice must not be mutated by the caller.
func (p Path) Elements() []Element { return p.elements }

// Child returns a new Path with e appended.
func (p Path) Child(e Element) Path {
	out := make([]Element, len(p.elements)+1)
	copy(out, p.elements)
	out[len(p.elements)] = e
	return Path{root: p.root, elements: out}
}

// Len returns the number of elements (excluding the root tag).
func (p Path) Len() int { return len(p.elements) }

// Equal reports whether p and q denote the same location.
func (p Path) Equal(q Path) bool {
	if p.root != q.root || len(p.elements) != len(q.elements) {
		return false
	}
	for i := range p.elements {
		if p.elements[i] != q.elements[i] {
			return false
		}
	}
	return true
}

// String renders the path as "root/elem1/elem2/..." matching the
// "at <path>" clause of export_diagnostics lines.
func (p Path) String() string {
	var buf bytes.Buffer
	buf.WriteString(p.root)
	for _, e := range p.elements {
		buf.WriteByte('/')
		buf.WriteString(e.String())
	}
	return buf.String()
}
