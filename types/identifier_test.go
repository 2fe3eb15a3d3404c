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

import (
	"testing"

	"github.com/substrait-io/substrait-validator-sub000/path"
)

func TestIdentifierNameAndString(t *testing.T) {
	id := NewIdentifier("my_func")
	if name, ok := id.Name(); !ok || name != "my_func" {
		t.Errorf("Name() = (%q, %v), want (%q, true)", name, ok, "my_func")
	}
	if id.String() != "my_func" {
		t.Errorf("String() = %q, want %q", id.String(), "my_func")
	}
}

func TestIdentifierUnknownNameStringsAsQuestionMark(t *testing.T) {
	var id Identifier
	if _, ok := id.Name(); ok {
		t.Errorf("zero-value Identifier reports a known name")
	}
	if id.String() != "?" {
		t.Errorf("String() of a nameless Identifier = %q, want %q", id.String(), "?")
	}
}

func TestIdentifierWithAnchorPathIsImmutable(t *testing.T) {
	base := NewIdentifier("x")
	if _, ok := base.AnchorPath(); ok {
		t.Fatalf("fresh Identifier already has an anchor path")
	}
	withPath := base.WithAnchorPath(path.Root("extensions").Child(path.Index(0)))
	if _, ok := base.AnchorPath(); ok {
		t.Errorf("WithAnchorPath() mutated the receiver")
	}
	p, ok := withPath.AnchorPath()
	if !ok {
		t.Fatalf("WithAnchorPath() result has no anchor path")
	}
	if p.String() != "extensions/[0]" {
		t.Errorf("AnchorPath().String() = %q, want %q", p.String(), "extensions/[0]")
	}
}

func TestIdentifierEqualIgnoresAnchorPath(t *testing.T) {
	a := NewIdentifier("x").WithAnchorPath(path.Root("a"))
	b := NewIdentifier("x").WithAnchorPath(path.Root("b"))
	if !a.Equal(b) {
		t.Errorf("identifiers with the same name but different anchor paths should be Equal")
	}
	c := NewIdentifier("y")
	if a.Equal(c) {
		t.Errorf("identifiers with different names should not be Equal")
	}
}
