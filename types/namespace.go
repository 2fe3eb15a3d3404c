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
	"fmt"
	"strings"

	"github.com/derekparker/trie"
)

// Namespace is a case-insensitive mapping from name to a list of members
// (homonyms permitted), as described in §3.5. It never uses "latest wins"
// semantics: defining a second member under a name already in use appends
// to that name's member list rather than replacing it, and it is up to the
// caller to turn a multi-member resolution into a diagnostic.
//
// Periods in a looked-up name are ambiguous between "part of this
// identifier" and "namespace separator": resolution tries the name as a
// whole *and*, for every period it contains, as a namespace-qualified
// lookup (see resolveInternal). This mirrors
// rs/src/output/extension/namespace.rs's Definition<T>, generic in Go over
// the declaration type T (*ClassDecl, *VariationDecl, *FunctionDecl).
type Namespace[T any] struct {
	members map[string][]member[T]
	// names indexes the lowercased member names for fast "did you mean"
	// suggestions (see Suggest); it does not participate in resolution
	// itself, which still walks members directly as the spec describes.
	names *trie.Trie
}

type memberKind int

const (
	memberItem memberKind = iota
	memberNested
	memberUnresolvedNested
)

type member[T any] struct {
	kind         memberKind
	item         *T
	nested       *Namespace[T]
	originalName string
	public       bool
}

// NewNamespace returns an empty Namespace.
func NewNamespace[T any]() *Namespace[T] {
	return &Namespace[T]{members: make(map[string][]member[T]), names: trie.New()}
}

// DefineItem defines a leaf item under name. If a conflicting name already
// exists, the new item is appended rather than replacing it; callers that
// care about collisions must resolve the name first.
func (ns *Namespace[T]) DefineItem(name string, item *T, public bool) {
	ns.push(name, member[T]{kind: memberItem, item: item, originalName: name, public: public})
}

// DefineNested registers a fully-resolved nested namespace under name.
func (ns *Namespace[T]) DefineNested(name string, nested *Namespace[T], public bool) {
	ns.push(name, member[T]{kind: memberNested, nested: nested, originalName: name, public: public})
}

// DefinePlaceholder registers a nested namespace under name whose contents
// are not yet known (e.g. because the URI it lives behind hasn't been
// fetched, or the configured resolution depth was exceeded).
func (ns *Namespace[T]) DefinePlaceholder(name string, public bool) {
	ns.push(name, member[T]{kind: memberUnresolvedNested, originalName: name, public: public})
}

func (ns *Namespace[T]) push(name string, m member[T]) {
	key := strings.ToLower(name)
	ns.members[key] = append(ns.members[key], m)
	if _, found := ns.names.Find(key); !found {
		ns.names.Add(key, true)
	}
}

// Suggest returns up to limit member names sharing prefix (case-insensitive),
// for use in "did you mean" diagnostic text.
func (ns *Namespace[T]) Suggest(prefix string, limit int) []string {
	matches := ns.names.PrefixSearch(strings.ToLower(prefix))
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// NamedMember is one entry of a ResolutionResult: either a leaf item or a
// (possibly still-unresolved) nested namespace, under its fully qualified
// original-case name as encountered during resolution.
type NamedMember[T any] struct {
	Name   string
	Item   *T
	Nested *Namespace[T]
}

// IsNamespace reports whether this member is a nested namespace rather than
// a leaf item.
func (m NamedMember[T]) IsNamespace() bool { return m.Item == nil }

// ResolutionResult is the outcome of resolving a name within a Namespace,
// partitioned into visible and invisible members (§3.5).
type ResolutionResult[T any] struct {
	Visible             []NamedMember[T]
	VisibleIncomplete   bool
	Invisible           []NamedMember[T]
	InvisibleIncomplete bool
}

// String summarizes the result the way export_diagnostics wants to phrase
// an ambiguous- or missing-name message.
func (r ResolutionResult[T]) String() string {
	switch {
	case r.VisibleIncomplete && len(r.Visible) == 0:
		return "no known matching definitions, namespace not fully resolved"
	case r.VisibleIncomplete:
		return fmt.Sprintf("%d or more matching definitions", len(r.Visible))
	case len(r.Visible) == 0:
		return "no matching definitions"
	case len(r.Visible) == 1:
		return "one matching definition"
	default:
		return fmt.Sprintf("%d matching definitions", len(r.Visible))
	}
}

// visibility implements the visibility rule from namespace.rs: everything
// defined locally (no namespace prefix needed to reach it) is visible to a
// local lookup; otherwise an item is visible only if every namespace on the
// path to it, and the item itself, is public (or there was no prefix to
// begin with).
func visibility(local, withPrefix, prefixPublic, referencePublic bool) bool {
	if local && !withPrefix {
		return true
	}
	return (prefixPublic || !withPrefix) && referencePublic
}

func (ns *Namespace[T]) resolveInternal(target *ResolutionResult[T], local bool, prefix string, hasPrefix bool, suffix string, prefixPublic bool) {
	if refs, ok := ns.members[strings.ToLower(suffix)]; ok {
		for _, m := range refs {
			originalName := m.originalName
			if hasPrefix {
				originalName = prefix + "." + m.originalName
			}
			visible := visibility(local, hasPrefix, prefixPublic, m.public)
			nm := NamedMember[T]{Name: originalName, Item: m.item, Nested: m.nested}
			if m.kind == memberUnresolvedNested {
				if visible {
					target.VisibleIncomplete = true
				} else {
					target.InvisibleIncomplete = true
				}
				continue
			}
			if visible {
				target.Visible = append(target.Visible, nm)
			} else {
				target.Invisible = append(target.Invisible, nm)
			}
		}
	}

	for i := 0; i < len(suffix); i++ {
		if suffix[i] != '.' {
			continue
		}
		namespaceName := suffix[:i]
		newSuffix := suffix[i+1:]
		refs, ok := ns.members[strings.ToLower(namespaceName)]
		if !ok {
			continue
		}
		for _, m := range refs {
			switch m.kind {
			case memberItem:
				continue
			case memberNested:
				newPrefix := m.originalName
				if hasPrefix {
					newPrefix = prefix + "." + m.originalName
				}
				m.nested.resolveInternal(target, local, newPrefix, true, newSuffix, prefixPublic && m.public)
			case memberUnresolvedNested:
				visible := visibility(local, hasPrefix, prefixPublic, m.public)
				if visible {
					target.VisibleIncomplete = true
				} else {
					target.InvisibleIncomplete = true
				}
			}
		}
	}
}

// ResolveLocal resolves name as seen from inside this namespace: private
// members are visible.
func (ns *Namespace[T]) ResolveLocal(name string) ResolutionResult[T] {
	var r ResolutionResult[T]
	ns.resolveInternal(&r, true, "", false, name, true)
	return r
}

// ResolvePublic resolves name as seen from outside this namespace: private
// members, and anything reachable only through a private intermediate
// namespace, are hidden.
func (ns *Namespace[T]) ResolvePublic(name string) ResolutionResult[T] {
	var r ResolutionResult[T]
	ns.resolveInternal(&r, false, "", false, name, true)
	return r
}
