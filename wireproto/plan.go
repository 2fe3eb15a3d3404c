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

package wireproto

// RootRel is a decoded substrait.PlanRel's "root" variant: the plan's
// terminal relation plus the output column names it assigns.
type RootRel struct {
	Input *Rel
	Names []string
}

// PlanRel is a decoded substrait.PlanRel: either a standalone Rel or a
// RootRel (§3.1's "exactly one PlanRel may be a root, naming the plan's
// result relation").
type PlanRel struct {
	Rel  *Rel
	Root *RootRel
}

// Plan is the decoded form of a top-level substrait.Plan message: the
// extension URIs and declarations every anchor in the rest of the plan
// resolves against, and the list of relation trees (§3.1, §3.5).
type Plan struct {
	ExtensionURIs  []*ExtensionURI
	Extensions     []*ExtensionDecl
	Relations      []*PlanRel
	Version        []byte // opaque; only compared for presence, not parsed
}

const (
	fieldPlanExtensionURI = 1
	fieldPlanExtension    = 2
	fieldPlanRelation     = 4
	fieldPlanVersion      = 8
)

// DecodePlan decodes a substrait.Plan message.
func DecodePlan(raw []byte) (*Plan, error) {
	p := &Plan{}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case fieldPlanExtensionURI:
			b, _ := f.bytes()
			e, err := decodeExtensionURI(b)
			if err != nil {
				return err
			}
			p.ExtensionURIs = append(p.ExtensionURIs, e)
		case fieldPlanExtension:
			b, _ := f.bytes()
			d, err := decodeExtensionDecl(b)
			if err != nil {
				return err
			}
			p.Extensions = append(p.Extensions, d)
		case fieldPlanRelation:
			b, _ := f.bytes()
			pr, err := decodePlanRel(b)
			if err != nil {
				return err
			}
			p.Relations = append(p.Relations, pr)
		case fieldPlanVersion:
			b, _ := f.bytes()
			p.Version = b
		}
		return nil
	})
	return p, err
}

func decodePlanRel(raw []byte) (*PlanRel, error) {
	pr := &PlanRel{}
	err := forEachField(raw, func(f field) error {
		b, _ := f.bytes()
		switch f.num {
		case 1: // rel
			r, err := DecodeRel(b)
			if err != nil {
				return err
			}
			pr.Rel = r
		case 2: // root
			root, err := decodeRootRel(b)
			if err != nil {
				return err
			}
			pr.Root = root
		}
		return nil
	})
	return pr, err
}

func decodeRootRel(raw []byte) (*RootRel, error) {
	root := &RootRel{}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 1:
			b, _ := f.bytes()
			r, err := DecodeRel(b)
			if err != nil {
				return err
			}
			root.Input = r
		case 2:
			s, _ := f.str()
			root.Names = append(root.Names, s)
		}
		return nil
	})
	return root, err
}

// URIByAnchor looks up the URI registered under anchor, if any.
func (p *Plan) URIByAnchor(anchor uint32) (string, bool) {
	for _, e := range p.ExtensionURIs {
		if e.Anchor == anchor {
			return e.URI, true
		}
	}
	return "", false
}

// DeclByAnchor looks up the extension declaration registered under anchor
// and kind, if any.
func (p *Plan) DeclByAnchor(kind ExtensionDeclKind, anchor uint32) (*ExtensionDecl, bool) {
	for _, d := range p.Extensions {
		if d.Kind == kind && d.Anchor == anchor {
			return d, true
		}
	}
	return nil, false
}
