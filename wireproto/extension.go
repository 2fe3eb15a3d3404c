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

// ExtensionURI is a decoded SimpleExtensionURI: an anchor number the rest
// of the plan uses to refer to a fetched extension document's URI, without
// repeating the URI string at every use site (§3.5's anchor model).
type ExtensionURI struct {
	Anchor uint32
	URI    string
}

// ExtensionDeclKind discriminates which of SimpleExtensionDeclaration's
// three oneof variants (type/type_variation/function) this declaration is.
type ExtensionDeclKind int

const (
	ExtensionDeclType ExtensionDeclKind = iota
	ExtensionDeclTypeVariation
	ExtensionDeclFunction
)

// ExtensionDecl is a decoded SimpleExtensionDeclaration: an anchor naming
// one class/variation/function inside the extension document referenced
// by ExtensionURIReference.
type ExtensionDecl struct {
	Kind                  ExtensionDeclKind
	ExtensionURIReference uint32
	Anchor                uint32
	Name                  string
}

func decodeExtensionURI(raw []byte) (*ExtensionURI, error) {
	e := &ExtensionURI{}
	err := forEachField(raw, func(f field) error {
		switch f.num {
		case 1:
			v, _ := f.varint()
			e.Anchor = uint32(v)
		case 2:
			s, _ := f.str()
			e.URI = s
		}
		return nil
	})
	return e, err
}

// decodeExtensionDecl decodes a SimpleExtensionDeclaration, whose oneof
// field numbers (extension_type=1, extension_type_variation=2,
// extension_function=3) each wrap a nested message of shape
// {uint32 extension_uri_reference; uint32 (type|type_variation|function)_anchor; string name;}.
func decodeExtensionDecl(raw []byte) (*ExtensionDecl, error) {
	d := &ExtensionDecl{}
	err := forEachField(raw, func(f field) error {
		var kind ExtensionDeclKind
		switch f.num {
		case 1:
			kind = ExtensionDeclType
		case 2:
			kind = ExtensionDeclTypeVariation
		case 3:
			kind = ExtensionDeclFunction
		default:
			return nil
		}
		d.Kind = kind
		b, _ := f.bytes()
		return forEachField(b, func(inner field) error {
			switch inner.num {
			case 1:
				v, _ := inner.varint()
				d.ExtensionURIReference = uint32(v)
			case 2:
				v, _ := inner.varint()
				d.Anchor = uint32(v)
			case 3:
				s, _ := inner.str()
				d.Name = s
			}
			return nil
		})
	})
	return d, err
}
