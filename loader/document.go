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

// Package loader fetches and parses extension YAML documents (§4.4),
// compiles their derivation expressions, and assembles each into a
// types.Module registered by URI. It plays the role `ygen`'s YANG module
// loader plays for the teacher, generalized to Substrait's own extension
// document shape; YAML decoding itself follows MacroPower-x's use of
// `github.com/goccy/go-yaml` (see DESIGN.md).
package loader

// document is the top-level shape of an extension YAML file, matching the
// substrait extension schema's root object.
type document struct {
	Dependencies       []dependencyDecl    `yaml:"dependencies"`
	Types              []typeClassDecl     `yaml:"types"`
	TypeVariations     []typeVariationDecl `yaml:"type_variations"`
	ScalarFunctions    []functionDecl      `yaml:"scalar_functions"`
	AggregateFunctions []functionDecl      `yaml:"aggregate_functions"`
	WindowFunctions    []functionDecl      `yaml:"window_functions"`
}

type dependencyDecl struct {
	Name string `yaml:"name"`
	URI  string `yaml:"import"`
}

type typeClassDecl struct {
	Name string `yaml:"name"`
}

type typeVariationDecl struct {
	Name      string `yaml:"name"`
	Base      string `yaml:"base"`
	Behavior  string `yaml:"functions"` // "MIRRORS" (Inherits) or "SEPARATE"
	Structure string `yaml:"structure"`
}

type functionDecl struct {
	Name      string         `yaml:"name"`
	Overloads []overloadDecl `yaml:"impls"`
}

type overloadDecl struct {
	Args     []argDecl         `yaml:"args"`
	Variadic *variadicDecl     `yaml:"variadic"`
	Return   string            `yaml:"return"`
	Options  map[string]string `yaml:"options"`
}

type argDecl struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type variadicDecl struct {
	Min int `yaml:"min"`
}
