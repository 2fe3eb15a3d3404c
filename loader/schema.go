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

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// documentSchema is the fixed JSON Schema an extension YAML document must
// conform to, independent of whatever this package's own Go structs accept.
// Schema validation is deliberately non-fatal (§4.4): a document that fails
// it still gets parsed into the best types.Module this package can build,
// with a YamlSchemaValidationFailed diagnostic recording the complaint,
// rather than aborting the whole fetch.
var documentSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"dependencies": {
			Type: "array",
			Items: &jsonschema.Schema{
				Type:     "object",
				Required: []string{"import"},
				Properties: map[string]*jsonschema.Schema{
					"name":   {Type: "string"},
					"import": {Type: "string"},
				},
			},
		},
		"types": {
			Type: "array",
			Items: &jsonschema.Schema{
				Type:     "object",
				Required: []string{"name"},
				Properties: map[string]*jsonschema.Schema{
					"name": {Type: "string"},
				},
			},
		},
		"type_variations": {
			Type: "array",
			Items: &jsonschema.Schema{
				Type:     "object",
				Required: []string{"name", "base"},
				Properties: map[string]*jsonschema.Schema{
					"name":      {Type: "string"},
					"base":      {Type: "string"},
					"functions": {Type: "string", Enum: []any{"MIRRORS", "SEPARATE"}},
					"structure": {Type: "string"},
				},
			},
		},
		"scalar_functions":    functionListSchema(),
		"aggregate_functions": functionListSchema(),
		"window_functions":    functionListSchema(),
	},
}

func functionListSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "array",
		Items: &jsonschema.Schema{
			Type:     "object",
			Required: []string{"name", "impls"},
			Properties: map[string]*jsonschema.Schema{
				"name": {Type: "string"},
				"impls": {
					Type: "array",
					Items: &jsonschema.Schema{
						Type:     "object",
						Required: []string{"return"},
						Properties: map[string]*jsonschema.Schema{
							"args": {
								Type: "array",
								Items: &jsonschema.Schema{
									Type: "object",
									Properties: map[string]*jsonschema.Schema{
										"name":  {Type: "string"},
										"value": {Type: "string"},
									},
								},
							},
							"variadic": {
								Type: "object",
								Properties: map[string]*jsonschema.Schema{
									"min": {Type: "integer"},
								},
							},
							"return": {Type: "string"},
							"options": {
								Type: "object",
							},
						},
					},
				},
			},
		},
	}
}

// resolvedDocumentSchema is computed lazily: jsonschema.Schema.Resolve does
// real work (ref-following, format compilation) that's wasteful to redo on
// every Load call for a schema that never changes shape.
var resolvedDocumentSchema *jsonschema.Resolved

func validateAgainstSchema(ctx context.Context, doc any) error {
	if resolvedDocumentSchema == nil {
		r, err := documentSchema.Resolve(nil)
		if err != nil {
			return fmt.Errorf("internal extension schema is invalid: %w", err)
		}
		resolvedDocumentSchema = r
	}
	return resolvedDocumentSchema.Validate(doc)
}
