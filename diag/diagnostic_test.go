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

package diag

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/substrait-io/substrait-validator-sub000/path"
)

func TestCheck(t *testing.T) {
	p := path.Root("plan")
	tests := []struct {
		desc  string
		diags []Diagnostic
		want  Validity
	}{
		{desc: "no diagnostics", diags: nil, want: Valid},
		{
			desc: "info only",
			diags: []Diagnostic{
				New(NewCause(ProtoAny, "opaque relation"), Info, p),
			},
			want: Valid,
		},
		{
			desc: "warning present",
			diags: []Diagnostic{
				New(NewCause(LinkAmbiguousName, "x"), Warning, p),
			},
			want: MaybeValid,
		},
		{
			desc: "error wins over warning",
			diags: []Diagnostic{
				New(NewCause(LinkAmbiguousName, "x"), Warning, p),
				New(NewCause(ProtoMissingField, "y"), Error, p),
			},
			want: Invalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := Check(tt.diags); got != tt.want {
				t.Errorf("%s: Check() = %v, want %v\ndiff:\n%s", tt.desc, got, tt.want, pretty.Compare(got, tt.want))
			}
		})
	}
}

func TestDiagnosticString(t *testing.T) {
	d := New(NewCause(ProtoMissingField, "field %q is unset", "input"), Error, path.Root("plan").Child(path.Field("input")))
	want := `error at plan/input: a required protobuf field is missing: field "input" is unset (code 1001)`
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestOverriderAdjust(t *testing.T) {
	tests := []struct {
		desc       string
		overrides  map[Classification]LevelRange
		cause      Classification
		original   Level
		want       Level
	}{
		{
			desc:     "nil overrider passes through",
			cause:    ProtoMissingField,
			original: Error,
			want:     Error,
		},
		{
			desc:      "specific override clamps down",
			overrides: map[Classification]LevelRange{ProtoMissingField: {Min: Info, Max: Warning}},
			cause:     ProtoMissingField,
			original:  Error,
			want:      Warning,
		},
		{
			desc:      "unrelated classification unaffected by a specific override",
			overrides: map[Classification]LevelRange{ProtoMissingField: {Min: Info, Max: Warning}},
			cause:     ProtoMissingOneOf,
			original:  Error,
			want:      Error,
		},
		{
			desc:      "group-root override applies to every member",
			overrides: map[Classification]LevelRange{ProtobufShape: {Min: Info, Max: Info}},
			cause:     ProtoUnknownField,
			original:  Error,
			want:      Info,
		},
		{
			desc: "specific override takes priority over its group root",
			overrides: map[Classification]LevelRange{
				ProtobufShape:     {Min: Info, Max: Info},
				ProtoMissingField: {Min: Warning, Max: Error},
			},
			cause:    ProtoMissingField,
			original: Info,
			want:     Warning,
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			var o *Overrider
			if tt.overrides != nil {
				o = NewOverrider(tt.overrides)
			}
			if got := o.Adjust(tt.cause, tt.original); got != tt.want {
				t.Errorf("%s: Adjust() = %v, want %v", tt.desc, got, tt.want)
			}
		})
	}
}

func TestNewAdjustedTracksOriginalSeparately(t *testing.T) {
	o := NewOverrider(map[Classification]LevelRange{ProtoMissingField: {Min: Info, Max: Warning}})
	d := NewAdjusted(NewCause(ProtoMissingField, "x"), Error, path.Root("plan"), o)

	if d.Original != Error {
		t.Errorf("Original = %v, want %v (override must not mutate the recorded original level)", d.Original, Error)
	}
	if d.Adjusted != Warning {
		t.Errorf("Adjusted = %v, want %v", d.Adjusted, Warning)
	}
}
