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
	"fmt"

	"github.com/substrait-io/substrait-validator-sub000/path"
)

// Cause pairs a Classification with a formatted, instance-specific message.
type Cause struct {
	Classification Classification
	Message        string
}

// NewCause formats a message with args and pairs it with c, mirroring
// fmt.Errorf's argument handling.
func NewCause(c Classification, format string, args ...interface{}) Cause {
	return Cause{Classification: c, Message: fmt.Sprintf(format, args...)}
}

// String implements fmt.Stringer.
func (c Cause) String() string {
	return fmt.Sprintf("%s: %s", c.Classification.Description(), c.Message)
}

// Diagnostic is a single finding attached to a Path in the annotated tree.
type Diagnostic struct {
	Cause    Cause
	Original Level
	Adjusted Level
	Path     path.Path
}

// New constructs a Diagnostic whose Adjusted level starts out equal to
// Original; callers that have an Overrider should use NewAdjusted instead.
func New(cause Cause, level Level, p path.Path) Diagnostic {
	return Diagnostic{Cause: cause, Original: level, Adjusted: level, Path: p}
}

// NewAdjusted constructs a Diagnostic with its Adjusted level computed by o
// (which may be nil, in which case Adjusted == Original).
func NewAdjusted(cause Cause, level Level, p path.Path, o *Overrider) Diagnostic {
	return Diagnostic{Cause: cause, Original: level, Adjusted: o.Adjust(cause.Classification, level), Path: p}
}

// String renders a single export_diagnostics line:
// "Level at <path>: <classification description>: <message> (code NNNN)".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at %s: %s: %s (code %04d)",
		d.Adjusted, d.Path, d.Cause.Classification.Description(), d.Cause.Message, d.Cause.Classification.Code())
}

// Validity is the overall verdict computed from a set of diagnostics.
type Validity int

const (
	// Valid means no diagnostic at Warning or Error level is present.
	Valid Validity = iota
	// MaybeValid means at least one Warning is present but no Error.
	MaybeValid
	// Invalid means at least one Error is present.
	Invalid
)

// String implements fmt.Stringer.
func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case MaybeValid:
		return "maybe-valid"
	case Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("Validity(%d)", int(v))
	}
}

// Check computes the overall Validity of a set of diagnostics, using each
// diagnostic's Adjusted level.
func Check(diags []Diagnostic) Validity {
	result := Valid
	for _, d := range diags {
		switch d.Adjusted {
		case Error:
			return Invalid
		case Warning:
			result = MaybeValid
		}
	}
	return result
}
