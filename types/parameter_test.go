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

	"github.com/substrait-io/substrait-validator-sub000/meta"
)

func TestParameterIsNull(t *testing.T) {
	if !UnnamedParameter(nil).IsNull() {
		t.Errorf("UnnamedParameter(nil).IsNull() = false, want true")
	}
	if UnnamedParameter(meta.IntValue(1)).IsNull() {
		t.Errorf("UnnamedParameter(1).IsNull() = true, want false")
	}
}

func TestParameterEqualIgnoresNameWhenAbsent(t *testing.T) {
	named := NamedParameter("length", meta.IntValue(5))
	unnamed := UnnamedParameter(meta.IntValue(5))
	if !named.Equal(unnamed) {
		t.Errorf("a named and an unnamed parameter with the same value should be Equal")
	}
}

func TestParameterEqualRequiresMatchingNamesWhenBothNamed(t *testing.T) {
	a := NamedParameter("length", meta.IntValue(5))
	b := NamedParameter("precision", meta.IntValue(5))
	if a.Equal(b) {
		t.Errorf("two differently-named parameters with the same value should not be Equal")
	}
}

func TestParameterEqualDifferentValues(t *testing.T) {
	a := UnnamedParameter(meta.IntValue(5))
	b := UnnamedParameter(meta.IntValue(6))
	if a.Equal(b) {
		t.Errorf("parameters with different values should not be Equal")
	}
}

func TestParameterEqualBothNull(t *testing.T) {
	if !UnnamedParameter(nil).Equal(UnnamedParameter(nil)) {
		t.Errorf("two null parameters should be Equal")
	}
	if UnnamedParameter(nil).Equal(UnnamedParameter(meta.IntValue(1))) {
		t.Errorf("a null parameter should not equal a non-null one")
	}
}

func TestParameterString(t *testing.T) {
	if got, want := NamedParameter("length", meta.IntValue(5)).String(), "length: 5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := UnnamedParameter(meta.IntValue(5)).String(), "5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := UnnamedParameter(nil).String(), "null"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
