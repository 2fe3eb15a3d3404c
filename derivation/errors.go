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

package derivation

import (
	"fmt"

	"github.com/substrait-io/substrait-validator-sub000/diag"
)

// EvalError is the derivation package's counterpart to meta.EvalError: a
// runtime failure while running a compiled Program, classified so that the
// validator can turn it into a diagnostic without string-sniffing.
type EvalError struct {
	Classification diag.Classification
	Message        string
}

// Error implements the error interface.
func (e *EvalError) Error() string { return e.Message }

func invalidf(format string, args ...interface{}) *EvalError {
	return &EvalError{Classification: diag.DerivationInvalid, Message: fmt.Sprintf(format, args...)}
}

func failedf(format string, args ...interface{}) *EvalError {
	return &EvalError{Classification: diag.DerivationFailed, Message: fmt.Sprintf(format, args...)}
}

// ParseError reports a syntax problem found while compiling a derivation
// expression, tagged with the byte offset into the source string.
type ParseError struct {
	Offset  int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("derivation syntax error at offset %d: %s", e.Offset, e.Message)
}
