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

package export

import (
	"strings"

	"github.com/substrait-io/substrait-validator-sub000/tree"
)

// Diagnostics flattens t's diagnostics into §6.4's export_diagnostics wire
// format: UTF-8, one diagnostic per line, each rendered by
// diag.Diagnostic.String ("Level at <path>: <description>: <message> (code
// NNNN)"), in the tree's emission order.
func Diagnostics(t *tree.Tree) []byte {
	var b strings.Builder
	for _, d := range t.Diagnostics {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
