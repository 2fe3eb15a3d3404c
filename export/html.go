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
	"fmt"
	"html"
	"strings"

	"github.com/substrait-io/substrait-validator-sub000/diag"
	"github.com/substrait-io/substrait-validator-sub000/tree"
)

// HTML renders t as a navigable HTML document (§4.7, §6.4): an outline of
// the tree nested by path, with each node's brief/summary and any
// diagnostics attached at its path shown inline. It is deliberately plain
// (nested <ul>/<li>, no JS) since the spec only asks for "human-navigable",
// not for a particular rendering framework.
func HTML(t *tree.Tree) []byte {
	diagsByPath := make(map[string][]diag.Diagnostic, len(t.Diagnostics))
	for _, d := range t.Diagnostics {
		p := d.Path.String()
		diagsByPath[p] = append(diagsByPath[p], d)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	b.WriteString("<title>Substrait plan validation</title></head><body>\n")
	fmt.Fprintf(&b, "<h1>Validation result: %s</h1>\n", html.EscapeString(t.Validity().String()))
	b.WriteString("<ul>\n")
	writeNode(&b, t.Root, diagsByPath)
	b.WriteString("</ul>\n")

	b.WriteString("<h2>All diagnostics</h2>\n<ol>\n")
	for _, p := range sortedPaths(countByPath(diagsByPath)) {
		for _, d := range diagsByPath[p] {
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(d.String()))
		}
	}
	b.WriteString("</ol>\n</body></html>\n")
	return []byte(b.String())
}

func countByPath(m map[string][]diag.Diagnostic) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = len(v)
	}
	return out
}

func writeNode(b *strings.Builder, n *tree.Node, diagsByPath map[string][]diag.Diagnostic) {
	if n == nil {
		return
	}
	b.WriteString("<li>")
	fmt.Fprintf(b, "<code>%s</code> <em>%s</em>", html.EscapeString(string(n.Kind)), html.EscapeString(n.Class))
	if !n.Recognized {
		b.WriteString(" <strong>(unrecognized)</strong>")
	}
	if n.DataType != nil {
		fmt.Fprintf(b, " : %s", html.EscapeString(n.DataType.String()))
	}
	if n.Brief != "" {
		fmt.Fprintf(b, "<br>%s", html.EscapeString(n.Brief))
	}
	if n.Summary != "" {
		fmt.Fprintf(b, "<br>%s", html.EscapeString(n.Summary))
	}
	if ds := diagsByPath[n.Path.String()]; len(ds) > 0 {
		b.WriteString("<ul class=\"diagnostics\">")
		for _, d := range ds {
			fmt.Fprintf(b, "<li>%s</li>", html.EscapeString(d.String()))
		}
		b.WriteString("</ul>")
	}
	if len(n.Children) > 0 {
		b.WriteString("<ul>")
		for _, c := range n.Children {
			writeNode(b, c, diagsByPath)
		}
		b.WriteString("</ul>")
	}
	b.WriteString("</li>\n")
}
