// Package model holds the in-memory source model shared by the engine and
// the synthesizers, plus the diagnostic vocabulary.
package model

import (
	"sort"
	"strings"

	"github.com/origadmin/recgen/internal/host"
)

// Severity of a diagnostic.
type Severity string

const (
	Error Severity = "ERROR"
	Note  Severity = "NOTE"
)

// Diagnostic is one reporter entry attached to a declaration node.
// Diagnostics never halt processing of sibling units.
type Diagnostic struct {
	Severity Severity
	Message  string
	Node     host.Node
}

// GeneratedMarker identifies generated source. The interface path strips it
// from the rendered text before the declaration rewrite runs.
const GeneratedMarker = "// Code generated by recgen. DO NOT EDIT."

// RewriteFunc transforms rendered interface-replacement source into the
// final value-type source.
type RewriteFunc func(string) string

// Import is a single import of a rendered artifact.
type Import struct {
	Alias string
	Path  string
}

// Artifact is a rendered-in-memory source model. It is produced by a
// synthesizer, rendered exactly once by the emitter, and never retained.
type Artifact struct {
	// Name is the simple name of the principal declaration.
	Name    string
	Imports []Import
	// Body holds source lines below the import block. Indentation is
	// written as tab units and re-expanded at render time.
	Body []string
}

// ValueTypeSet is the interface path's output: the value-type replacement
// artifact, the rewrite applied after marker stripping, and the companion
// builder when one was requested.
type ValueTypeSet struct {
	ValueType *Artifact
	Rewrite   RewriteFunc
	Builder   *Artifact
}

// Render produces the full source text of the artifact for the named output
// package, expanding tab units to indent and prepending the file comment
// when non-empty.
func (a *Artifact) Render(pkgName, indent, comment string) string {
	var b strings.Builder
	for _, line := range commentLines(comment) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(GeneratedMarker)
	b.WriteString("\n\n")
	b.WriteString("package ")
	b.WriteString(pkgName)
	b.WriteString("\n")
	if len(a.Imports) > 0 {
		b.WriteString("\nimport (\n")
		for _, imp := range sortedImports(a.Imports) {
			b.WriteString(expandIndent("\t", indent))
			if imp.Alias != "" && imp.Alias != baseSegment(imp.Path) {
				b.WriteString(imp.Alias)
				b.WriteString(" ")
			}
			b.WriteString(`"` + imp.Path + `"` + "\n")
		}
		b.WriteString(")\n")
	}
	for _, line := range a.Body {
		b.WriteString(expandIndent(line, indent))
		b.WriteString("\n")
	}
	return b.String()
}

// StripMarker removes the generated-source marker line from rendered text.
// Text without the marker is returned unchanged.
func StripMarker(text string) string {
	idx := strings.Index(text, GeneratedMarker)
	if idx < 0 {
		return text
	}
	end := idx + len(GeneratedMarker)
	for end < len(text) && text[end] == '\n' {
		end++
	}
	return text[:idx] + text[end:]
}

func commentLines(comment string) []string {
	if comment == "" {
		return nil
	}
	raw := strings.Split(strings.TrimRight(comment, "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, strings.TrimRight("// "+l, " "))
	}
	return lines
}

func sortedImports(imports []Import) []Import {
	out := make([]Import, len(imports))
	copy(out, imports)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func expandIndent(line, indent string) string {
	if indent == "\t" {
		return line
	}
	n := 0
	for n < len(line) && line[n] == '\t' {
		n++
	}
	return strings.Repeat(indent, n) + line[n:]
}

func baseSegment(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
