// Package synth builds the companion artifacts the engine emits: mutable
// builders mirroring struct value types, and value-type replacements for
// capability interfaces.
package synth

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/origadmin/recgen/internal/host"
	"github.com/origadmin/recgen/internal/model"
)

// BuilderSynthesizer produces the mutable companion builder for an immutable
// value type.
type BuilderSynthesizer struct{}

// NewBuilderSynthesizer creates a BuilderSynthesizer.
func NewBuilderSynthesizer() *BuilderSynthesizer {
	return &BuilderSynthesizer{}
}

// Builder synthesizes the builder artifact for a struct declaration,
// targeted at the outputNS namespace. Component values are copied through
// the struct's exported fields.
func (s *BuilderSynthesizer) Builder(node host.Node, outputNS string) (*model.Artifact, error) {
	comps, err := node.Components()
	if err != nil {
		return nil, err
	}
	ns, name := splitQualified(node.QualifiedName())
	return builderArtifact(name, ns, comps, outputNS, false), nil
}

// builderArtifact assembles the builder source model. With viaAccessors set,
// component values are read through niladic accessor methods and the value
// is assembled through its generated constructor instead of a composite
// literal; that is the shape of interface-derived value types.
func builderArtifact(valueName, valueNS string, comps []host.Component, outputNS string, viaAccessors bool) *model.Artifact {
	im := NewImportManager(outputNS)
	valueRef := im.TypeRef(valueNS, valueName)
	builderName := valueName + "Builder"

	fields := make([]field, 0, len(comps))
	for _, c := range comps {
		fields = append(fields, field{
			name:      fieldName(c.Name),
			component: c.Name,
			typ:       im.Qualify(c.Type),
		})
	}

	var b body
	b.linef("// %s is a mutable builder for %s values.", builderName, valueRef)
	b.linef("type %s struct {", builderName)
	for _, f := range alignFields(fields) {
		b.linef("\t%s", f)
	}
	b.linef("}")
	b.blank()

	b.linef("// New%s returns an empty builder.", builderName)
	b.linef("func New%s() *%s {", builderName, builderName)
	b.linef("\treturn &%s{}", builderName)
	b.linef("}")
	b.blank()

	b.linef("// %sToBuilder seeds a builder with the components of v.", valueName)
	b.linef("func %sToBuilder(v %s) *%s {", valueName, valueRef, builderName)
	b.linef("\tb := New%s()", builderName)
	for _, f := range fields {
		if viaAccessors {
			b.linef("\tb.%s = v.%s()", f.name, f.component)
		} else {
			b.linef("\tb.%s = v.%s", f.name, f.component)
		}
	}
	b.linef("\treturn b")
	b.linef("}")

	for _, f := range fields {
		b.blank()
		b.linef("// %s sets the %s component.", f.component, f.component)
		b.linef("func (b *%s) %s(v %s) *%s {", builderName, f.component, f.typ, builderName)
		b.linef("\tb.%s = v", f.name)
		b.linef("\treturn b")
		b.linef("}")
	}

	b.blank()
	b.linef("// Build assembles the immutable %s value.", valueRef)
	b.linef("func (b *%s) Build() %s {", builderName, valueRef)
	if viaAccessors {
		args := make([]string, 0, len(fields))
		for _, f := range fields {
			args = append(args, "b."+f.name)
		}
		ctorRef := im.TypeRef(valueNS, "New"+valueName)
		b.linef("\treturn %s(%s)", ctorRef, strings.Join(args, ", "))
	} else if len(fields) == 0 {
		b.linef("\treturn %s{}", valueRef)
	} else {
		b.linef("\treturn %s{", valueRef)
		for _, f := range fields {
			b.linef("\t\t%s: b.%s,", f.component, f.name)
		}
		b.linef("\t}")
	}
	b.linef("}")

	return &model.Artifact{
		Name:    builderName,
		Imports: im.Imports(),
		Body:    b.lines,
	}
}

type field struct {
	name      string // unexported builder field
	component string // exported component name
	typ       string
}

// fieldName lowers a component name for use as a builder field, stepping
// around Go keywords.
func fieldName(component string) string {
	if component == "" {
		return component
	}
	name := strings.ToLower(component[:1]) + component[1:]
	if token.IsKeyword(name) {
		name += "_"
	}
	return name
}

// alignFields renders struct field declarations with aligned types.
func alignFields(fields []field) []string {
	width := 0
	for _, f := range fields {
		if len(f.name) > width {
			width = len(f.name)
		}
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, fmt.Sprintf("%-*s %s", width, f.name, f.typ))
	}
	return out
}

// body accumulates tab-indented source lines.
type body struct {
	lines []string
}

func (b *body) linef(format string, args ...any) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

func (b *body) blank() {
	b.lines = append(b.lines, "")
}
