package synth

import (
	"fmt"
	"strings"

	"github.com/origadmin/recgen/internal/host"
	"github.com/origadmin/recgen/internal/model"
)

// valueTypeSuffix names the value type generated for an interface.
const valueTypeSuffix = "Record"

// InterfaceSynthesizer rewrites a capability interface into a concrete
// immutable value type, optionally with a companion builder.
type InterfaceSynthesizer struct{}

// NewInterfaceSynthesizer creates an InterfaceSynthesizer.
func NewInterfaceSynthesizer() *InterfaceSynthesizer {
	return &InterfaceSynthesizer{}
}

// ValueType synthesizes the value-type replacement for an interface
// declaration: a struct with one component per capability method, a
// constructor, and the accessor methods that satisfy the interface. The
// returned rewrite transform appends the compile-time satisfaction check
// once the emitter has stripped the generated-source marker. With addBuilder
// set, the companion builder for the synthesized value type is included.
func (s *InterfaceSynthesizer) ValueType(node host.Node, outputNS string, addBuilder bool) (*model.ValueTypeSet, error) {
	comps, err := node.Components()
	if err != nil {
		return nil, err
	}
	ifaceNS, ifaceName := splitQualified(node.QualifiedName())
	recName := ifaceName + valueTypeSuffix

	im := NewImportManager(outputNS)
	ifaceRef := im.TypeRef(ifaceNS, ifaceName)

	fields := make([]field, 0, len(comps))
	for _, c := range comps {
		fields = append(fields, field{
			name:      fieldName(c.Name),
			component: c.Name,
			typ:       im.Qualify(c.Type),
		})
	}

	var b body
	b.linef("// %s is an immutable value type derived from %s.", recName, ifaceRef)
	b.linef("type %s struct {", recName)
	for _, f := range alignFields(fields) {
		b.linef("\t%s", f)
	}
	b.linef("}")
	b.blank()

	b.linef("// New%s constructs a %s from its components.", recName, recName)
	b.linef("func New%s(%s) %s {", recName, paramList(fields), recName)
	if len(fields) == 0 {
		b.linef("\treturn %s{}", recName)
	} else {
		b.linef("\treturn %s{", recName)
		for _, f := range fields {
			b.linef("\t\t%s: %s,", f.name, f.name)
		}
		b.linef("\t}")
	}
	b.linef("}")

	for _, f := range fields {
		b.blank()
		b.linef("// %s returns the %s component.", f.component, f.component)
		b.linef("func (r %s) %s() %s {", recName, f.component, f.typ)
		b.linef("\treturn r.%s", f.name)
		b.linef("}")
	}

	assertion := fmt.Sprintf("var _ %s = %s{}", ifaceRef, recName)
	rewrite := func(src string) string {
		return strings.TrimRight(src, "\n") + "\n\n" + assertion + "\n"
	}

	set := &model.ValueTypeSet{
		ValueType: &model.Artifact{
			Name:    recName,
			Imports: im.Imports(),
			Body:    b.lines,
		},
		Rewrite: rewrite,
	}
	if addBuilder {
		// The record lives in the output namespace itself, so its builder
		// reaches it without qualification.
		set.Builder = builderArtifact(recName, outputNS, comps, outputNS, true)
	}
	return set, nil
}

func paramList(fields []field) string {
	params := make([]string, 0, len(fields))
	for _, f := range fields {
		params = append(params, f.name+" "+f.typ)
	}
	return strings.Join(params, ", ")
}
