// Package directive defines the recgen generation directives: their stable
// qualified identities, their attribute surface, and the scanner that
// discovers them in a loaded package.
package directive

import (
	"strings"

	"github.com/origadmin/recgen/internal/host"
)

// Kind is the stable qualified identity of a generation directive. Dispatch
// compares identities exactly; Unknown exists only as a defensive fallback
// and is never produced by the scanner.
type Kind string

const (
	Builder          Kind = "recgen.Builder"
	BuilderInclude   Kind = "recgen.Builder.Include"
	Interface        Kind = "recgen.Interface"
	InterfaceInclude Kind = "recgen.Interface.Include"
	Unknown          Kind = "recgen.Unknown"
)

// IsInclude reports whether the directive applies generation to externally
// referenced declarations.
func (k Kind) IsInclude() bool {
	return k == BuilderInclude || k == InterfaceInclude
}

// Values holds the raw attribute values attached to one fired directive.
type Values map[string]string

// Targets returns the semicolon-separated target references of an include
// directive. Nil when the attribute is absent or carries nothing.
func (v Values) Targets() []string {
	raw, ok := v["targets"]
	if !ok {
		return nil
	}
	var refs []string
	for _, part := range strings.Split(raw, ";") {
		if part = strings.TrimSpace(part); part != "" {
			refs = append(refs, part)
		}
	}
	return refs
}

// Pattern returns the output namespace pattern, defaulting to "*".
func (v Values) Pattern() string {
	raw, ok := v["pattern"]
	if !ok {
		return "*"
	}
	return raw
}

// AddBuilder reports whether the interface path should also produce a
// builder. Defaults to true when the attribute is absent.
func (v Values) AddBuilder() bool {
	return v["builder"] != "false"
}

// Fired is one directive occurrence in a round: the directive kind, the
// element it is attached to, and its attribute values. Attrs is nil when the
// attribute block on the source line could not be parsed.
type Fired struct {
	Kind  Kind
	On    host.Node
	Attrs Values
}

// Round groups the directives that fired in one compilation round by kind.
type Round map[Kind][]Fired
