// Package host wraps the compiler's symbol model behind a narrow interface.
// The engine only ever sees kind classification, the enclosing-node chain,
// qualified names, and declaration components; everything else about the
// underlying representation stays on this side of the boundary.
package host

// Kind classifies a declaration node. Kinds are string-valued so callers can
// compare symbolic names; a kind an older host does not produce simply never
// matches.
type Kind string

const (
	KindPackage   Kind = "PACKAGE"
	KindStruct    Kind = "STRUCT"
	KindInterface Kind = "INTERFACE"
	KindOther     Kind = "OTHER"
)

// Component is one named component of a declaration: an exported struct
// field, or the value behind a niladic interface method.
type Component struct {
	Name string
	Type string // fully qualified type string, e.g. "github.com/x/y.Role"
}

// Node is a handle into the host symbol model.
type Node interface {
	Kind() Kind
	// Enclosing returns the directly enclosing node, or nil at the end of
	// the chain. Chains are finite and acyclic.
	Enclosing() Node
	QualifiedName() string
	// Components lists the named components of a struct or interface
	// declaration. It fails for nodes that have none, and for interfaces
	// whose methods do not fit the capability shape (no parameters, one
	// result).
	Components() ([]Component, error)
}
