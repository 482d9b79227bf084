package engine

import (
	"strings"

	"github.com/origadmin/recgen/internal/host"
)

// resolveEnclosingNamespace ascends node's enclosing chain and returns the
// qualified name of the nearest package node. The walk is iterative; chains
// are finite but arbitrarily deep. A chain that ends without a package node
// yields one ERROR at node and an unresolvable result.
func (e *Engine) resolveEnclosingNamespace(node host.Node) (string, bool) {
	for cur := node; cur != nil; cur = cur.Enclosing() {
		if cur.Kind() == host.KindPackage {
			return cur.QualifiedName(), true
		}
	}
	e.errorf(node, "element has no enclosing namespace")
	return "", false
}

// buildNamespaceName renders the output namespace for target from pattern.
// Every '*' expands to the target's enclosing namespace and every '@' to the
// host element's namespace: the element itself when it denotes a package,
// its enclosing namespace otherwise. Both tokens are substituted in a single
// pass, so neither replacement can affect the other.
func (e *Engine) buildNamespaceName(pattern string, hostEl, target host.Node) (string, bool) {
	targetNS, ok := e.resolveEnclosingNamespace(target)
	if !ok {
		return "", false
	}
	hostNS := hostEl.QualifiedName()
	if hostEl.Kind() != host.KindPackage {
		if hostNS, ok = e.resolveEnclosingNamespace(hostEl); !ok {
			return "", false
		}
	}
	return strings.NewReplacer("*", targetNS, "@", hostNS).Replace(pattern), true
}
