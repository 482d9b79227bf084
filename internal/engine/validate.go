package engine

import (
	"github.com/origadmin/recgen/internal/host"
)

// checkKind confirms node's classified kind matches the directive's
// requirement, reporting msg as an ERROR at node on mismatch. Kinds compare
// by symbolic name, so a kind this build does not know about simply never
// matches instead of crashing the round.
func (e *Engine) checkKind(node host.Node, want host.Kind, msg string) bool {
	if string(node.Kind()) == string(want) {
		return true
	}
	e.errorf(node, "%s", msg)
	return false
}
