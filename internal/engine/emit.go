package engine

import (
	"io"
	"strings"

	"github.com/origadmin/recgen/internal/config"
	"github.com/origadmin/recgen/internal/host"
	"github.com/origadmin/recgen/internal/model"
)

// emit renders an artifact and commits it under ns. The artifact is owned by
// this call and not retained afterwards.
func (e *Engine) emit(node host.Node, ns string, art *model.Artifact, gen *config.Generation) {
	text := art.Render(packageName(ns, art.Name), gen.FileIndent, gen.FileComment)
	e.commit(node, fullyQualifiedName(ns, art.Name), text)
}

// emitRewritten handles the interface path: render the replacement artifact,
// strip the generated-source marker, apply the declaration rewrite to the
// remaining text, and commit the rewritten text.
func (e *Engine) emitRewritten(node host.Node, ns string, art *model.Artifact, rewrite model.RewriteFunc, gen *config.Generation) {
	text := art.Render(packageName(ns, art.Name), gen.FileIndent, gen.FileComment)
	text = model.StripMarker(text)
	if rewrite != nil {
		text = rewrite(text)
	}
	e.commit(node, fullyQualifiedName(ns, art.Name), text)
}

// commit writes text to the sink exactly once, releasing the sink handle on
// every exit path. Any open or write failure is reported at node and stays
// local to this artifact.
func (e *Engine) commit(node host.Node, fqName, text string) {
	w, err := e.sink.Create(fqName)
	if err != nil {
		e.reportWriteError(node, err)
		return
	}
	_, werr := io.WriteString(w, text)
	cerr := w.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		e.reportWriteError(node, werr)
	}
}

func (e *Engine) reportWriteError(node host.Node, err error) {
	msg := "Could not create source file"
	if err != nil && err.Error() != "" {
		msg += ": " + err.Error()
	}
	e.errorf(node, "%s", msg)
}

// fullyQualifiedName joins a namespace and a simple name; the simple name
// stands alone when the namespace is empty.
func fullyQualifiedName(ns, simpleName string) string {
	if ns == "" {
		return simpleName
	}
	return ns + "." + simpleName
}

// packageName derives the output package clause name from a namespace: its
// last '/'- or '.'-delimited segment. An empty namespace falls back to the
// lowercased artifact name.
func packageName(ns, artifactName string) string {
	if i := strings.LastIndexAny(ns, "./"); i >= 0 {
		ns = ns[i+1:]
	}
	if ns == "" {
		return strings.ToLower(artifactName)
	}
	return ns
}
