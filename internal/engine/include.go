package engine

import (
	"github.com/origadmin/recgen/internal/config"
	"github.com/origadmin/recgen/internal/directive"
)

// processInclude expands one include directive into generation calls against
// the declarations it references. Each target is processed independently and
// strictly in list order; a failure on one target never affects the ones
// after it.
func (e *Engine) processInclude(kind directive.Kind, f directive.Fired, gen *config.Generation) {
	if f.Attrs == nil {
		e.errorf(f.On, "could not resolve directive for %s", string(kind))
		return
	}
	targets := f.Attrs.Targets()
	if len(targets) == 0 {
		e.errorf(f.On, "could not resolve target list for %s", string(kind))
		return
	}
	pattern := f.Attrs.Pattern()

	for _, ref := range targets {
		target, err := e.targets.ResolveTarget(ref)
		if err != nil || target == nil {
			if err != nil {
				e.errorf(f.On, "could not resolve included target %q: %v", ref, err)
			} else {
				e.errorf(f.On, "could not resolve included target %q", ref)
			}
			continue
		}
		ns, ok := e.buildNamespaceName(pattern, f.On, target)
		if !ok {
			// resolveEnclosingNamespace already reported the failure.
			continue
		}
		if kind == directive.InterfaceInclude {
			e.generateInterface(target, f.Attrs.AddBuilder(), ns, gen)
		} else {
			e.generateBuilder(target, ns, gen)
		}
	}
}
