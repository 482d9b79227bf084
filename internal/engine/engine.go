// Package engine is the directive resolution and emission-orchestration
// core: it identifies which directive fired on which element, expands
// include directives into batches of external targets, validates declaration
// kinds, and commits synthesized artifacts to the emission sink. Every
// recoverable failure is reported as a diagnostic on the offending node and
// never disturbs unrelated elements or targets in the same round.
package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/origadmin/recgen/internal/config"
	"github.com/origadmin/recgen/internal/directive"
	"github.com/origadmin/recgen/internal/host"
	"github.com/origadmin/recgen/internal/model"
)

// Reporter accepts diagnostics. Implementations append and never fail
// observably.
type Reporter interface {
	Report(d model.Diagnostic)
}

// Sink hands out exactly-once-openable text sinks keyed by fully qualified
// output name.
type Sink interface {
	Create(fqName string) (io.WriteCloser, error)
}

// TargetResolver resolves an include target reference to a declaration node.
type TargetResolver interface {
	ResolveTarget(ref string) (host.Node, error)
}

// ConfigLoader loads a fresh generation configuration for one element.
type ConfigLoader interface {
	Load() *config.Generation
}

// BuilderSynthesizer builds the mutable companion builder of a struct
// declaration.
type BuilderSynthesizer interface {
	Builder(node host.Node, outputNS string) (*model.Artifact, error)
}

// InterfaceSynthesizer rewrites an interface declaration into a value type,
// optionally with a companion builder.
type InterfaceSynthesizer interface {
	ValueType(node host.Node, outputNS string, addBuilder bool) (*model.ValueTypeSet, error)
}

// Options wires the engine's collaborators.
type Options struct {
	Targets    TargetResolver
	Sink       Sink
	Reporter   Reporter
	Config     ConfigLoader
	Builders   BuilderSynthesizer
	Interfaces InterfaceSynthesizer
}

// Engine runs one compilation round. It is single-threaded; no state is
// shared across concurrent calls because there are none.
type Engine struct {
	targets    TargetResolver
	sink       Sink
	reporter   Reporter
	loader     ConfigLoader
	builders   BuilderSynthesizer
	interfaces InterfaceSynthesizer
}

// New creates an engine from its collaborators.
func New(opts Options) *Engine {
	return &Engine{
		targets:    opts.Targets,
		sink:       opts.Sink,
		reporter:   opts.Reporter,
		loader:     opts.Config,
		builders:   opts.Builders,
		interfaces: opts.Interfaces,
	}
}

// Process handles every fired directive in the round and always claims the
// round. The returned error is non-nil only when a dispatch call hit an
// unrecognized directive identity; that is an engine defect, is never
// reported through the diagnostic reporter, and does not stop the remaining
// dispatch calls.
func (e *Engine) Process(round directive.Round) (bool, error) {
	var errs []error
	for kind, fired := range round {
		for _, f := range fired {
			if err := e.process(kind, f); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return true, errors.Join(errs...)
}

// process dispatches one fired directive by exact identity match.
func (e *Engine) process(kind directive.Kind, f directive.Fired) error {
	gen := e.loader.Load()
	switch kind {
	case directive.Builder:
		e.processBuilder(f.On, gen)
	case directive.Interface:
		e.processInterface(f.On, f.Attrs.AddBuilder(), gen)
	case directive.BuilderInclude, directive.InterfaceInclude:
		e.processInclude(kind, f, gen)
	default:
		return fmt.Errorf("unknown directive identity %q", string(kind))
	}
	return nil
}

// processBuilder handles a direct builder directive: the artifact lands in
// the element's own namespace.
func (e *Engine) processBuilder(node host.Node, gen *config.Generation) {
	ns, ok := e.resolveEnclosingNamespace(node)
	if !ok {
		return
	}
	e.generateBuilder(node, ns, gen)
}

// processInterface handles a direct interface directive.
func (e *Engine) processInterface(node host.Node, addBuilder bool, gen *config.Generation) {
	ns, ok := e.resolveEnclosingNamespace(node)
	if !ok {
		return
	}
	e.generateInterface(node, addBuilder, ns, gen)
}

// generateBuilder validates the node's kind, synthesizes the builder, and
// emits it into ns.
func (e *Engine) generateBuilder(node host.Node, ns string, gen *config.Generation) {
	if !e.checkKind(node, host.KindStruct, "builder directives are only valid for struct types") {
		return
	}
	art, err := e.builders.Builder(node, ns)
	if err != nil {
		e.errorf(node, "%v", err)
		return
	}
	e.emit(node, ns, art, gen)
}

// generateInterface validates the node's kind, synthesizes the value-type
// replacement, and emits it (plus the builder when requested) into ns.
func (e *Engine) generateInterface(node host.Node, addBuilder bool, ns string, gen *config.Generation) {
	if !e.checkKind(node, host.KindInterface, "interface directives are only valid for interface types") {
		return
	}
	set, err := e.interfaces.ValueType(node, ns, addBuilder)
	if err != nil {
		e.errorf(node, "%v", err)
		return
	}
	e.emitRewritten(node, ns, set.ValueType, set.Rewrite, gen)
	if set.Builder != nil {
		e.emit(node, ns, set.Builder, gen)
	}
}

func (e *Engine) errorf(node host.Node, format string, args ...any) {
	e.reporter.Report(model.Diagnostic{
		Severity: model.Error,
		Message:  fmt.Sprintf(format, args...),
		Node:     node,
	})
}
