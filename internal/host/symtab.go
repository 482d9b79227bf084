package host

import (
	"fmt"
	gotypes "go/types"
	"log/slog"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Env is the go/packages-backed host environment. It hands out Node handles
// over loaded packages and lazily loads packages referenced by include
// directives.
type Env struct {
	dir        string
	mode       packages.LoadMode
	loadedPkgs map[string]*packages.Package
}

// NewEnv creates an environment rooted at dir. Already-loaded packages may be
// registered up front so they are not loaded twice.
func NewEnv(dir string, pkgs ...*packages.Package) *Env {
	e := &Env{
		dir:        dir,
		mode:       packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedImports | packages.NeedDeps,
		loadedPkgs: make(map[string]*packages.Package),
	}
	e.Add(pkgs...)
	return e
}

// Add registers packages with the environment.
func (e *Env) Add(pkgs ...*packages.Package) {
	for _, pkg := range pkgs {
		if _, ok := e.loadedPkgs[pkg.PkgPath]; !ok {
			e.loadedPkgs[pkg.PkgPath] = pkg
		}
	}
}

// PackageNode returns the node for a loaded package.
func (e *Env) PackageNode(pkg *packages.Package) Node {
	return packageNode{path: pkg.PkgPath}
}

// TypeNode returns the node for a named type declared in pkg. Declarations
// the type checker does not know about come back with kind OTHER so that
// validation, not resolution, rejects them.
func (e *Env) TypeNode(pkg *packages.Package, name string) Node {
	if pkg.Types != nil {
		if obj, ok := pkg.Types.Scope().Lookup(name).(*gotypes.TypeName); ok {
			return &typeNode{pkgPath: pkg.PkgPath, obj: obj}
		}
	}
	return &typeNode{pkgPath: pkg.PkgPath, name: name}
}

// ResolveTarget resolves a qualified type reference of the form
// "pkg/path.TypeName" to a declaration node.
func (e *Env) ResolveTarget(ref string) (Node, error) {
	pkgPath, typeName := SplitRef(ref)
	if pkgPath == "" {
		return nil, fmt.Errorf("reference %q is not package qualified", ref)
	}
	pkg, err := e.loadPackage(pkgPath)
	if err != nil {
		return nil, err
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("package %q carries no type information", pkgPath)
	}
	obj, ok := pkg.Types.Scope().Lookup(typeName).(*gotypes.TypeName)
	if !ok {
		return nil, fmt.Errorf("type %q not found in package %q", typeName, pkgPath)
	}
	return &typeNode{pkgPath: pkg.PkgPath, obj: obj}, nil
}

func (e *Env) loadPackage(pkgPath string) (*packages.Package, error) {
	if pkg, ok := e.loadedPkgs[pkgPath]; ok {
		return pkg, nil
	}
	cfg := &packages.Config{Mode: e.mode, Dir: e.dir}
	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %q: %w", pkgPath, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no package found for import path %q", pkgPath)
	}
	if packages.PrintErrors(pkgs) > 0 {
		slog.Warn("Errors while loading package", "path", pkgPath)
	}
	pkg := pkgs[0]
	e.loadedPkgs[pkg.PkgPath] = pkg
	return pkg, nil
}

// SplitRef splits a qualified type reference into package path and type name.
func SplitRef(ref string) (pkgPath, typeName string) {
	lastDot := strings.LastIndex(ref, ".")
	if lastDot == -1 {
		return "", ref
	}
	return ref[:lastDot], ref[lastDot+1:]
}

type packageNode struct {
	path string
}

func (packageNode) Kind() Kind            { return KindPackage }
func (packageNode) Enclosing() Node       { return nil }
func (n packageNode) QualifiedName() string { return n.path }

func (n packageNode) Components() ([]Component, error) {
	return nil, fmt.Errorf("package %q has no components", n.path)
}

type typeNode struct {
	pkgPath string
	obj     *gotypes.TypeName
	name    string // set only when obj is unknown to the checker
}

func (n *typeNode) Kind() Kind {
	if n.obj == nil {
		return KindOther
	}
	switch n.obj.Type().Underlying().(type) {
	case *gotypes.Struct:
		return KindStruct
	case *gotypes.Interface:
		return KindInterface
	default:
		return KindOther
	}
}

func (n *typeNode) Enclosing() Node {
	return packageNode{path: n.pkgPath}
}

func (n *typeNode) QualifiedName() string {
	name := n.name
	if n.obj != nil {
		name = n.obj.Name()
	}
	return n.pkgPath + "." + name
}

func (n *typeNode) Components() ([]Component, error) {
	if n.obj == nil {
		return nil, fmt.Errorf("declaration %q has no type information", n.QualifiedName())
	}
	switch u := n.obj.Type().Underlying().(type) {
	case *gotypes.Struct:
		var comps []Component
		for i := 0; i < u.NumFields(); i++ {
			field := u.Field(i)
			if !field.Exported() {
				continue
			}
			comps = append(comps, Component{Name: field.Name(), Type: typeString(field.Type())})
		}
		return comps, nil
	case *gotypes.Interface:
		var comps []Component
		for i := 0; i < u.NumMethods(); i++ {
			m := u.Method(i)
			sig, ok := m.Type().(*gotypes.Signature)
			if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
				return nil, fmt.Errorf("method %s of %s must take no arguments and return exactly one value", m.Name(), n.QualifiedName())
			}
			comps = append(comps, Component{Name: m.Name(), Type: typeString(sig.Results().At(0).Type())})
		}
		return comps, nil
	default:
		return nil, fmt.Errorf("declaration %q has no components", n.QualifiedName())
	}
}

// typeString renders a type with full package paths, e.g.
// "[]github.com/x/y.Role". The synthesizers re-qualify these through their
// import manager.
func typeString(t gotypes.Type) string {
	return gotypes.TypeString(t, func(p *gotypes.Package) string { return p.Path() })
}
