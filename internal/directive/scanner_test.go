package directive

import (
	goast "go/ast"
	"go/parser"
	"go/token"
	gotypes "go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/origadmin/recgen/internal/host"
)

// loadSource type-checks src in memory and wraps it the way go/packages
// hands packages to the scanner.
func loadSource(t *testing.T, pkgPath, src string) *packages.Package {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "src.go", src, parser.ParseComments)
	require.NoError(t, err)

	conf := gotypes.Config{}
	tpkg, err := conf.Check(pkgPath, fset, []*goast.File{file}, nil)
	require.NoError(t, err)

	return &packages.Package{
		PkgPath: pkgPath,
		Name:    tpkg.Name(),
		Syntax:  []*goast.File{file},
		Types:   tpkg,
	}
}

func TestScannerAttachesDirectives(t *testing.T) {
	src := `package demo

//go:recgen:builder
type User struct {
	Name string
}

//go:recgen:interface=builder=false
type Named interface {
	Name() string
}

//go:recgen:builder:include=targets="example.com/other.Order"
`
	pkg := loadSource(t, "example.com/demo", src)
	env := host.NewEnv(".", pkg)

	round := NewScanner(env).Scan(pkg)
	require.Len(t, round, 3)

	builders := round[Builder]
	require.Len(t, builders, 1)
	assert.Equal(t, "example.com/demo.User", builders[0].On.QualifiedName())
	assert.Equal(t, host.KindStruct, builders[0].On.Kind())

	ifaces := round[Interface]
	require.Len(t, ifaces, 1)
	assert.Equal(t, "example.com/demo.Named", ifaces[0].On.QualifiedName())
	assert.Equal(t, host.KindInterface, ifaces[0].On.Kind())
	assert.False(t, ifaces[0].Attrs.AddBuilder())

	includes := round[BuilderInclude]
	require.Len(t, includes, 1)
	assert.Equal(t, host.KindPackage, includes[0].On.Kind(), "free-standing directives attach to the package")
	assert.Equal(t, "example.com/demo", includes[0].On.QualifiedName())
	assert.Equal(t, []string{"example.com/other.Order"}, includes[0].Attrs.Targets())
	assert.Equal(t, "*", includes[0].Attrs.Pattern())
}

func TestScannerIgnoresForeignComments(t *testing.T) {
	src := `package demo

// User is documented but carries no directive.
//go:generate stringer -type=Foo
type User struct {
	Name string
}
`
	pkg := loadSource(t, "example.com/demo", src)
	env := host.NewEnv(".", pkg)

	round := NewScanner(env).Scan(pkg)
	assert.Empty(t, round)
}

func TestScannerGroupsMultipleOccurrences(t *testing.T) {
	src := `package demo

//go:recgen:builder
type User struct {
	Name string
}

//go:recgen:builder
type Order struct {
	Total int
}
`
	pkg := loadSource(t, "example.com/demo", src)
	env := host.NewEnv(".", pkg)

	round := NewScanner(env).Scan(pkg)
	require.Len(t, round[Builder], 2)
}
