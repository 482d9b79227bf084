package synth

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/origadmin/recgen/internal/model"
)

// qualifiedTypePattern matches package-qualified identifiers inside a fully
// qualified type string, e.g. "github.com/x/y.Role" or "time.Time" embedded
// in "map[string][]time.Time".
var qualifiedTypePattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_./\-]*)\.([A-Za-z_][A-Za-z0-9_]*)`)

// ImportManager allocates collision-free aliases for the packages an
// artifact references and rewrites fully qualified type strings into aliased
// form. Types declared in the local output namespace stay unqualified.
type ImportManager struct {
	local   string
	imports map[string]string
	counter int
}

// NewImportManager creates an import manager for artifacts emitted into the
// local namespace.
func NewImportManager(local string) *ImportManager {
	return &ImportManager{
		local:   local,
		imports: make(map[string]string),
		counter: 1,
	}
}

// Add registers an import and returns the alias to use for it.
func (im *ImportManager) Add(importPath string) string {
	if alias, exists := im.imports[importPath]; exists {
		return alias
	}

	alias := path.Base(importPath)
	if alias == "." || alias == "" {
		alias = fmt.Sprintf("pkg%d", im.counter)
		im.counter++
	}

	originalAlias := alias
	conflictCounter := 1
	for im.aliasTaken(alias) {
		alias = fmt.Sprintf("%s%d", originalAlias, conflictCounter)
		conflictCounter++
	}

	im.imports[importPath] = alias
	return alias
}

// Qualify rewrites a fully qualified type string for use inside the local
// namespace, registering imports as it goes.
func (im *ImportManager) Qualify(typeStr string) string {
	return qualifiedTypePattern.ReplaceAllStringFunc(typeStr, func(m string) string {
		sub := qualifiedTypePattern.FindStringSubmatch(m)
		pkgPath, name := sub[1], sub[2]
		if pkgPath == im.local {
			return name
		}
		return im.Add(pkgPath) + "." + name
	})
}

// TypeRef returns the reference to a named type of pkgPath as seen from the
// local namespace.
func (im *ImportManager) TypeRef(pkgPath, name string) string {
	if pkgPath == "" || pkgPath == im.local {
		return name
	}
	return im.Add(pkgPath) + "." + name
}

// Imports returns the collected imports sorted by path.
func (im *ImportManager) Imports() []model.Import {
	out := make([]model.Import, 0, len(im.imports))
	for p, alias := range im.imports {
		out = append(out, model.Import{Alias: alias, Path: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (im *ImportManager) aliasTaken(alias string) bool {
	for _, existing := range im.imports {
		if existing == alias {
			return true
		}
	}
	return false
}

// splitQualified splits "pkg/path.Name" into namespace and simple name.
func splitQualified(qualified string) (ns, name string) {
	lastDot := strings.LastIndex(qualified, ".")
	if lastDot == -1 {
		return "", qualified
	}
	return qualified[:lastDot], qualified[lastDot+1:]
}
