package directive

import (
	goast "go/ast"
	"go/token"
	"log/slog"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/origadmin/recgen/internal/host"
)

const directivePrefix = "//go:recgen:"

// Scanner discovers recgen directives in a loaded package and attaches each
// occurrence to its host element: the documented type declaration, or the
// package itself for free-standing comments.
type Scanner struct {
	env *host.Env
}

// NewScanner creates a Scanner over the given host environment.
func NewScanner(env *host.Env) *Scanner {
	return &Scanner{env: env}
}

// Scan walks the syntax of pkg and groups every fired directive by kind.
func (s *Scanner) Scan(pkg *packages.Package) Round {
	round := make(Round)
	pkgNode := s.env.PackageNode(pkg)

	for _, file := range pkg.Syntax {
		attached := s.collectDocNodes(pkg, file)
		for _, group := range file.Comments {
			on := pkgNode
			if node, ok := attached[group]; ok {
				on = node
			}
			for _, comment := range group.List {
				s.apply(round, comment.Text, on)
			}
		}
	}
	return round
}

// collectDocNodes maps the doc comment groups of type declarations to the
// declared type's node, so directives written there fire on the type rather
// than the package.
func (s *Scanner) collectDocNodes(pkg *packages.Package, file *goast.File) map[*goast.CommentGroup]host.Node {
	attached := make(map[*goast.CommentGroup]host.Node)
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*goast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for i, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*goast.TypeSpec)
			if !ok {
				continue
			}
			node := s.env.TypeNode(pkg, typeSpec.Name.Name)
			if typeSpec.Doc != nil {
				attached[typeSpec.Doc] = node
			}
			if i == 0 && genDecl.Doc != nil {
				attached[genDecl.Doc] = node
			}
		}
	}
	return attached
}

func (s *Scanner) apply(round Round, line string, on host.Node) {
	kind, attrs, ok := parseLine(line)
	if !ok {
		return
	}
	round[kind] = append(round[kind], Fired{Kind: kind, On: on, Attrs: attrs})
	slog.Debug("Discovered directive", "kind", string(kind), "on", on.QualifiedName())
}

// parseLine parses one comment line. The key before the first '=' selects
// the directive kind; the remainder is its attribute block. A recognized
// directive with a malformed attribute block still fires, with nil Values.
func parseLine(line string) (Kind, Values, bool) {
	if !strings.HasPrefix(line, directivePrefix) {
		return Unknown, nil, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, directivePrefix))
	key := rest
	value := ""
	if i := strings.Index(rest, "="); i >= 0 {
		key, value = rest[:i], rest[i+1:]
	}

	var kind Kind
	switch key {
	case "builder":
		kind = Builder
	case "builder:include":
		kind = BuilderInclude
	case "interface":
		kind = Interface
	case "interface:include":
		kind = InterfaceInclude
	default:
		slog.Warn("Ignoring unrecognized recgen directive", "key", key)
		return Unknown, nil, false
	}

	attrs, ok := parseValues(value)
	if !ok {
		return kind, nil, true
	}
	return kind, attrs, true
}

// parseValues parses a comma-separated k=v attribute block. Values may be
// double quoted; commas inside quotes do not split.
func parseValues(s string) (Values, bool) {
	vals := make(Values)
	if s == "" {
		return vals, true
	}
	parts, ok := splitTop(s)
	if !ok {
		return nil, false
	}
	for _, part := range parts {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return nil, false
		}
		key := strings.TrimSpace(kv[0])
		val := strings.TrimSpace(kv[1])
		if strings.HasPrefix(val, `"`) {
			if !strings.HasSuffix(val, `"`) || len(val) < 2 {
				return nil, false
			}
			val = val[1 : len(val)-1]
		}
		vals[key] = val
	}
	return vals, true
}

// splitTop splits on commas outside double quotes. Reports failure on an
// unterminated quote.
func splitTop(s string) ([]string, bool) {
	var parts []string
	var cur strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == ',' && !inQuote:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if inQuote {
		return nil, false
	}
	parts = append(parts, cur.String())
	return parts, true
}
