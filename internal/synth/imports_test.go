package synth

import (
	"testing"
)

func TestImportManager_Add(t *testing.T) {
	im := NewImportManager("example.com/gen")

	alias := im.Add("fmt")
	if alias != "fmt" {
		t.Errorf("Expected alias 'fmt', got '%s'", alias)
	}

	alias2 := im.Add("fmt")
	if alias2 != "fmt" {
		t.Errorf("Expected second add to return alias 'fmt', got '%s'", alias2)
	}

	alias3 := im.Add("path/filepath")
	if alias3 != "filepath" {
		t.Errorf("Expected alias 'filepath', got '%s'", alias3)
	}
}

func TestImportManager_ConflictResolution(t *testing.T) {
	im := NewImportManager("example.com/gen")

	alias1 := im.Add("a/b/c")
	if alias1 != "c" {
		t.Errorf("Expected first alias to be 'c', got '%s'", alias1)
	}

	alias2 := im.Add("d/e/c")
	if alias2 != "c1" {
		t.Errorf("Expected conflicting alias to be 'c1', got '%s'", alias2)
	}

	alias3 := im.Add("f/g/c")
	if alias3 != "c2" {
		t.Errorf("Expected second conflicting alias to be 'c2', got '%s'", alias3)
	}
}

func TestImportManager_Qualify(t *testing.T) {
	tests := []struct {
		name  string
		local string
		in    string
		want  string
	}{
		{"plain primitive", "example.com/gen", "string", "string"},
		{"stdlib type", "example.com/gen", "time.Time", "time.Time"},
		{"external named type", "example.com/gen", "example.com/auth.Role", "auth.Role"},
		{"local type stays bare", "example.com/app", "example.com/app.User", "User"},
		{"nested in composite", "example.com/gen", "map[string][]example.com/auth.Role", "map[string][]auth.Role"},
		{"pointer element", "example.com/gen", "*example.com/auth.Role", "*auth.Role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im := NewImportManager(tt.local)
			if got := im.Qualify(tt.in); got != tt.want {
				t.Errorf("Qualify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestImportManager_TypeRef(t *testing.T) {
	im := NewImportManager("example.com/gen")

	if got := im.TypeRef("example.com/gen", "User"); got != "User" {
		t.Errorf("local TypeRef = %q, want 'User'", got)
	}
	if got := im.TypeRef("example.com/app", "User"); got != "app.User" {
		t.Errorf("remote TypeRef = %q, want 'app.User'", got)
	}
	imports := im.Imports()
	if len(imports) != 1 || imports[0].Path != "example.com/app" {
		t.Errorf("expected exactly the remote import, got %v", imports)
	}
}

func TestSplitQualified(t *testing.T) {
	ns, name := splitQualified("example.com/app.User")
	if ns != "example.com/app" || name != "User" {
		t.Errorf("splitQualified = (%q, %q)", ns, name)
	}
	ns, name = splitQualified("User")
	if ns != "" || name != "User" {
		t.Errorf("splitQualified bare = (%q, %q)", ns, name)
	}
}
