package synth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/recgen/internal/host"
	"github.com/origadmin/recgen/internal/model"
)

type fakeNode struct {
	kind  host.Kind
	name  string
	comps []host.Component
	err   error
}

func (n *fakeNode) Kind() host.Kind       { return n.kind }
func (n *fakeNode) Enclosing() host.Node  { return nil }
func (n *fakeNode) QualifiedName() string { return n.name }

func (n *fakeNode) Components() ([]host.Component, error) { return n.comps, n.err }

func bodyText(art *model.Artifact) string {
	return strings.Join(art.Body, "\n")
}

func TestBuilderSameNamespace(t *testing.T) {
	node := &fakeNode{
		kind: host.KindStruct,
		name: "example.com/app.User",
		comps: []host.Component{
			{Name: "Name", Type: "string"},
			{Name: "Age", Type: "int"},
		},
	}

	art, err := NewBuilderSynthesizer().Builder(node, "example.com/app")
	require.NoError(t, err)

	assert.Equal(t, "UserBuilder", art.Name)
	assert.Empty(t, art.Imports, "same-namespace references need no imports")

	text := bodyText(art)
	assert.Contains(t, text, "type UserBuilder struct {")
	assert.Contains(t, text, "\tname string")
	assert.Contains(t, text, "\tage  int")
	assert.Contains(t, text, "func NewUserBuilder() *UserBuilder {")
	assert.Contains(t, text, "func UserToBuilder(v User) *UserBuilder {")
	assert.Contains(t, text, "\tb.name = v.Name")
	assert.Contains(t, text, "func (b *UserBuilder) Name(v string) *UserBuilder {")
	assert.Contains(t, text, "func (b *UserBuilder) Build() User {")
	assert.Contains(t, text, "\t\tName: b.name,")
}

func TestBuilderCrossNamespaceQualifiesValueType(t *testing.T) {
	node := &fakeNode{
		kind: host.KindStruct,
		name: "example.com/app.User",
		comps: []host.Component{
			{Name: "Role", Type: "example.com/auth.Role"},
		},
	}

	art, err := NewBuilderSynthesizer().Builder(node, "example.com/gen")
	require.NoError(t, err)

	require.Len(t, art.Imports, 2)
	assert.Equal(t, []model.Import{
		{Alias: "app", Path: "example.com/app"},
		{Alias: "auth", Path: "example.com/auth"},
	}, art.Imports)

	text := bodyText(art)
	assert.Contains(t, text, "func UserToBuilder(v app.User) *UserBuilder {")
	assert.Contains(t, text, "\trole auth.Role")
	assert.Contains(t, text, "func (b *UserBuilder) Build() app.User {")
}

func TestBuilderKeywordComponent(t *testing.T) {
	node := &fakeNode{
		kind:  host.KindStruct,
		name:  "example.com/app.Column",
		comps: []host.Component{{Name: "Type", Type: "string"}},
	}

	art, err := NewBuilderSynthesizer().Builder(node, "example.com/app")
	require.NoError(t, err)

	text := bodyText(art)
	assert.Contains(t, text, "\ttype_ string")
	assert.Contains(t, text, "func (b *ColumnBuilder) Type(v string) *ColumnBuilder {")
}

func TestBuilderNoComponents(t *testing.T) {
	node := &fakeNode{kind: host.KindStruct, name: "example.com/app.Empty"}

	art, err := NewBuilderSynthesizer().Builder(node, "example.com/app")
	require.NoError(t, err)

	text := bodyText(art)
	assert.Contains(t, text, "\treturn Empty{}")
}

func TestBuilderComponentError(t *testing.T) {
	node := &fakeNode{kind: host.KindStruct, name: "example.com/app.Broken", err: assert.AnError}

	_, err := NewBuilderSynthesizer().Builder(node, "example.com/app")
	assert.ErrorIs(t, err, assert.AnError)
}
