package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantKind  Kind
		wantOK    bool
		wantAttrs Values
	}{
		{
			"direct builder",
			"//go:recgen:builder",
			Builder, true, Values{},
		},
		{
			"direct interface with attribute",
			"//go:recgen:interface=builder=false",
			Interface, true, Values{"builder": "false"},
		},
		{
			"builder include",
			`//go:recgen:builder:include=targets="pkg/a.User;pkg/b.Order",pattern="*.gen"`,
			BuilderInclude, true, Values{"targets": "pkg/a.User;pkg/b.Order", "pattern": "*.gen"},
		},
		{
			"interface include with builder flag",
			`//go:recgen:interface:include=targets="pkg/c.Named",builder=true`,
			InterfaceInclude, true, Values{"targets": "pkg/c.Named", "builder": "true"},
		},
		{
			"not a recgen comment",
			"// plain comment",
			Unknown, false, nil,
		},
		{
			"unrecognized key is ignored",
			"//go:recgen:frobnicate=x=1",
			Unknown, false, nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, attrs, ok := parseLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantAttrs, attrs)
		})
	}
}

func TestParseLineMalformedAttributesStillFire(t *testing.T) {
	// An unterminated quote: the directive is recognized but its attribute
	// values cannot be resolved.
	kind, attrs, ok := parseLine(`//go:recgen:builder:include=targets="pkg/a.User`)
	require.True(t, ok)
	assert.Equal(t, BuilderInclude, kind)
	assert.Nil(t, attrs)

	kind, attrs, ok = parseLine(`//go:recgen:builder:include=targets`)
	require.True(t, ok)
	assert.Equal(t, BuilderInclude, kind)
	assert.Nil(t, attrs, "a dangling key without a value has no resolvable attributes")
}

func TestValuesDefaults(t *testing.T) {
	var empty Values

	assert.Equal(t, "*", empty.Pattern())
	assert.True(t, empty.AddBuilder())
	assert.Nil(t, empty.Targets())

	v := Values{"pattern": "@.impl", "builder": "false", "targets": " pkg/a.User ; ;pkg/b.Order "}
	assert.Equal(t, "@.impl", v.Pattern())
	assert.False(t, v.AddBuilder())
	assert.Equal(t, []string{"pkg/a.User", "pkg/b.Order"}, v.Targets())
}

func TestValuesEmptyPatternIsNotDefaulted(t *testing.T) {
	v := Values{"pattern": ""}
	assert.Equal(t, "", v.Pattern())
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, BuilderInclude.IsInclude())
	assert.True(t, InterfaceInclude.IsInclude())
	assert.False(t, Builder.IsInclude())
	assert.False(t, Interface.IsInclude())
}
