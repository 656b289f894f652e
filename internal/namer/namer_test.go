package namer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"init.lua", "obsi2"},
		{"util/helpers.lua", "obsi2.util.helpers"},
		{"graphics.lua", "obsi2.graphics"},
		{"graphics/init.lua", "obsi2.graphics"},
		{"a/b/init.lua", "obsi2.a.b"},
		{"a/init/init.lua", "obsi2.a.init"},
		{"initial.lua", "obsi2.initial"},
		{"a/b/reinit.lua", "obsi2.a.b.reinit"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.path, "obsi2", ".lua"))
		})
	}
}

func TestNameHasNoSeparators(t *testing.T) {
	paths := []string{"init.lua", "x.lua", "deep/er/still/file.lua", "pkg/init.lua", "a.b/c.lua"}
	for _, p := range paths {
		got := Name(p, "obsi2", ".lua")
		assert.NotEmpty(t, got, p)
		assert.False(t, strings.Contains(got, "/"), "%s produced %s", p, got)
	}
}

func TestIndexCollapsesOntoPackage(t *testing.T) {
	// a/b/init.lua names the package a/b.
	assert.Equal(t, "obsi2.a.b", Name("a/b/init.lua", "obsi2", ".lua"))
	assert.Equal(t, Name("a/b.lua", "obsi2", ".lua"), Name("a/b/init.lua", "obsi2", ".lua"))
}

func TestCollapseIndexIsIdempotent(t *testing.T) {
	once := CollapseIndex("a.b.init")
	assert.Equal(t, "a.b", once)
	assert.Equal(t, once, CollapseIndex(once))

	assert.Equal(t, "", CollapseIndex("init"))
	assert.Equal(t, "", CollapseIndex(CollapseIndex("init")))
}
