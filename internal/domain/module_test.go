package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindModule(t *testing.T) {
	m, ok := FindModule(ModuleOrfoepiya)
	assert.True(t, ok)
	assert.Equal(t, "Орфоэпия", m.Title)

	_, ok = FindModule("unknown")
	assert.False(t, ok)
}

func TestModules_ReturnsCopy(t *testing.T) {
	list := Modules()
	list[0].Title = "changed"

	assert.NotEqual(t, "changed", Modules()[0].Title)
}
