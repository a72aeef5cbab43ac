package scenexml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstance_UniqueIdentity(t *testing.T) {
	a := NewInstance("Part", "a")
	b := NewInstance("Part", "b")

	assert.NotEqual(t, a.Ref, b.Ref)
	assert.False(t, a.Ref.IsNull())
	require.NotNil(t, a.Properties)
}

func TestInstance_AddChild(t *testing.T) {
	parent := NewInstance("Model", "parent")
	child := parent.AddChild(NewInstance("Part", "child"))

	require.Len(t, parent.Children, 1)
	assert.Same(t, child, parent.Children[0])
}

func TestInstance_FindFirstChild(t *testing.T) {
	parent := NewInstance("Model", "parent")
	parent.AddChild(NewInstance("Part", "a"))
	b := parent.AddChild(NewInstance("Part", "b"))
	parent.AddChild(NewInstance("Part", "b"))

	assert.Same(t, b, parent.FindFirstChild("b"))
	assert.Nil(t, parent.FindFirstChild("missing"))
}
