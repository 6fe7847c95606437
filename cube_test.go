package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeVertices(t *testing.T) {
	vertices := CubeVertices()
	require.Len(t, vertices, 36)
	assert.Equal(t, uint32(24), vertexStride)

	for k := 0; k < len(vertices); k += 3 {
		a, b, c := vertices[k].Pos, vertices[k+1].Pos, vertices[k+2].Pos
		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3.0)
		assert.Greater(t, normal.Dot(centroid), float32(0), "triangle %d faces inward", k/3)

		assert.Equal(t, vertices[k].Color, vertices[k+2].Color)
	}
}

func TestCubeFacesHaveDistinctColors(t *testing.T) {
	seen := map[mgl32.Vec3]bool{}
	for _, f := range cubeFaces {
		assert.False(t, seen[f.color], "color %v reused", f.color)
		seen[f.color] = true
	}
}

func TestVertexLayout(t *testing.T) {
	bindings := vertexBindings()
	require.Len(t, bindings, 1)
	assert.Equal(t, vertexStride, bindings[0].Stride())

	attributes := vertexAttributes()
	require.Len(t, attributes, 2)
	assert.Equal(t, uint32(0), attributes[0].Offset())
	assert.Equal(t, uint32(12), attributes[1].Offset())
}
