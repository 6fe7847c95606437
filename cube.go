package main

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ibd1279/vks"
)

// Vertex matches the vertex input of cube.vert.
type Vertex struct {
	Pos   mgl32.Vec3
	Color mgl32.Vec3
}

const vertexStride = uint32(unsafe.Sizeof(Vertex{}))

type face struct {
	corners [4]mgl32.Vec3
	color   mgl32.Vec3
}

// Corners run counter-clockwise seen from outside the cube.
var cubeFaces = []face{
	{[4]mgl32.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}, mgl32.Vec3{1, 0, 0}},
	{[4]mgl32.Vec3{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}, mgl32.Vec3{0, 1, 0}},
	{[4]mgl32.Vec3{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}, mgl32.Vec3{0, 0, 1}},
	{[4]mgl32.Vec3{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}, mgl32.Vec3{1, 1, 0}},
	{[4]mgl32.Vec3{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}, mgl32.Vec3{1, 0, 1}},
	{[4]mgl32.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}, mgl32.Vec3{0, 1, 1}},
}

// CubeVertices returns the cube as a triangle list, two triangles a face.
func CubeVertices() []Vertex {
	vertices := make([]Vertex, 0, len(cubeFaces)*6)
	for _, f := range cubeFaces {
		for _, k := range [6]int{0, 1, 2, 2, 3, 0} {
			vertices = append(vertices, Vertex{Pos: f.corners[k], Color: f.color})
		}
	}
	return vertices
}

func vertexBindings() []vks.VertexInputBindingDescription {
	return []vks.VertexInputBindingDescription{
		vks.VertexInputBindingDescription{}.
			WithBinding(0).
			WithStride(vertexStride).
			WithInputRate(vks.VK_VERTEX_INPUT_RATE_VERTEX),
	}
}

func vertexAttributes() []vks.VertexInputAttributeDescription {
	return []vks.VertexInputAttributeDescription{
		vks.VertexInputAttributeDescription{}.
			WithLocation(0).
			WithBinding(0).
			WithFormat(vks.VK_FORMAT_R32G32B32_SFLOAT).
			WithOffset(uint32(unsafe.Offsetof(Vertex{}.Pos))),
		vks.VertexInputAttributeDescription{}.
			WithLocation(1).
			WithBinding(0).
			WithFormat(vks.VK_FORMAT_R32G32B32_SFLOAT).
			WithOffset(uint32(unsafe.Offsetof(Vertex{}.Color))),
	}
}
