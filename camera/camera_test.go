package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestProjectionFlipsY(t *testing.T) {
	c := New(16.0 / 9.0)
	want := mgl32.Perspective(c.FovY, c.Aspect, c.Near, c.Far)

	got := c.Projection()
	assert.InDelta(t, -want[5], got[5], 1e-6)
	assert.InDelta(t, want[0], got[0], 1e-6)
	assert.InDelta(t, want[10], got[10], 1e-6)
}

func TestViewAtHome(t *testing.T) {
	c := New(1)

	v := c.View()
	assert.True(t, v.ApproxEqual(mgl32.Translate3D(0, -1, -5)))

	origin := v.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -5, origin[2], 1e-6)
}

// eulerQuat is the closed form of the quaternion built from pitch, yaw and
// roll, composed as qz * qy * qx.
func eulerQuat(x, y, z float64) mgl32.Quat {
	cx, sx := math.Cos(x/2), math.Sin(x/2)
	cy, sy := math.Cos(y/2), math.Sin(y/2)
	cz, sz := math.Cos(z/2), math.Sin(z/2)
	return mgl32.Quat{
		W: float32(cx*cy*cz + sx*sy*sz),
		V: mgl32.Vec3{
			float32(sx*cy*cz - cx*sy*sz),
			float32(cx*sy*cz + sx*cy*sz),
			float32(cx*cy*sz - sx*sy*cz),
		},
	}
}

func TestOrientation(t *testing.T) {
	for _, rot := range []mgl32.Vec3{
		{0, 0, 0},
		{0.5, 0, 0},
		{0, 0.7, 0},
		{0, 0, 0.3},
		{0.5, 0.7, 0.3},
		{-1.2, 0.4, 2.5},
	} {
		c := New(1)
		c.Rotation = rot

		got := c.Orientation()
		want := eulerQuat(float64(rot[0]), float64(rot[1]), float64(rot[2]))
		assert.InDelta(t, want.W, got.W, 1e-5, "rotation %v", rot)
		for k := range want.V {
			assert.InDelta(t, want.V[k], got.V[k], 1e-5, "rotation %v", rot)
		}
	}
}

func TestViewRotatesAfterTranslating(t *testing.T) {
	c := New(1)
	c.Position = mgl32.Vec3{0, 0, -5}
	c.Rotation = mgl32.Vec3{0, mgl32.DegToRad(90), 0}

	// A point at the camera's own position stays at the eye under any
	// rotation.
	eye := c.View().Mul4x1(mgl32.Vec4{0, 0, 5, 1})
	assert.True(t, eye.Vec3().ApproxEqualThreshold(mgl32.Vec3{}, 1e-5))
}

func TestTransform(t *testing.T) {
	c := New(4.0 / 3.0)
	model := mgl32.HomogRotate3DY(0.5)

	want := c.Projection().Mul4(c.View()).Mul4(model)
	assert.True(t, c.Transform(model).ApproxEqual(want))
}

func TestReset(t *testing.T) {
	c := New(1)
	c.Position = mgl32.Vec3{3, 2, 1}
	c.Rotation = mgl32.Vec3{1, 1, 1}

	c.Reset()
	assert.Equal(t, Home, c.Position)
	assert.Equal(t, mgl32.Vec3{}, c.Rotation)
}
