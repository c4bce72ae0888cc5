package scene

import (
	"fmt"

	"pointcloud-renderer/internal/mathutil"
)

const (
	// ViewDistance is how far the camera sits back from the view pivot.
	ViewDistance = 40
	// CloudDistance is how far the point cloud sits in front of the pivot.
	CloudDistance = 100
	// RotStep is the view rotation per arrow-key press, in degrees.
	RotStep = 5

	DefaultNear = 5
	DefaultFar  = 200
)

// LightSourcePosition is the constant light uniform passed with every frame.
var LightSourcePosition = [4]float32{5, 5, 10, 1}

// Key is a view-control input.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
)

// Scene holds the camera state that all per-frame transforms derive from.
type Scene struct {
	ViewRot    [3]float32 // degrees about X, Y, Z
	Angle      float32    // model spin about SpinAxis, degrees
	SpinAxis   [3]float32 // unit axis; New sets Z
	Projection mathutil.Mat4
	Width      int
	Height     int
	Near       float32
	Far        float32
}

// Uniforms are the matrices handed to the rasterizer for one draw.
type Uniforms struct {
	ModelView           mathutil.Mat4
	ModelViewProjection mathutil.Mat4
	Normal              mathutil.Mat4
	LightSourcePosition [4]float32
}

// New creates a scene for a w×h viewport with the given depth range.
func New(w, h int, near, far float32) (*Scene, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("scene: invalid viewport %dx%d", w, h)
	}
	if near <= 0 {
		return nil, fmt.Errorf("scene: near plane must be positive, got %g", near)
	}
	if err := mathutil.ValidateFrustum(-1, 1, -1, 1, near, far); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	s := &Scene{Near: near, Far: far, SpinAxis: [3]float32{0, 0, 1}}
	s.Reshape(w, h)
	return s, nil
}

// Reshape updates the projection for a new viewport size. The horizontal
// extent of the near plane is fixed at ±1; the vertical one follows the
// aspect ratio.
func (s *Scene) Reshape(w, h int) {
	s.Width, s.Height = w, h
	aspect := float32(h) / float32(w)
	s.Projection = mathutil.Mat4Frustum(-1, 1, -aspect, aspect, s.Near, s.Far)
}

// HandleKey applies one arrow-key step to the view rotation.
func (s *Scene) HandleKey(k Key) {
	switch k {
	case KeyLeft:
		s.ViewRot[1] += RotStep
	case KeyRight:
		s.ViewRot[1] -= RotStep
	case KeyUp:
		s.ViewRot[0] += RotStep
	case KeyDown:
		s.ViewRot[0] -= RotStep
	}
}

// ViewTransform pulls the camera back and applies the view rotation,
// X then Y then Z as seen from the caller (Z is applied to points first).
func (s *Scene) ViewTransform() mathutil.Mat4 {
	m := mathutil.Mat4Identity().Translate(0, 0, -ViewDistance)
	m = m.Rotate(mathutil.Deg2Rad(s.ViewRot[0]), 1, 0, 0)
	m = m.Rotate(mathutil.Deg2Rad(s.ViewRot[1]), 0, 1, 0)
	m = m.Rotate(mathutil.Deg2Rad(s.ViewRot[2]), 0, 0, 1)
	return m
}

// Uniforms places the cloud at (x, y) in front of the view, spun by Angle
// about SpinAxis, and returns every matrix the draw needs.
func (s *Scene) Uniforms(x, y float32) Uniforms {
	a := s.SpinAxis
	mv := s.ViewTransform().
		Translate(x, y, -CloudDistance).
		Rotate(mathutil.Deg2Rad(s.Angle), a[0], a[1], a[2])

	return Uniforms{
		ModelView:           mv,
		ModelViewProjection: mathutil.Mat4Mul(s.Projection, mv),
		// Inverse transpose of the model-view; mv is rigid by construction.
		Normal:              mathutil.InvertRigid(mv).Transpose(),
		LightSourcePosition: LightSourcePosition,
	}
}

// AtFrame returns a copy of s advanced to frame i: the model spins by spin
// degrees per frame and the view by orbit degrees per frame on each axis.
func (s *Scene) AtFrame(i int, spin float32, orbit [3]float32) *Scene {
	c := *s
	f := float32(i)
	c.Angle = s.Angle + spin*f
	for k := 0; k < 3; k++ {
		c.ViewRot[k] = s.ViewRot[k] + orbit[k]*f
	}
	return &c
}
