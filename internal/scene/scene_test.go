package scene

import (
	"math"
	"testing"

	"golang.org/x/image/math/f32"

	"pointcloud-renderer/internal/mathutil"
)

func newScene(t *testing.T) *Scene {
	t.Helper()
	s, err := New(1280, 720, DefaultNear, DefaultFar)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(0, 720, DefaultNear, DefaultFar); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := New(1280, 720, 0, DefaultFar); err == nil {
		t.Fatal("expected error for zero near plane")
	}
	if _, err := New(1280, 720, 10, 10); err == nil {
		t.Fatal("expected error for near == far")
	}
}

func TestReshapeAspect(t *testing.T) {
	s := newScene(t)
	want := mathutil.Mat4Frustum(-1, 1, -0.5625, 0.5625, DefaultNear, DefaultFar)
	if !mathutil.Mat4ApproxEqual(s.Projection, want, 1e-6) {
		t.Fatalf("projection = %v, want %v", s.Projection, want)
	}
	s.Reshape(100, 100)
	if s.Projection[0] != s.Projection[5] {
		t.Fatalf("square viewport should scale x and y equally: %v", s.Projection)
	}
}

func TestHandleKey(t *testing.T) {
	s := newScene(t)
	s.HandleKey(KeyLeft)
	s.HandleKey(KeyLeft)
	s.HandleKey(KeyUp)
	if s.ViewRot != [3]float32{5, 10, 0} {
		t.Fatalf("view rot = %v", s.ViewRot)
	}
	s.HandleKey(KeyRight)
	s.HandleKey(KeyDown)
	s.HandleKey(KeyDown)
	if s.ViewRot != [3]float32{-5, 5, 0} {
		t.Fatalf("view rot = %v", s.ViewRot)
	}
}

func TestUniformsCenterPoint(t *testing.T) {
	s := newScene(t)
	u := s.Uniforms(0, 0)

	// The cloud origin sits on the optical axis at depth 140.
	eye := u.ModelView.MulPoint(f32.Vec3{})
	if eye[0] != 0 || eye[1] != 0 || math.Abs(float64(eye[2]+ViewDistance+CloudDistance)) > 1e-4 {
		t.Fatalf("origin in eye space = %v", eye)
	}
	clip := u.ModelViewProjection.MulPoint(f32.Vec3{})
	if clip[3] <= 0 {
		t.Fatalf("origin behind camera: %v", clip)
	}
	if x, y := clip[0]/clip[3], clip[1]/clip[3]; math.Abs(float64(x)) > 1e-6 || math.Abs(float64(y)) > 1e-6 {
		t.Fatalf("origin projects off-center: %v %v", x, y)
	}
	if u.LightSourcePosition != LightSourcePosition {
		t.Fatalf("light = %v", u.LightSourcePosition)
	}
}

func TestUniformsComposition(t *testing.T) {
	s := newScene(t)
	s.ViewRot = [3]float32{20, -35, 10}
	s.Angle = 42
	u := s.Uniforms(1.5, -2)

	if !u.ModelView.IsRigid(1e-5) {
		t.Fatalf("model-view not rigid: %v", u.ModelView)
	}
	if want := mathutil.Mat4Mul(s.Projection, u.ModelView); u.ModelViewProjection != want {
		t.Fatal("MVP != P*MV")
	}

	// For a rigid transform the normal matrix equals the rotation block.
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			if d := u.Normal.At(r, c) - u.ModelView.At(r, c); d > 1e-5 || d < -1e-5 {
				t.Fatalf("normal(%d,%d) = %v, model-view = %v", r, c, u.Normal.At(r, c), u.ModelView.At(r, c))
			}
		}
	}
}

func TestSpinOrder(t *testing.T) {
	s := newScene(t)
	s.Angle = 90
	u := s.Uniforms(0, 0)
	// Spin is applied before placement: (1,0,0) turns to (0,1,0), then moves to z=-140.
	p := u.ModelView.MulPoint(f32.Vec3{1, 0, 0})
	if math.Abs(float64(p[0])) > 1e-5 || math.Abs(float64(p[1]-1)) > 1e-5 {
		t.Fatalf("spun point = %v", p)
	}
}

func TestAtFrame(t *testing.T) {
	s := newScene(t)
	s.ViewRot = [3]float32{1, 2, 3}
	f := s.AtFrame(10, 2, [3]float32{0.5, 0, -1})
	if f.Angle != 20 {
		t.Fatalf("angle = %v", f.Angle)
	}
	if f.ViewRot != [3]float32{6, 2, -7} {
		t.Fatalf("view rot = %v", f.ViewRot)
	}
	if s.Angle != 0 || s.ViewRot != [3]float32{1, 2, 3} {
		t.Fatal("AtFrame modified the receiver")
	}
}

func TestSpinAxis(t *testing.T) {
	s := newScene(t)
	if s.SpinAxis != [3]float32{0, 0, 1} {
		t.Fatalf("default axis = %v", s.SpinAxis)
	}
	s.SpinAxis = [3]float32{1, 0, 0}
	s.Angle = 90
	// About X, (0,1,0) turns to (0,0,1) and lands one unit nearer the camera.
	p := s.Uniforms(0, 0).ModelView.MulPoint(f32.Vec3{0, 1, 0})
	want := float32(-ViewDistance - CloudDistance + 1)
	if math.Abs(float64(p[1])) > 1e-4 || math.Abs(float64(p[2]-want)) > 1e-4 {
		t.Fatalf("spun point = %v, want z %v", p, want)
	}
}
