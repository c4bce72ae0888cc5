package pointcloud

import (
	"errors"
	"math/rand/v2"
)

// Stride is the number of floats per vertex: position xyz then colour rgb.
const Stride = 6

// DefaultScale is the edge length of the cube the points are scattered in.
const DefaultScale = 50.0

// DefaultRegenerateEvery is how many frames share one point set: a set is
// shown for 61 frames and replaced on the frame after its 60th update.
const DefaultRegenerateEvery = 61

// Vertex is one interleaved point: x, y, z, r, g, b.
type Vertex [Stride]float32

// Palette maps a pair of unit coordinates to an RGB colour in [0,1].
type Palette interface {
	Color(u, v float64) (r, g, b float32)
}

// Set holds the vertices of one point cloud.
type Set struct {
	Vertices []Vertex
}

// New allocates a set of n zeroed vertices.
func New(n int) (*Set, error) {
	if n <= 0 {
		return nil, errors.New("pointcloud: point count must be positive")
	}
	return &Set{Vertices: make([]Vertex, n)}, nil
}

// Randomize scatters every vertex uniformly inside a cube of edge scale
// centered on the origin. Y and Z are mirrored. Colour is the unit sample
// itself, or the palette colour at (u, v) when palette is non-nil.
func (s *Set) Randomize(rng *rand.Rand, scale float32, palette Palette) {
	for i := range s.Vertices {
		u := rng.Float32()
		v := rng.Float32()
		w := rng.Float32()

		vert := &s.Vertices[i]
		vert[0] = (u - 0.5) * scale
		vert[1] = (v - 0.5) * -scale
		vert[2] = (w - 0.5) * -scale

		if palette != nil {
			vert[3], vert[4], vert[5] = palette.Color(float64(u), float64(v))
		} else {
			vert[3], vert[4], vert[5] = u, v, w
		}
	}
}

// Interleaved returns the vertices as one flat buffer with Stride floats per
// point, ready for a vertex buffer upload.
func (s *Set) Interleaved() []float32 {
	out := make([]float32, 0, len(s.Vertices)*Stride)
	for _, v := range s.Vertices {
		out = append(out, v[:]...)
	}
	return out
}

// Len returns the number of points.
func (s *Set) Len() int {
	return len(s.Vertices)
}
