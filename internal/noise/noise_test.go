package noise

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStreamDeterministic verifies two streams with the same seed agree
func TestStreamDeterministic(t *testing.T) {
	a := NewStream(42)
	b := NewStream(42)
	for i := 0; i < 1000; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("stream diverged at %d: %f != %f", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("stream value %f outside [0,1)", va)
		}
	}
}

func TestStreamSeedsDiffer(t *testing.T) {
	a := NewStream(1)
	b := NewStream(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Less(t, same, 5)
}

func TestSourcesRange(t *testing.T) {
	for _, kind := range []string{KindSimplex, KindPerlin} {
		src, err := New(kind, NewStream(7))
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(12345))
		for i := 0; i < 2000; i++ {
			x := rng.Float64()*400 - 200
			y := rng.Float64()*400 - 200
			z := rng.Float64()*400 - 200

			v2 := src.Noise2D(x, z)
			v3 := src.Noise3D(x, y, z)
			if v2 < -1 || v2 > 1 {
				t.Fatalf("%s Noise2D(%f,%f) = %f outside [-1,1]", kind, x, z, v2)
			}
			if v3 < -1 || v3 > 1 {
				t.Fatalf("%s Noise3D(%f,%f,%f) = %f outside [-1,1]", kind, x, y, z, v3)
			}
		}
	}
}

func TestSimplexDeterministic(t *testing.T) {
	a := NewSimplex(NewStream(0))
	b := NewSimplex(NewStream(0))
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.37
		assert.Equal(t, a.Noise2D(x, -x), b.Noise2D(x, -x))
		assert.Equal(t, a.Noise3D(x, x*0.5, -x), b.Noise3D(x, x*0.5, -x))
	}
}

// TestSimplexContinuity verifies small input deltas give small output deltas
func TestSimplexContinuity(t *testing.T) {
	s := NewSimplex(NewStream(3))
	for i := 0; i < 200; i++ {
		x := float64(i)*0.731 - 50
		z := float64(i)*0.419 + 10
		d2 := math.Abs(s.Noise2D(x, z) - s.Noise2D(x+0.001, z))
		d3 := math.Abs(s.Noise3D(x, z, x) - s.Noise3D(x+0.001, z, x))
		if d2 >= 0.05 || d3 >= 0.05 {
			t.Fatalf("discontinuity at (%f,%f): d2=%f d3=%f", x, z, d2, d3)
		}
	}
}

func TestSimplexNotConstant(t *testing.T) {
	s := NewSimplex(NewStream(0))
	seen := map[float64]bool{}
	for i := 0; i < 50; i++ {
		seen[s.Noise2D(float64(i)/7, float64(i)/11)] = true
	}
	assert.Greater(t, len(seen), 10)
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New("worley", NewStream(0))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func BenchmarkSimplex3D(b *testing.B) {
	s := NewSimplex(NewStream(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Noise3D(float64(i)*0.01, 1.5, float64(i)*0.02)
	}
}
