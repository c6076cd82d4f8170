package noise

import (
	"errors"
	"fmt"
)

// Source is a coherent noise field. Values are in [-1,1], continuous in their
// inputs and a pure function of the construction stream and coordinates.
type Source interface {
	Noise2D(x, y float64) float64
	Noise3D(x, y, z float64) float64
}

const (
	KindSimplex = "simplex"
	KindPerlin  = "perlin"
)

var ErrUnknownKind = errors.New("noise: unknown kind")

// New builds a source of the named kind, consuming values from r.
// An empty kind selects simplex.
func New(kind string, r Random) (Source, error) {
	switch kind {
	case "", KindSimplex:
		return NewSimplex(r), nil
	case KindPerlin:
		return NewPerlin(r), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
}

func clamp(v float64) float64 {
	return max(-1, min(1, v))
}
