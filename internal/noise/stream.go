package noise

// Random is a source of uniformly distributed values in [0,1).
type Random interface {
	Float64() float64
}

// Stream is a multiply-with-carry generator. Two streams created from the
// same seed produce the same sequence.
type Stream struct {
	w, z uint32
}

// NewStream seeds a stream. Any int64 is accepted; only the low 32 bits of
// the seed offsets are kept.
func NewStream(seed int64) *Stream {
	return &Stream{
		w: uint32(123456789 + seed),
		z: uint32(987654321 - seed),
	}
}

// Float64 returns the next value in [0,1).
func (s *Stream) Float64() float64 {
	s.z = 36969*(s.z&65535) + (s.z >> 16)
	s.w = 18000*(s.w&65535) + (s.w >> 16)
	v := (s.z << 16) + (s.w & 65535)
	return float64(v) / 4294967296.0
}
