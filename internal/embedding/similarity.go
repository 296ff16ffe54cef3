package embedding

import (
	"fmt"
	"math"
)

// Cosine returns the cosine similarity of two vectors. Missing or degenerate
// inputs yield 0.0 together with ErrMissingVector or ErrDegenerateVector so
// callers can record why the score is neutral; the score is still usable.
func Cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0.0, ErrMissingVector
	}
	if len(a) != len(b) {
		return 0.0, fmt.Errorf("%w: length %d vs %d", ErrDegenerateVector, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0.0, fmt.Errorf("%w: zero norm", ErrDegenerateVector)
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0.0, fmt.Errorf("%w: non-finite similarity", ErrDegenerateVector)
	}
	return sim, nil
}

// Filler returns a uniform vector used when an embedding cannot be computed.
func Filler(dim int, value float32) []float32 {
	vec := make([]float32, dim)
	for i := range vec {
		vec[i] = value
	}
	return vec
}
