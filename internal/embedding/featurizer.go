// Package embedding turns profiles and projects into fixed-length TF-IDF
// vectors and compares them with cosine similarity.
package embedding

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Defaults for Config fields left at zero.
const (
	DefaultDim         = 384
	DefaultMaxFeatures = 2000
)

// Config controls the featurizer output width and vocabulary size.
type Config struct {
	Dim         int
	MaxFeatures int
}

// Featurizer is a two-phase TF-IDF encoder. It starts unfit; the first Embed
// or Fit call learns a vocabulary, which is then frozen for the lifetime of
// the Featurizer. Concurrent first callers serialize on the fit; afterwards
// Embed reads the vocabulary without locking.
type Featurizer struct {
	dim         int
	maxFeatures int

	fitMu sync.Mutex
	vocab atomic.Pointer[vocabulary]
}

// NewFeaturizer creates an unfit Featurizer.
func NewFeaturizer(cfg Config) (*Featurizer, error) {
	if cfg.Dim == 0 {
		cfg.Dim = DefaultDim
	}
	if cfg.MaxFeatures == 0 {
		cfg.MaxFeatures = DefaultMaxFeatures
	}
	if cfg.Dim < 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", cfg.Dim)
	}
	if cfg.MaxFeatures < 0 {
		return nil, fmt.Errorf("max features must be positive, got %d", cfg.MaxFeatures)
	}
	return &Featurizer{dim: cfg.Dim, maxFeatures: cfg.MaxFeatures}, nil
}

// Dim returns the output vector length.
func (f *Featurizer) Dim() int {
	return f.dim
}

// Fitted reports whether a vocabulary exists.
func (f *Featurizer) Fitted() bool {
	return f.vocab.Load() != nil
}

// VocabularySize returns the number of learned terms, or 0 when unfit.
func (f *Featurizer) VocabularySize() int {
	if v := f.vocab.Load(); v != nil {
		return v.size()
	}
	return 0
}

// Fit learns the vocabulary from an explicit corpus. It returns
// ErrAlreadyFitted if a vocabulary already exists.
func (f *Featurizer) Fit(corpus []string) error {
	f.fitMu.Lock()
	defer f.fitMu.Unlock()

	if f.vocab.Load() != nil {
		return ErrAlreadyFitted
	}
	v, err := fitVocabulary(corpus, f.maxFeatures)
	if err != nil {
		return fmt.Errorf("failed to fit vocabulary: %w", err)
	}
	f.vocab.Store(v)
	return nil
}

// Embed encodes text as a Dim-length vector. When unfit, the text itself is
// used as a one-document corpus. Output narrower than Dim is zero-padded on
// the right; wider output is truncated.
func (f *Featurizer) Embed(text string) ([]float32, error) {
	v, err := f.vocabularyFor(text)
	if err != nil {
		return nil, err
	}

	row := v.transform(text)
	out := make([]float32, f.dim)
	for i := 0; i < len(row) && i < f.dim; i++ {
		out[i] = float32(row[i])
	}
	return out, nil
}

func (f *Featurizer) vocabularyFor(text string) (*vocabulary, error) {
	if v := f.vocab.Load(); v != nil {
		return v, nil
	}

	f.fitMu.Lock()
	defer f.fitMu.Unlock()

	if v := f.vocab.Load(); v != nil {
		return v, nil
	}
	v, err := fitVocabulary([]string{text}, f.maxFeatures)
	if err != nil {
		return nil, fmt.Errorf("failed to fit vocabulary: %w", err)
	}
	f.vocab.Store(v)
	return v, nil
}
