package embedding

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeaturizer(t *testing.T) *Featurizer {
	t.Helper()
	f, err := NewFeaturizer(Config{})
	require.NoError(t, err)
	return f
}

func TestNewFeaturizer_Defaults(t *testing.T) {
	f := newTestFeaturizer(t)
	assert.Equal(t, DefaultDim, f.Dim())
	assert.False(t, f.Fitted())
	assert.Equal(t, 0, f.VocabularySize())
}

func TestNewFeaturizer_RejectsNegativeDim(t *testing.T) {
	_, err := NewFeaturizer(Config{Dim: -1})
	assert.Error(t, err)
}

func TestEmbed_FitsOnFirstText(t *testing.T) {
	f := newTestFeaturizer(t)

	vec, err := f.Embed("Python React developer building React apps")
	require.NoError(t, err)

	assert.Len(t, vec, DefaultDim)
	assert.True(t, f.Fitted())
	// python, react, developer, building, apps
	assert.Equal(t, 5, f.VocabularySize())

	var norm float64
	for _, x := range vec {
		norm += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, norm, 1e-6)

	for _, x := range vec[f.VocabularySize():] {
		assert.Zero(t, x)
	}
}

func TestEmbed_DeterministicAfterFit(t *testing.T) {
	f := newTestFeaturizer(t)
	_, err := f.Embed("seed text about python and react")
	require.NoError(t, err)

	a, err := f.Embed("react frontend with python backend")
	require.NoError(t, err)
	b, err := f.Embed("react frontend with python backend")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestEmbed_DoesNotRefit(t *testing.T) {
	f := newTestFeaturizer(t)
	_, err := f.Embed("python")
	require.NoError(t, err)
	require.Equal(t, 1, f.VocabularySize())

	vec, err := f.Embed("rust kubernetes docker")
	require.NoError(t, err)

	assert.Equal(t, 1, f.VocabularySize())
	for _, x := range vec {
		assert.Zero(t, x)
	}
}

func TestEmbed_TruncatesToDim(t *testing.T) {
	f, err := NewFeaturizer(Config{Dim: 3})
	require.NoError(t, err)

	vec, err := f.Embed("alpha bravo charlie delta echo foxtrot")
	require.NoError(t, err)
	assert.Len(t, vec, 3)
}

func TestEmbed_StopWordsOnlyIsError(t *testing.T) {
	f := newTestFeaturizer(t)

	_, err := f.Embed("the and of a")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
	assert.False(t, f.Fitted(), "a failed fit leaves the featurizer unfit")

	_, err = f.Embed("python react")
	assert.NoError(t, err)
}

func TestFit_ExplicitCorpus(t *testing.T) {
	f := newTestFeaturizer(t)
	require.NoError(t, f.Fit([]string{"python django", "react python"}))

	assert.Equal(t, 3, f.VocabularySize())
	assert.ErrorIs(t, f.Fit([]string{"anything"}), ErrAlreadyFitted)

	vec, err := f.Embed("python")
	require.NoError(t, err)
	// alphabetical features: django, python, react
	assert.InDelta(t, 1.0, vec[1], 1e-6)
}

func TestFit_IDFWeighting(t *testing.T) {
	f := newTestFeaturizer(t)
	require.NoError(t, f.Fit([]string{"python django", "python react", "python flask"}))

	vec, err := f.Embed("python django")
	require.NoError(t, err)

	// features: django, flask, python, react
	idfDjango := math.Log(4.0/2.0) + 1
	idfPython := math.Log(4.0/4.0) + 1
	norm := math.Sqrt(idfDjango*idfDjango + idfPython*idfPython)
	assert.InDelta(t, idfDjango/norm, vec[0], 1e-6)
	assert.InDelta(t, idfPython/norm, vec[2], 1e-6)
}

func TestFitVocabulary_MaxFeatures(t *testing.T) {
	v, err := fitVocabulary([]string{"alpha alpha alpha bravo bravo charlie"}, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, v.size())
	assert.Contains(t, v.index, "alpha")
	assert.Contains(t, v.index, "bravo")
	assert.NotContains(t, v.index, "charlie")
}

func TestEmbed_ConcurrentFirstUseFitsOnce(t *testing.T) {
	f := newTestFeaturizer(t)
	texts := []string{"python react", "rust kubernetes", "django flask", "vue angular"}

	var wg sync.WaitGroup
	results := make([][]float32, 40)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			vec, err := f.Embed(texts[i%len(texts)])
			assert.NoError(t, err)
			results[i] = vec
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 2, f.VocabularySize())
	for i := range results {
		again, err := f.Embed(texts[i%len(texts)])
		require.NoError(t, err)
		assert.Equal(t, again, results[i])
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("The React.js app, built with Node_JS & C++ in 2024; a b")
	assert.Equal(t, []string{"react", "js", "app", "built", "node_js", "2024"}, got)
}
