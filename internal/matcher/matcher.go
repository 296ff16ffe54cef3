// Package matcher is the entry point to matching: it owns the featurizer and
// scoring engine for the lifetime of the service and exposes scoring and
// ranking in both directions.
package matcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/teammatch/internal/config"
	"github.com/jonathan/teammatch/internal/embedding"
	"github.com/jonathan/teammatch/internal/matching"
	"github.com/jonathan/teammatch/internal/ranking"
	"github.com/jonathan/teammatch/internal/types"
	"go.uber.org/zap"
)

// Matcher is safe for concurrent use. Construct one per process and pass it
// to whatever serves requests.
type Matcher struct {
	featurizer *embedding.Featurizer
	engine     *matching.Engine
	cfg        config.Matching
	logger     *zap.Logger
}

// New builds the featurizer and engine. Unset fields take the defaults; an
// invalid configuration is a deployment error and is returned rather than degraded.
func New(cfg config.Matching, logger *zap.Logger) (*Matcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	merged := (&config.Config{Matching: cfg}).MergeWithDefaults(config.Defaults()).Matching
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matching config: %w", err)
	}

	featurizer, err := embedding.NewFeaturizer(embedding.Config{
		Dim:         merged.Dimension,
		MaxFeatures: merged.MaxFeatures,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create featurizer: %w", err)
	}
	engine, err := matching.NewEngine(merged.Weights)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring engine: %w", err)
	}

	return &Matcher{
		featurizer: featurizer,
		engine:     engine,
		cfg:        merged,
		logger:     logger,
	}, nil
}

// Featurizer exposes the shared featurizer, mainly for diagnostics.
func (m *Matcher) Featurizer() *embedding.Featurizer {
	return m.featurizer
}

// SeedVocabulary fits the featurizer on corpus before any record is
// embedded. It fails with embedding.ErrAlreadyFitted once a vocabulary exists.
func (m *Matcher) SeedVocabulary(corpus []string) error {
	if err := m.featurizer.Fit(corpus); err != nil {
		return err
	}
	m.logger.Info("vocabulary seeded",
		zap.Int("documents", len(corpus)),
		zap.Int("terms", m.featurizer.VocabularySize()))
	return nil
}

// Embed computes a fresh embedding for rec without falling back.
func (m *Matcher) Embed(rec types.Embeddable) ([]float32, error) {
	text, err := embedding.BuildText(rec)
	if err != nil {
		return nil, err
	}
	return m.featurizer.Embed(text)
}

// EnsureEmbedding returns the record's embedding, computing one when it has
// none. It never fails: any error yields the filler vector, which is logged.
func (m *Matcher) EnsureEmbedding(rec types.Embeddable) []float32 {
	if rec == nil {
		return m.filler()
	}
	if vec := rec.CurrentEmbedding(); len(vec) > 0 {
		return vec
	}

	vec, err := m.Embed(rec)
	if err == nil {
		return vec
	}

	m.logger.Warn("embedding failed, using filler vector",
		zap.String("kind", string(rec.Kind())),
		zap.String("id", rec.RecordID()),
		zap.Error(err))
	return m.filler()
}

func (m *Matcher) filler() []float32 {
	return embedding.Filler(m.featurizer.Dim(), m.cfg.FillerValue)
}

// MatchOne embeds both records if needed and scores p against t. The inputs
// are not modified.
func (m *Matcher) MatchOne(p *types.Profile, t *types.Target) (*types.Match, error) {
	if p == nil || t == nil {
		return nil, matching.ErrNilRecord
	}
	return m.engine.Match(m.withProfileEmbedding(p), m.withTargetEmbedding(t))
}

// RankCandidates scores every candidate profile against target and returns
// the best topK (default from config when topK <= 0). Candidates that cannot
// be scored are logged and counted in Skipped.
func (m *Matcher) RankCandidates(ctx context.Context, candidates []*types.Profile, target *types.Target, topK int) (*types.RankedMatches, error) {
	if target == nil {
		return nil, matching.ErrNilRecord
	}
	for _, c := range candidates {
		if c == nil {
			return nil, matching.ErrNilRecord
		}
	}
	if topK <= 0 {
		topK = m.cfg.TopCandidates
	}

	t := m.withTargetEmbedding(target)
	skipped := 0
	matches, err := ranking.ScoreAll(ctx, len(candidates), m.cfg.Workers,
		func(i int) (*types.Match, error) {
			return m.engine.Match(m.withProfileEmbedding(candidates[i]), t)
		},
		func(i int, err error) {
			skipped++
			m.logSkip(candidates[i].ID, target.ID, err)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to rank candidates for %q: %w", target.ID, err)
	}

	return &types.RankedMatches{Matches: ranking.Rank(matches, topK), Skipped: skipped}, nil
}

// RankTargets scores profile against every target and returns the best
// topK (default from config when topK <= 0).
func (m *Matcher) RankTargets(ctx context.Context, profile *types.Profile, targets []*types.Target, topK int) (*types.RankedMatches, error) {
	if profile == nil {
		return nil, matching.ErrNilRecord
	}
	for _, t := range targets {
		if t == nil {
			return nil, matching.ErrNilRecord
		}
	}
	if topK <= 0 {
		topK = m.cfg.TopTargets
	}

	p := m.withProfileEmbedding(profile)
	skipped := 0
	matches, err := ranking.ScoreAll(ctx, len(targets), m.cfg.Workers,
		func(i int) (*types.Match, error) {
			return m.engine.Match(p, m.withTargetEmbedding(targets[i]))
		},
		func(i int, err error) {
			skipped++
			m.logSkip(profile.ID, targets[i].ID, err)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to rank targets for %q: %w", profile.ID, err)
	}

	return &types.RankedMatches{Matches: ranking.Rank(matches, topK), Skipped: skipped}, nil
}

func (m *Matcher) logSkip(candidateID, targetID string, err error) {
	fields := []zap.Field{
		zap.String("candidate_id", candidateID),
		zap.String("target_id", targetID),
		zap.Error(err),
	}
	var se *matching.ScoreError
	if errors.As(err, &se) {
		fields = append(fields, zap.String("kind", string(se.Kind)))
	}
	m.logger.Warn("skipping unscorable pair", fields...)
}

func (m *Matcher) withProfileEmbedding(p *types.Profile) *types.Profile {
	cp := *p
	cp.Embedding = m.EnsureEmbedding(p)
	return &cp
}

func (m *Matcher) withTargetEmbedding(t *types.Target) *types.Target {
	cp := *t
	cp.Embedding = m.EnsureEmbedding(t)
	return &cp
}
