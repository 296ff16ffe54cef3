package main

import (
	"github.com/jonathan/teammatch/internal/embedding"
	"github.com/jonathan/teammatch/internal/matcher"
	"github.com/jonathan/teammatch/internal/observability"
	"github.com/jonathan/teammatch/internal/schemas"
	"github.com/jonathan/teammatch/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rankFlags struct {
	ioFlags
	topK int
}

func (f *rankFlags) register(cmd *cobra.Command, inputHelp string) {
	f.ioFlags.register(cmd, inputHelp)
	cmd.Flags().IntVarP(&f.topK, "top-k", "k", 0, "number of matches to keep (overrides the input's top_k; 0 uses the configured default)")
}

func (f *rankFlags) resolveTopK(fromInput int) int {
	if f.topK > 0 {
		return f.topK
	}
	return fromInput
}

func newRankTargetsCmd(c *cli) *cobra.Command {
	var f rankFlags
	cmd := &cobra.Command{
		Use:   "rank-targets",
		Short: "Rank projects for one profile",
		Long:  "Reads a {profile, targets, top_k} JSON document and writes the best matching projects, best first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req types.RankTargetsRequest
			if err := readInput(cmd, f.input, schemas.RankTargetsRequest, &req); err != nil {
				return err
			}

			m, err := c.newMatcher()
			if err != nil {
				return err
			}
			corpus := make([]string, 0, len(req.Targets))
			for _, t := range req.Targets {
				corpus = append(corpus, embedding.BuildTargetText(t))
			}
			c.seed(m, corpus)

			ranked, err := m.RankTargets(cmd.Context(), req.Profile, req.Targets, f.resolveTopK(req.TopK))
			if err != nil {
				return err
			}
			if f.verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintMatches("TOP PROJECTS", ranked, false)
			}
			return c.writeMatches(cmd, f.output, ranked)
		},
	}
	f.register(cmd, "RankTargetsRequest JSON file")
	mustRequire(cmd, "input")
	return cmd
}

func newRankCandidatesCmd(c *cli) *cobra.Command {
	var f rankFlags
	cmd := &cobra.Command{
		Use:   "rank-candidates",
		Short: "Rank profiles for one project",
		Long:  "Reads a {target, candidates, top_k} JSON document and writes the best matching candidates, best first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req types.RankCandidatesRequest
			if err := readInput(cmd, f.input, schemas.RankCandidatesRequest, &req); err != nil {
				return err
			}

			m, err := c.newMatcher()
			if err != nil {
				return err
			}
			corpus := []string{embedding.BuildTargetText(req.Target)}
			for _, p := range req.Candidates {
				corpus = append(corpus, embedding.BuildProfileText(p))
			}
			c.seed(m, corpus)

			ranked, err := m.RankCandidates(cmd.Context(), req.Candidates, req.Target, f.resolveTopK(req.TopK))
			if err != nil {
				return err
			}
			if f.verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintMatches("TOP CANDIDATES", ranked, true)
			}
			return c.writeMatches(cmd, f.output, ranked)
		},
	}
	f.register(cmd, "RankCandidatesRequest JSON file")
	mustRequire(cmd, "input")
	return cmd
}

// seed fits the vocabulary on the batch being ranked. A corpus without
// usable terms leaves the featurizer to fit on the first embedded record.
func (c *cli) seed(m *matcher.Matcher, corpus []string) {
	if err := m.SeedVocabulary(corpus); err != nil {
		c.log.Warn("vocabulary not seeded", zap.Int("documents", len(corpus)), zap.Error(err))
	}
}

// writeMatches writes ranked and checks the written document against the
// output schema. A schema mismatch is reported but does not fail the command.
func (c *cli) writeMatches(cmd *cobra.Command, path string, ranked *types.RankedMatches) error {
	if err := writeOutput(cmd, path, ranked); err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	if err := schemas.ValidateFile(schemas.Matches, path); err != nil {
		c.log.Warn("output validation failed", zap.String("path", path), zap.Error(err))
	}
	return nil
}
