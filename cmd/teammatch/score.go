package main

import (
	"fmt"

	"github.com/jonathan/teammatch/internal/observability"
	"github.com/jonathan/teammatch/internal/schemas"
	"github.com/jonathan/teammatch/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newScoreCmd(c *cli) *cobra.Command {
	var f ioFlags
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one profile against one project",
		Long:  "Reads a {profile, target} JSON document and writes the scored match with its breakdown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req types.ScoreRequest
			if err := readInput(cmd, f.input, schemas.ScoreRequest, &req); err != nil {
				return err
			}

			m, err := c.newMatcher()
			if err != nil {
				return err
			}
			match, err := m.MatchOne(req.Profile, req.Target)
			if err != nil {
				return fmt.Errorf("failed to score %s against %s: %w", req.Profile.ID, req.Target.ID, err)
			}
			c.log.Debug("scored pair",
				zap.String("candidate_id", match.CandidateID),
				zap.String("target_id", match.TargetID),
				zap.Float64("score", match.Score))

			if f.verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintMatch(match)
			}
			return writeOutput(cmd, f.output, match)
		},
	}
	f.register(cmd, "ScoreRequest JSON file")
	mustRequire(cmd, "input")
	return cmd
}
