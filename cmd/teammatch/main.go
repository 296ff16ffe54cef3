// Package main provides the teammatch CLI: the matching HTTP server plus
// file-based commands for scoring, ranking, embedding and skill extraction.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/teammatch/internal/config"
	"github.com/jonathan/teammatch/internal/logger"
	"github.com/jonathan/teammatch/internal/matcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "teammatch"

// cli holds state shared by every subcommand of one root command.
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:           app,
		Short:         "Resume-to-project matching service",
		Long:          "teammatch scores and ranks people against hackathon projects using skills, roles, experience and text similarity.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (YAML or JSON)")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")
	mustBind(c.v, "logging.debug", flags.Lookup("debug"))
	mustBind(c.v, "logging.json", flags.Lookup("json"))

	root.AddCommand(
		newServeCmd(c),
		newScoreCmd(c),
		newRankTargetsCmd(c),
		newRankCandidatesCmd(c),
		newEmbedCmd(c),
		newExtractSkillsCmd(c),
	)
	return root
}

// setup loads configuration and builds the logger. The server logs to
// stdout; every other command keeps stdout for its results.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.v, c.cfgFile)
	if err != nil {
		return err
	}
	c.cfg = cfg

	build := logger.NewStderr
	if cmd.Name() == "serve" {
		build = logger.New
	}
	log, err := build(cfg.Logging.JSON, cfg.Logging.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	c.log = log
	return nil
}

func (c *cli) newMatcher() (*matcher.Matcher, error) {
	return matcher.New(c.cfg.Matching, c.log)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
