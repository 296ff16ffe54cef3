package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/teammatch/internal/db"
	"github.com/jonathan/teammatch/internal/embedding"
	"github.com/jonathan/teammatch/internal/matcher"
	"github.com/jonathan/teammatch/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: "Start an HTTP server exposing the matching endpoints. With a database URL the " +
			"authenticated routes serve stored users and projects; without one only stateless scoring is available.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
	cmd.Flags().IntP("port", "p", 0, "port to listen on (overrides config)")
	mustBind(c.v, "server.port", cmd.Flags().Lookup("port"))
	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	m, err := c.newMatcher()
	if err != nil {
		return err
	}

	opts := server.Options{RateLimit: c.cfg.RateLimit, Logger: c.log}
	if url := c.cfg.Server.DatabaseURL; url != "" {
		database, err := c.connect(ctx, url)
		if err != nil {
			return err
		}
		defer database.Close()
		opts.Store = database

		c.seedFromDatabase(ctx, m, database)
	} else {
		c.log.Warn("no database configured, authenticated routes disabled")
	}
	if !c.cfg.Server.JWT.Enabled() {
		c.log.Warn("no JWT secret configured, authenticated routes disabled")
	}

	return server.New(c.cfg.Server, m, opts).Start(ctx)
}

func (c *cli) connect(ctx context.Context, url string) (*db.DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	database, err := db.Connect(connectCtx, url)
	if err != nil {
		return nil, err
	}
	c.log.Info("database connected")
	return database, nil
}

// seedFromDatabase fits the vocabulary on stored project texts so every
// embedding shares one feature space. Failure leaves lazy fitting in place.
func (c *cli) seedFromDatabase(ctx context.Context, m *matcher.Matcher, database *db.DB) {
	targets, err := database.ListCorpusTargets(ctx, c.cfg.Matching.CorpusLimit)
	if err != nil {
		c.log.Warn("failed to load vocabulary corpus", zap.Error(err))
		return
	}
	if len(targets) == 0 {
		c.log.Info("no projects stored, vocabulary will fit on first use")
		return
	}

	corpus := make([]string, 0, len(targets))
	for _, t := range targets {
		corpus = append(corpus, embedding.BuildTargetText(t))
	}
	c.seed(m, corpus)
}

