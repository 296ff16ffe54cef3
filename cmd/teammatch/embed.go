package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/teammatch/internal/observability"
	"github.com/jonathan/teammatch/internal/schemas"
	"github.com/jonathan/teammatch/internal/types"
	"github.com/spf13/cobra"
)

// EmbedOutput is the result of the embed command.
type EmbedOutput struct {
	ID        string           `json:"id"`
	Kind      types.RecordKind `json:"kind"`
	Embedding []float32        `json:"embedding"`
}

func newEmbedCmd(c *cli) *cobra.Command {
	var (
		f      ioFlags
		kind   string
		corpus string
	)
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Compute the text embedding of a profile, project or teammate request",
		Long: "Reads a Profile, Target or TeammateRequest JSON document and writes its embedding. Without --corpus the " +
			"vocabulary is fitted on the record itself, so vectors from separate runs are not comparable.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readRaw(cmd, f.input)
			if err != nil {
				return err
			}
			rec, err := decodeRecord(types.RecordKind(kind), data)
			if err != nil {
				return err
			}

			m, err := c.newMatcher()
			if err != nil {
				return err
			}
			if corpus != "" {
				docs, err := readCorpus(corpus)
				if err != nil {
					return err
				}
				if err := m.SeedVocabulary(docs); err != nil {
					return fmt.Errorf("failed to fit vocabulary on %s: %w", corpus, err)
				}
			}

			vec, err := m.Embed(rec)
			if err != nil {
				return fmt.Errorf("failed to embed %s %s: %w", rec.Kind(), rec.RecordID(), err)
			}
			if f.verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintEmbedding(rec.RecordID(), vec)
			}
			return writeOutput(cmd, f.output, EmbedOutput{ID: rec.RecordID(), Kind: rec.Kind(), Embedding: vec})
		},
	}
	f.register(cmd, "Profile, Target or TeammateRequest JSON file")
	cmd.Flags().StringVar(&kind, "kind", string(types.KindProfile), "record kind: profile, target or teammate_request")
	cmd.Flags().StringVar(&corpus, "corpus", "", "text file with one document per line to fit the vocabulary on")
	mustRequire(cmd, "input")
	return cmd
}

// decodeRecord validates and decodes data as the given record kind. Any
// embedding already present is dropped so a fresh one is computed.
func decodeRecord(kind types.RecordKind, data []byte) (types.Embeddable, error) {
	var (
		schema string
		rec    types.Embeddable
	)
	switch kind {
	case types.KindProfile:
		schema, rec = schemas.Profile, &types.Profile{}
	case types.KindTarget:
		schema, rec = schemas.Target, &types.Target{}
	case types.KindTeammateRequest:
		schema, rec = schemas.TeammateRequest, &types.TeammateRequest{}
	default:
		return nil, fmt.Errorf("unsupported kind %q: want %s, %s or %s",
			kind, types.KindProfile, types.KindTarget, types.KindTeammateRequest)
	}

	if err := schemas.Validate(schema, data); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", kind, err)
	}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", kind, err)
	}
	rec.SetEmbedding(nil)
	return rec, nil
}

// readCorpus returns the non-blank lines of path.
func readCorpus(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}
	var docs []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			docs = append(docs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}
	return docs, nil
}
