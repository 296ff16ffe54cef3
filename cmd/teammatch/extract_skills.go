package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/teammatch/internal/logger"
	"github.com/jonathan/teammatch/internal/observability"
	"github.com/jonathan/teammatch/internal/parsing"
	"github.com/jonathan/teammatch/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExtractSkillsCmd(c *cli) *cobra.Command {
	var (
		f    ioFlags
		text string
	)
	cmd := &cobra.Command{
		Use:   "extract-skills [text]",
		Short: "Find taxonomy skills and roles in free text",
		Long:  "Scans resume or project text for known skills and role phrases. Text comes from the argument, --text, or --input.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 1:
				text = args[0]
			case text == "" && f.input != "":
				data, err := readRaw(cmd, f.input)
				if err != nil {
					return err
				}
				text = string(data)
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("no text given: pass it as an argument, with --text, or with --input")
			}
			c.log.Debug("extracting skills", zap.String("text", logger.Truncate(text, 80)))

			byCategory := parsing.ExtractSkills(text)
			resp := &types.ExtractSkillsResponse{
				SkillsByCategory: byCategory,
				AllSkills:        parsing.FlattenSkills(byCategory),
				Roles:            parsing.ExtractRoles(text),
			}
			if f.verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintSkills(resp)
			}
			return writeOutput(cmd, f.output, resp)
		},
	}
	f.register(cmd, "plain text file")
	cmd.Flags().StringVarP(&text, "text", "t", "", "text to scan")
	return cmd
}
