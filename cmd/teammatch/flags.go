package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("failed to bind %s flag: %v", key, err))
	}
}

func mustRequire(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}

// ioFlags are the input/output options shared by the file commands.
type ioFlags struct {
	input   string
	output  string
	verbose bool
}

func (f *ioFlags) register(cmd *cobra.Command, inputHelp string) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", inputHelp+" (\"-\" reads stdin)")
	cmd.Flags().StringVarP(&f.output, "out", "o", "", "output JSON file (default stdout)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "print a human-readable summary to stderr")
}
