// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmarray/envconfig"
)

// appendEnvDocs adds the environment variables to the usage text of cmd.
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI builds the root command with every subcommand attached.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "lvmarray",
		Short:         "Inspect and convert n-dimensional array files",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: envconfig.LogLevel()})
			slog.SetDefault(slog.New(handler))
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info FILE...",
		Short: "Show shape, element type and order of array files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  InfoHandler,
	}

	convertCmd := &cobra.Command{
		Use:   "convert --to FORMAT FILE...",
		Short: "Convert array files to another format",
		Args:  cobra.MinimumNArgs(1),
		RunE:  ConvertHandler,
	}
	convertCmd.Flags().String("to", "", "Target format (npy, pgm or bmp)")
	convertCmd.Flags().Bool("half", false, "Write NPY output as half precision")
	_ = convertCmd.MarkFlagRequired("to")

	sliceCmd := &cobra.Command{
		Use:   "slice --base I,J,... --shape N,M,... IN OUT",
		Short: "Extract a hyperslab of an NPY file",
		Args:  cobra.ExactArgs(2),
		RunE:  SliceHandler,
	}
	sliceCmd.Flags().IntSlice("base", nil, "First coordinate of the hyperslab")
	sliceCmd.Flags().IntSlice("shape", nil, "Extents of the hyperslab")
	_ = sliceCmd.MarkFlagRequired("base")
	_ = sliceCmd.MarkFlagRequired("shape")

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Show the effective environment configuration",
		Args:  cobra.NoArgs,
		RunE:  EnvHandler,
	}

	envs := envconfig.AsMap()
	docs := make([]envconfig.EnvVar, 0, len(envs))
	for _, k := range slices.Sorted(maps.Keys(envs)) {
		docs = append(docs, envs[k])
	}
	for _, cmd := range []*cobra.Command{infoCmd, convertCmd, sliceCmd} {
		appendEnvDocs(cmd, docs)
	}

	rootCmd.AddCommand(infoCmd, convertCmd, sliceCmd, envCmd)

	return rootCmd
}

// maxElements clamps LVMARRAY_MAX_ELEMENTS to what an int can hold.
func maxElements() int {
	return int(min(envconfig.MaxElements(), uint(math.MaxInt)))
}

// removeOnError deletes a partially written output file when *err is set.
func removeOnError(path string, err *error) {
	if *err != nil {
		_ = os.Remove(path)
	}
}
