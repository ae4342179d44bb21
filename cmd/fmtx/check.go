package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bjaus/fmtx/internal/lint"
	"github.com/bjaus/fmtx/internal/logging"
	"github.com/bjaus/fmtx/internal/report"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		output    string
		jobs      int
		functions []string
		exclude   []string
	)
	cmd := &cobra.Command{
		Use:   "check [PATH...]",
		Short: "Check template literals passed to fmtx calls in Go files",
		Long: `Check template literals passed to fmtx calls in Go files.

Directories are walked recursively. Argument kinds are inferred from the fmtx
constructors used at the call site; other arguments accept any spec. The
command exits with status 1 when problems are found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.For("check")
			cfg := a.cfg
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("jobs") {
				cfg.Jobs = jobs
			}
			cfg.Functions = append(cfg.Functions, functions...)
			cfg.Exclude = append(cfg.Exclude, exclude...)
			if err := cfg.Validate(); err != nil {
				return err
			}
			format, err := report.ParseFormat(cfg.Output)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"."}
			}

			start := time.Now()
			paths, err := lint.Expand(args, cfg.Excluded)
			if err != nil {
				return err
			}
			checker := lint.NewChecker(log, cfg.Functions...)
			diags, err := checker.CheckFiles(cmd.Context(), paths, cfg.Jobs)
			if err != nil {
				return err
			}
			log.Info().Int("files", len(paths)).Int("diagnostics", len(diags)).
				Dur("duration", time.Since(start)).Msg("check finished")

			if err := report.Write(cmd.OutOrStdout(), format, diags...); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if len(diags) > 0 {
				return errFound
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "plain", fmt.Sprintf("report format %v", report.Formats()))
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files checked in parallel (0 = unlimited)")
	cmd.Flags().StringSliceVar(&functions, "function", nil, "extra function names taking a template first")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "glob patterns of files to skip")
	return cmd
}
