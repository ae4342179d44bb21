package main

import (
	"github.com/spf13/cobra"

	"github.com/bjaus/fmtx"
	"github.com/bjaus/fmtx/internal/logging"
)

func newFormatCmd(a *app) *cobra.Command {
	var (
		locale    string
		noNewline bool
	)
	cmd := &cobra.Command{
		Use:   "format TEMPLATE [ARG...]",
		Short: "Format a template with command-line arguments",
		Long: `Format a template with command-line arguments.

Arguments take the form kind:value, name=kind:value or name=value, where kind
is one of int, uint, bool, char, float32, float64, string or pointer. A value
without a known kind prefix is a string.`,
		Example: `  fmtx format '{:>8.2f}|{name:^7}' float64:3.14159 name=hi
  fmtx format --locale de '{:L}' int:1234567`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.For("format")
			if locale == "" {
				locale = a.cfg.Locale
			}
			loc, err := fmtx.ParseLocale(locale)
			if err != nil {
				return err
			}
			var st fmtx.Store
			st.Reserve(len(args)-1, countNamed(args[1:]))
			for _, s := range args[1:] {
				arg, err := parseArg(s)
				if err != nil {
					return err
				}
				st.Push(arg)
			}
			log.Debug().Str("template", args[0]).Int("args", st.Len()).Str("locale", locale).Msg("formatting")

			out := fmtx.WriterSink(cmd.OutOrStdout())
			err = fmtx.VFormatTo(out, loc, args[0], st.Args())
			if err == nil && !noNewline {
				out.AppendByte('\n')
			}
			if ferr := out.Flush(); err == nil {
				err = ferr
			}
			return err
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "BCP 47 locale for 'L' fields (default from config)")
	cmd.Flags().BoolVarP(&noNewline, "no-newline", "n", false, "do not print a trailing newline")
	return cmd
}

// countNamed counts the arguments given as name=value.
func countNamed(args []string) int {
	n := 0
	for _, s := range args {
		if a, err := parseArg(s); err == nil && a.Name() != "" {
			n++
		}
	}
	return n
}
