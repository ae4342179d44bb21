package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/bjaus/fmtx"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the fmtx version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmtx.Write(cmd.OutOrStdout(), "fmtx {} ({}/{}, {})\n",
				fmtx.Str(version), fmtx.Str(runtime.GOOS), fmtx.Str(runtime.GOARCH), fmtx.Str(runtime.Version()))
			return err
		},
	}
}
