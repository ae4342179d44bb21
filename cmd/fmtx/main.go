// Command fmtx formats templates from the command line, checks template
// literals in Go source and lists the built-in locales.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bjaus/fmtx/internal/config"
	"github.com/bjaus/fmtx/internal/logging"
)

var version = "dev"

// errFound is returned by check when diagnostics were reported.
var errFound = errors.New("template problems found")

// app holds state shared by the subcommands of one invocation.
type app struct {
	configPath string
	verbosity  int
	colorMode  string

	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}
	root := &cobra.Command{
		Use:           "fmtx",
		Short:         "Format values with brace templates and check template literals",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: .fmtx.yaml, .fmtx.yml or .fmtx.toml in the working directory)")
	root.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity")
	root.PersistentFlags().StringVar(&a.colorMode, "color", "", "colorize output (auto|always|never)")

	root.AddCommand(
		newFormatCmd(a),
		newCheckCmd(a),
		newLocalesCmd(),
		newVersionCmd(),
	)
	return root
}

// setup loads the config file and configures logging and colour.
func (a *app) setup(cmd *cobra.Command) error {
	a.log = logging.Setup(a.verbosity, cmd.ErrOrStderr())
	var err error
	path := a.configPath
	if path == "" {
		var dir string
		if dir, err = os.Getwd(); err != nil {
			return err
		}
		a.cfg, path, err = config.Discover(dir)
	} else {
		a.cfg, err = config.Load(path)
	}
	if err != nil {
		return err
	}
	if path != "" {
		l := logging.For("config")
		l.Debug().Str("path", path).Msg("loaded config")
	}
	if a.colorMode != "" {
		a.cfg.Color = a.colorMode
		if err := a.cfg.Validate(); err != nil {
			return err
		}
	}
	color.NoColor = !useColor(a.cfg.Color, cmd.OutOrStdout())
	return nil
}

func useColor(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFound) {
			fmt.Fprintln(os.Stderr, "fmtx:", err)
		}
		os.Exit(1)
	}
}
