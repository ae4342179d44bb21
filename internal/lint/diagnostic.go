package lint

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"

	"github.com/bjaus/fmtx/internal/report"
)

// Diagnostic is one problem found in a template literal.
type Diagnostic struct {
	File     string `json:"file" yaml:"file"`
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column" yaml:"column"`
	Call     string `json:"call" yaml:"call"`
	Template string `json:"template" yaml:"template"`
	// Offset is the byte offset of the problem inside the template.
	Offset  int    `json:"offset" yaml:"offset"`
	Message string `json:"message" yaml:"message"`
}

func (d Diagnostic) Header() []string {
	return []string{"FILE", "LINE", "COL", "CALL", "OFFSET", "MESSAGE"}
}

func (d Diagnostic) Row() []string {
	return []string{
		d.File,
		strconv.Itoa(d.Line),
		strconv.Itoa(d.Column),
		d.Call,
		strconv.Itoa(d.Offset),
		d.Message,
	}
}

func (d Diagnostic) Alignments() []report.Alignment {
	return []report.Alignment{
		report.AlignLeft,
		report.AlignRight,
		report.AlignRight,
		report.AlignLeft,
		report.AlignRight,
		report.AlignLeft,
	}
}

func (d Diagnostic) pos() string { return fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column) }

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s (at offset %d in %q)", d.pos(), d.Call, d.Message, d.Offset, d.Template)
}

var (
	posColor  = color.New(color.Bold)
	callColor = color.New(color.FgCyan)
	msgColor  = color.New(color.FgRed)
	tmplColor = color.New(color.Faint)
)

// Styled renders the diagnostic with terminal colours. fatih/color drops
// the escapes when colour is disabled.
func (d Diagnostic) Styled() string {
	return fmt.Sprintf("%s: %s: %s %s",
		posColor.Sprint(d.pos()),
		callColor.Sprint(d.Call),
		msgColor.Sprint(d.Message),
		tmplColor.Sprintf("(at offset %d in %q)", d.Offset, d.Template),
	)
}
