package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/fmtx"
	"github.com/bjaus/fmtx/internal/report"
)

// localeRow describes one built-in locale.
type localeRow struct {
	Tag          string `json:"tag" yaml:"tag"`
	DecimalPoint string `json:"decimal_point" yaml:"decimal_point"`
	Separator    string `json:"separator" yaml:"separator"`
	Grouping     []int  `json:"grouping" yaml:"grouping"`
	Sample       string `json:"sample" yaml:"sample"`
}

func (r localeRow) Header() []string {
	return []string{"TAG", "POINT", "SEP", "GROUPING", "SAMPLE"}
}

func (r localeRow) Row() []string {
	g := make([]string, len(r.Grouping))
	for i, n := range r.Grouping {
		g[i] = strconv.Itoa(n)
	}
	return []string{r.Tag, strconv.Quote(r.DecimalPoint), strconv.Quote(r.Separator), strings.Join(g, ","), r.Sample}
}

func (r localeRow) Alignments() []report.Alignment {
	return []report.Alignment{report.AlignLeft, report.AlignCenter, report.AlignCenter, report.AlignLeft, report.AlignRight}
}

func (r localeRow) String() string {
	return r.Tag + "\t" + r.Sample
}

var sampleTemplate = fmtx.MustCompile("{:.2Lf}", fmtx.Param(fmtx.KindFloat64))

func newLocalesCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "locales",
		Short: "List the built-in locales used by 'L' fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}
			var rows []localeRow
			for _, tag := range fmtx.Locales() {
				row, err := describeLocale(tag)
				if err != nil {
					return err
				}
				rows = append(rows, row)
			}
			return report.Write(cmd.OutOrStdout(), format, rows...)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", fmt.Sprintf("output format %v", report.Formats()))
	return cmd
}

func describeLocale(tag string) (localeRow, error) {
	loc, err := fmtx.ParseLocale(tag)
	if err != nil {
		return localeRow{}, err
	}
	var b fmtx.Buffer
	if err := sampleTemplate.VFormatTo(&b, loc, fmtx.NewArgs(fmtx.Float64(1234567.891))); err != nil {
		return localeRow{}, err
	}
	return localeRow{
		Tag:          tag,
		DecimalPoint: string(loc.DecimalPoint()),
		Separator:    string(loc.ThousandsSep()),
		Grouping:     loc.Grouping(),
		Sample:       b.String(),
	}, nil
}
