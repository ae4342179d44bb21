package fmtx

import (
	"fmt"
	"slices"

	"golang.org/x/text/language"
)

// Locale supplies the glyphs used by fields carrying the 'L' flag.
type Locale interface {
	DecimalPoint() rune
	// ThousandsSep returns the group separator. Zero disables grouping.
	ThousandsSep() rune
	// Grouping returns group sizes from the rightmost group leftwards. The
	// last size repeats; a size of zero or less ends grouping.
	Grouping() []int
}

type simpleLocale struct {
	point    rune
	sep      rune
	grouping []int
}

func (l *simpleLocale) DecimalPoint() rune { return l.point }
func (l *simpleLocale) ThousandsSep() rune { return l.sep }
func (l *simpleLocale) Grouping() []int    { return l.grouping }

// NewLocale returns a Locale with the given decimal point, separator and
// group sizes.
func NewLocale(point, sep rune, grouping ...int) Locale {
	return &simpleLocale{point: point, sep: sep, grouping: slices.Clone(grouping)}
}

var classic = &simpleLocale{point: '.'}

// Classic returns the "C" locale: '.' as decimal point and no grouping.
func Classic() Locale { return classic }

type localeEntry struct {
	tag    language.Tag
	locale *simpleLocale
}

var (
	threes = []int{3}
	indian = []int{3, 2}
)

var localeTable = []localeEntry{
	{language.Und, classic},
	{language.English, &simpleLocale{'.', ',', threes}},
	{language.MustParse("en-IN"), &simpleLocale{'.', ',', indian}},
	{language.Hindi, &simpleLocale{'.', ',', indian}},
	{language.German, &simpleLocale{',', '.', threes}},
	{language.MustParse("de-CH"), &simpleLocale{'.', '\u2019', threes}},
	{language.French, &simpleLocale{',', '\u202f', threes}},
	{language.Spanish, &simpleLocale{',', '.', threes}},
	{language.Italian, &simpleLocale{',', '.', threes}},
	{language.Portuguese, &simpleLocale{',', '.', threes}},
	{language.Dutch, &simpleLocale{',', '.', threes}},
	{language.Russian, &simpleLocale{',', '\u00a0', threes}},
	{language.Polish, &simpleLocale{',', '\u00a0', threes}},
	{language.Swedish, &simpleLocale{',', '\u00a0', threes}},
	{language.Japanese, &simpleLocale{'.', ',', threes}},
	{language.Chinese, &simpleLocale{'.', ',', threes}},
	{language.Korean, &simpleLocale{'.', ',', threes}},
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(localeTable))
	for i, e := range localeTable {
		tags[i] = e.tag
	}
	return language.NewMatcher(tags)
}()

// LocaleFor returns the built-in locale closest to tag. Tags with no
// reasonable match get Classic.
func LocaleFor(tag language.Tag) Locale {
	_, i, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return classic
	}
	return localeTable[i].locale
}

// ParseLocale parses a BCP 47 tag such as "de-CH" and returns LocaleFor it.
// The empty string, "C" and "POSIX" select Classic.
func ParseLocale(s string) (Locale, error) {
	switch s {
	case "", "C", "POSIX":
		return classic, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("fmtx: locale %q: %w", s, err)
	}
	return LocaleFor(tag), nil
}

// Locales returns the tags of the built-in locale table.
func Locales() []string {
	out := make([]string, 0, len(localeTable)-1)
	for _, e := range localeTable[1:] {
		out = append(out, e.tag.String())
	}
	return out
}
