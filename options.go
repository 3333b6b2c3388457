package jsonxf

import (
	"errors"
	"fmt"
	"strings"
)

// Options controls how a Formatter lays out whitespace.
//
// The zero value is a minifier with no record separator. Use PrettyOptions or
// MinifyOptions for the usual presets and adjust fields from there.
type Options struct {
	// Pretty enables indentation and line breaks. When false the output
	// contains no whitespace outside strings except RecordSeparator and
	// TrailingOutput; Indent, LineSeparator and AfterColon are ignored.
	Pretty bool
	// Indent is the unit repeated once per nesting level. Default two spaces.
	Indent string
	// LineSeparator starts every structural line break. Default "\n".
	LineSeparator string
	// AfterColon follows each key separator in pretty mode. Default " ".
	AfterColon string
	// RecordSeparator is written between consecutive top-level values of a
	// concatenated stream. Default "\n".
	RecordSeparator string
	// TrailingOutput is written once by Finish when at least one value was
	// written. PrettyOptions uses "\n", MinifyOptions uses "".
	TrailingOutput string
	// EagerRecordSeparators writes RecordSeparator as soon as a top-level
	// value completes instead of before the next one.
	EagerRecordSeparators bool
	// Strict turns tolerated structural anomalies (unmatched or mismatched
	// closers, input ending inside a string or container) into errors.
	Strict bool
	// MaxDepth limits container nesting. Zero means unlimited.
	MaxDepth int
	// Palette selects ANSI colouring by name. Empty or "none" disables it.
	Palette string
}

// PrettyOptions returns the default pretty-printing configuration.
func PrettyOptions() Options {
	return Options{
		Pretty:          true,
		Indent:          "  ",
		LineSeparator:   "\n",
		AfterColon:      " ",
		RecordSeparator: "\n",
		TrailingOutput:  "\n",
	}
}

// MinifyOptions returns the default minifying configuration. Concatenated
// documents are still separated by a newline.
func MinifyOptions() Options {
	return Options{RecordSeparator: "\n"}
}

var (
	// ErrEmptyIndent is returned by Validate when Pretty is set without an
	// indent unit.
	ErrEmptyIndent = errors.New("jsonxf: indent must not be empty when pretty printing")
	// ErrEmptyLineSeparator is returned by Validate when Pretty is set
	// without a line separator.
	ErrEmptyLineSeparator = errors.New("jsonxf: line separator must not be empty when pretty printing")
	// ErrNegativeMaxDepth is returned by Validate for MaxDepth < 0.
	ErrNegativeMaxDepth = errors.New("jsonxf: max depth must not be negative")
)

// Validate reports configuration errors. Formatters are only ever built from
// validated options, so nothing is checked mid-stream.
func (o *Options) Validate() error {
	if o.Pretty {
		if o.Indent == "" {
			return ErrEmptyIndent
		}
		if o.LineSeparator == "" {
			return ErrEmptyLineSeparator
		}
	}
	if o.MaxDepth < 0 {
		return ErrNegativeMaxDepth
	}
	if _, err := resolvePalette(o.Palette); err != nil {
		return err
	}
	return nil
}

func (o Options) String() string {
	mode := "minify"
	if o.Pretty {
		mode = "pretty"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s indent=%q line=%q colon=%q record=%q trailing=%q",
		mode, o.Indent, o.LineSeparator, o.AfterColon, o.RecordSeparator, o.TrailingOutput)
	if o.EagerRecordSeparators {
		b.WriteString(" eager")
	}
	if o.Strict {
		b.WriteString(" strict")
	}
	if o.MaxDepth > 0 {
		fmt.Fprintf(&b, " max-depth=%d", o.MaxDepth)
	}
	if o.Palette != "" {
		fmt.Fprintf(&b, " palette=%s", o.Palette)
	}
	return b.String()
}

// resolveOptions copies opts (or the pretty preset for nil) and validates it.
func resolveOptions(opts *Options) (Options, error) {
	var o Options
	if opts == nil {
		o = PrettyOptions()
	} else {
		o = *opts
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}
