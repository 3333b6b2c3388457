// Command jsonxf pretty-prints or minifies JSON streams.
//
//	jsonxf <foo.json >foo-pretty.json
//	jsonxf -m <foo.json >foo-min.json
//	jsonxf -w a.json b.json.gz
//	jsonxf -c *.json
package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"pkt.systems/jsonxf"
	"pkt.systems/jsonxf/internal/check"
	"pkt.systems/jsonxf/internal/codec"
	"pkt.systems/jsonxf/internal/config"
)

const debugEnvVar = "JSONXF_DEBUG"

type cliFlags struct {
	input           string
	output          string
	str             string
	tab             string
	minimize        bool
	crlf            bool
	recordSeparator string
	eager           bool
	strict          bool
	maxDepth        int
	inPlace         bool
	check           bool
	jsonc           bool
	compress        string
	color           string
	palette         string
	listPalettes    bool
	configPath      string
	verbose         bool
	help            bool
}

// usageError marks errors caused by the command line rather than the input.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

var errNotFormatted = errors.New("not formatted")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code: 0 on success,
// 1 for I/O, syntax and check failures, 2 for usage errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := execute(args, stdin, stdout, stderr)
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "jsonxf: %v\n", err)
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

func newFlagSet(stderr io.Writer) (*pflag.FlagSet, *cliFlags) {
	fl := &cliFlags{}
	fs := pflag.NewFlagSet("jsonxf", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}
	fs.StringVarP(&fl.input, "input", "i", "", "read input from `file` (default: stdin)")
	fs.StringVarP(&fl.output, "output", "o", "", "write output to `file` (default: stdout)")
	fs.StringVarP(&fl.str, "string", "s", "", "format the given `json` text instead of reading input")
	fs.StringVarP(&fl.tab, "tab", "t", "  ", "indent pretty-printed output with `str` (escapes like \\t are decoded)")
	fs.BoolVarP(&fl.minimize, "minimize", "m", false, "minimize JSON instead of pretty-printing it")
	fs.BoolVar(&fl.crlf, "crlf", false, "use \\r\\n line endings")
	fs.StringVar(&fl.recordSeparator, "record-separator", "\\n", "separator between top-level values (escapes are decoded)")
	fs.BoolVar(&fl.eager, "eager", false, "write the record separator as soon as a value completes")
	fs.BoolVar(&fl.strict, "strict", false, "fail on unbalanced brackets and truncated input")
	fs.IntVar(&fl.maxDepth, "max-depth", 0, "fail when nesting exceeds `n` (0 = unlimited)")
	fs.BoolVarP(&fl.inPlace, "in-place", "w", false, "rewrite the named files in place")
	fs.BoolVarP(&fl.check, "check", "c", false, "list inputs that are not formatted and exit 1 if any")
	fs.BoolVar(&fl.jsonc, "jsonc", false, "strip comments and trailing commas first")
	fs.StringVar(&fl.compress, "compress", "", "output compression: none, gzip, zstd or lz4 (default: from output extension)")
	fs.StringVar(&fl.color, "color", "auto", "colorize output: auto, always or never")
	fs.StringVar(&fl.palette, "palette", "", "color palette `name` (see --list-palettes)")
	fs.BoolVar(&fl.listPalettes, "list-palettes", false, "print the available palettes and exit")
	fs.StringVar(&fl.configPath, "config", "", "load defaults from YAML `file` (default: $"+config.EnvVar+")")
	fs.BoolVarP(&fl.verbose, "verbose", "v", false, "log debug information to stderr")
	fs.BoolVarP(&fl.help, "help", "h", false, "print this message and exit")
	return fs, fl
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `jsonxf is a JSON transformer. It pretty-prints and minimizes JSON in a
single streaming pass without validating or parsing it into memory.

Usage: jsonxf [flags] [file...]

Positional files are formatted as one concatenated stream. Compressed
input (gzip, zstd, lz4) is detected automatically.

Flags:
%s`, fs.FlagUsages())
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, fl := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		return usageError{err: err}
	}
	if fl.help {
		printHelp(stdout, fs)
		return nil
	}
	if fl.listPalettes {
		for _, name := range jsonxf.PaletteNames() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	level := slog.LevelWarn
	if fl.verbose || os.Getenv(debugEnvVar) != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts, colorMode, err := buildOptions(fs, fl)
	if err != nil {
		return err
	}
	if err := validateModes(fs, fl); err != nil {
		return err
	}

	j := &job{opts: opts, jsonc: fl.jsonc, stdin: stdin, logger: logger}
	inputs, err := j.inputs(fs, fl)
	if err != nil {
		return err
	}

	switch {
	case fl.inPlace:
		j.opts.Palette = ""
		return j.rewriteAll(fs.Args())
	case fl.check:
		j.opts.Palette = ""
		return j.checkAll(inputs, stdout)
	}

	kind := codec.FromPath(fl.output)
	if fs.Changed("compress") {
		if kind, err = codec.ParseKind(fl.compress); err != nil {
			return usageError{err: err}
		}
	}
	toStdout := fl.output == "" || fl.output == "-"
	if useColor(colorMode, stdout, toStdout, kind) {
		if j.opts.Palette == "" {
			j.opts.Palette = "default"
		}
	} else {
		j.opts.Palette = ""
	}
	logger.Debug("formatting", "options", j.opts.String(), "inputs", len(inputs), "compress", kind.String())

	dst, finish, err := openOutput(fl.output, stdout, kind, j.opts.Palette != "")
	if err != nil {
		return err
	}
	ferr := j.format(dst, inputs)
	if err := finish(); err != nil && ferr == nil {
		ferr = err
	}
	return ferr
}

// buildOptions layers the preset, the config file and explicitly set flags.
func buildOptions(fs *pflag.FlagSet, fl *cliFlags) (jsonxf.Options, string, error) {
	var file *config.File
	if path := config.Resolve(fl.configPath); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return jsonxf.Options{}, "", err
		}
		file = loaded
	}

	if fs.Changed("minimize") {
		if file == nil {
			file = &config.File{}
		}
		file.Minimize = &fl.minimize
	}
	opts := file.Options()

	colorMode := "auto"
	if file != nil && file.Color != nil {
		colorMode = *file.Color
	}
	if fs.Changed("color") {
		colorMode = fl.color
	}
	switch colorMode {
	case "auto", "always", "never":
	default:
		return jsonxf.Options{}, "", usagef("--color must be auto, always or never, got %q", colorMode)
	}

	if fs.Changed("tab") {
		opts.Indent = unescape(fl.tab)
	}
	if fs.Changed("record-separator") {
		opts.RecordSeparator = unescape(fl.recordSeparator)
	}
	if fl.crlf {
		opts.LineSeparator = "\r\n"
		if !fs.Changed("record-separator") && opts.RecordSeparator == "\n" {
			opts.RecordSeparator = "\r\n"
		}
		if opts.TrailingOutput == "\n" {
			opts.TrailingOutput = "\r\n"
		}
	}
	if fs.Changed("eager") {
		opts.EagerRecordSeparators = fl.eager
	}
	if fs.Changed("strict") {
		opts.Strict = fl.strict
	}
	if fs.Changed("max-depth") {
		opts.MaxDepth = fl.maxDepth
	}
	if fs.Changed("palette") {
		opts.Palette = fl.palette
	}
	if err := opts.Validate(); err != nil {
		return jsonxf.Options{}, "", usageError{err: err}
	}
	return opts, colorMode, nil
}

func validateModes(fs *pflag.FlagSet, fl *cliFlags) error {
	switch {
	case fl.inPlace && fl.check:
		return usagef("--in-place and --check are mutually exclusive")
	case fl.inPlace && (fl.output != "" || fs.Changed("string") || fl.input != ""):
		return usagef("--in-place only works on positional files")
	case fl.inPlace && fs.NArg() == 0:
		return usagef("--in-place needs at least one file")
	case fs.Changed("string") && (fl.input != "" || fs.NArg() > 0):
		return usagef("--string cannot be combined with file input")
	case fl.input != "" && fs.NArg() > 0:
		return usagef("--input cannot be combined with positional files")
	case fl.check && fl.output != "":
		return usagef("--check does not write output")
	}
	return nil
}

// unescape decodes Go escape sequences so tabs and line breaks can be
// passed on the command line. Invalid sequences are taken literally.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	if u, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`); err == nil {
		return u
	}
	return s
}

func useColor(mode string, stdout io.Writer, toStdout bool, kind codec.Kind) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if !toStdout || kind != codec.None || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := stdout.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// openOutput returns the destination writer and a function that flushes
// compression and closes any file it opened.
func openOutput(path string, stdout io.Writer, kind codec.Kind, colored bool) (io.Writer, func() error, error) {
	var (
		base    io.Writer
		closeFn = func() error { return nil }
	)
	if path == "" || path == "-" {
		base = stdout
		if f, ok := stdout.(*os.File); ok && colored {
			base = colorable.NewColorable(f)
		}
	} else {
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, err
		}
		base = f
		closeFn = f.Close
	}
	cw, err := codec.NewWriter(base, kind)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	finish := func() error {
		err := cw.Close()
		if cerr := closeFn(); cerr != nil && err == nil {
			err = cerr
		}
		return err
	}
	return cw, finish, nil
}

type input struct {
	name string
	open func() (io.ReadCloser, error)
}

type job struct {
	opts   jsonxf.Options
	jsonc  bool
	stdin  io.Reader
	logger *slog.Logger
}

func (j *job) inputs(fs *pflag.FlagSet, fl *cliFlags) ([]input, error) {
	if fs.Changed("string") {
		s := fl.str
		return []input{{name: "--string", open: func() (io.ReadCloser, error) {
			return j.prepare(io.NopCloser(strings.NewReader(s)))
		}}}, nil
	}
	paths := fs.Args()
	if len(paths) == 0 {
		path := fl.input
		if path == "" {
			path = "-"
		}
		paths = []string{path}
	}
	inputs := make([]input, 0, len(paths))
	for _, path := range paths {
		if path == "-" {
			if f, ok := j.stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
				return nil, usagef("refusing to read JSON from a terminal; pipe input or name a file")
			}
		}
		inputs = append(inputs, input{name: displayName(path), open: func() (io.ReadCloser, error) {
			rc, _, err := j.openFile(path)
			return rc, err
		}})
	}
	return inputs, nil
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// openFile opens path (or stdin for "-") and decompresses it according to
// its magic bytes.
func (j *job) openFile(path string) (io.ReadCloser, codec.Kind, error) {
	var (
		src     io.Reader = j.stdin
		closeFn           = func() error { return nil }
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, codec.None, err
		}
		src = f
		closeFn = f.Close
	}
	br := bufio.NewReader(src)
	kind := codec.Sniff(br)
	dec, err := codec.NewReader(br, kind)
	if err != nil {
		_ = closeFn()
		return nil, kind, fmt.Errorf("%s: %w", displayName(path), err)
	}
	j.logger.Debug("opened input", "input", displayName(path), "compression", kind.String())
	rc, err := j.prepare(readCloser{Reader: dec, close: func() error {
		derr := dec.Close()
		if cerr := closeFn(); cerr != nil && derr == nil {
			derr = cerr
		}
		return derr
	}})
	return rc, kind, err
}

// prepare applies --jsonc, which needs the whole input in memory.
func (j *job) prepare(rc io.ReadCloser) (io.ReadCloser, error) {
	if !j.jsonc {
		return rc, nil
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		_ = rc.Close()
		return nil, err
	}
	return readCloser{Reader: bytes.NewReader(jsonc.ToJSON(data)), close: rc.Close}, nil
}

// format streams every input through one formatter into dst. Inputs are
// joined with a newline so a bare token at the end of one file never fuses
// with the next.
func (j *job) format(dst io.Writer, inputs []input) error {
	fw, err := jsonxf.NewWriter(dst, &j.opts)
	if err != nil {
		return usageError{err: err}
	}
	for i, in := range inputs {
		if i > 0 {
			if err := fw.WriteByte('\n'); err != nil {
				return err
			}
		}
		rc, err := in.open()
		if err != nil {
			return err
		}
		_, err = fw.ReadFrom(rc)
		_ = rc.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
	}
	if err := fw.Close(); err != nil {
		return err
	}
	j.report(inputNames(inputs), fw.Stats())
	return nil
}

func inputNames(inputs []input) string {
	names := make([]string, len(inputs))
	for i, in := range inputs {
		names[i] = in.name
	}
	return strings.Join(names, ",")
}

func (j *job) report(name string, st jsonxf.Stats) {
	j.logger.Debug("formatted", "input", name, "bytes", st.Bytes)
	if st.Clean() {
		return
	}
	j.logger.Warn("input is not well-formed JSON",
		"input", name,
		"unmatched_closes", st.UnmatchedCloses,
		"mismatched_closes", st.MismatchedCloses,
		"open_containers", st.OpenContainers,
		"truncated_string", st.TruncatedString,
	)
}

func (j *job) checkAll(inputs []input, stdout io.Writer) error {
	failed := 0
	for _, in := range inputs {
		rc, err := in.open()
		if err != nil {
			return err
		}
		ok, err := check.Formatted(rc, &j.opts)
		_ = rc.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
		if !ok {
			failed++
			fmt.Fprintln(stdout, in.name)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs %w", failed, len(inputs), errNotFormatted)
	}
	return nil
}
