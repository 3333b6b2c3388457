package jsonxf

import (
	"io"
)

// Transform drains r through a formatter configured by opts and writes the
// result to w, finishing the stream at EOF. Memory use is bounded by the
// nesting depth of the input, not its size. Read and write errors are
// returned as is.
func Transform(w io.Writer, r io.Reader, opts *Options) error {
	fw, err := acquireWriter(w, opts)
	if err != nil {
		return err
	}
	defer releaseWriter(fw)
	if _, err := fw.ReadFrom(r); err != nil {
		return err
	}
	return fw.Close()
}

// Format reformats a complete input in memory. It is equivalent to a fresh
// formatter fed the whole input and then finished.
func Format(in []byte, opts *Options) ([]byte, error) {
	var f Formatter
	if err := f.init(opts); err != nil {
		return nil, err
	}
	size := len(in)
	if f.opts.Pretty {
		size += size / 2
	}
	out, err := f.Append(make([]byte, 0, size), in)
	if err != nil {
		return out, err
	}
	return f.AppendFinish(out)
}

// PrettyPrint pretty-prints in using indent as the indent unit.
func PrettyPrint(in []byte, indent string) ([]byte, error) {
	opts := PrettyOptions()
	opts.Indent = indent
	return Format(in, &opts)
}

// PrettyPrintString is PrettyPrint for strings.
func PrettyPrintString(s, indent string) (string, error) {
	out, err := PrettyPrint([]byte(s), indent)
	return string(out), err
}

// Minimize removes all whitespace outside strings. Concatenated documents
// are separated by newlines; there is no trailing newline.
func Minimize(in []byte) ([]byte, error) {
	opts := MinifyOptions()
	return Format(in, &opts)
}

// MinimizeString is Minimize for strings.
func MinimizeString(s string) (string, error) {
	out, err := Minimize([]byte(s))
	return string(out), err
}

// PrettyPrintStream pretty-prints r to w.
func PrettyPrintStream(w io.Writer, r io.Reader, indent string) error {
	opts := PrettyOptions()
	opts.Indent = indent
	return Transform(w, r, &opts)
}

// MinimizeStream minimizes r to w.
func MinimizeStream(w io.Writer, r io.Reader) error {
	opts := MinifyOptions()
	return Transform(w, r, &opts)
}
