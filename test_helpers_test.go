package jsonxf

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"testing"
)

var sgrPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripSGR(b []byte) []byte {
	return sgrPattern.ReplaceAll(b, nil)
}

// formatChunks feeds in split at the given offsets and finishes.
func formatChunks(t *testing.T, opts *Options, in []byte, cuts ...int) ([]byte, error) {
	t.Helper()
	f, err := NewFormatter(opts)
	if err != nil {
		t.Fatalf("NewFormatter failed: %v", err)
	}
	var out []byte
	prev := 0
	for _, cut := range append(cuts, len(in)) {
		if out, err = f.Append(out, in[prev:cut]); err != nil {
			return out, err
		}
		prev = cut
	}
	return f.AppendFinish(out)
}

// formatBytewise feeds in one byte at a time and finishes.
func formatBytewise(t *testing.T, opts *Options, in []byte) ([]byte, error) {
	t.Helper()
	f, err := NewFormatter(opts)
	if err != nil {
		t.Fatalf("NewFormatter failed: %v", err)
	}
	var out []byte
	for _, b := range in {
		if out, err = f.AppendByte(out, b); err != nil {
			return out, err
		}
	}
	return f.AppendFinish(out)
}

func mustFormat(t *testing.T, in string, opts *Options) string {
	t.Helper()
	out, err := Format([]byte(in), opts)
	if err != nil {
		t.Fatalf("Format(%q) failed: %v", in, err)
	}
	return string(out)
}

func expectOutput(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected:\n%q\nactual:\n%q", expected, actual)
	}
}

type zeroReader struct {
	called bool
}

func (r *zeroReader) Read(_ []byte) (int, error) {
	if r.called {
		return 0, io.EOF
	}
	r.called = true
	return 0, nil
}

type errAfterReader struct {
	data []byte
	err  error
}

func (r *errAfterReader) Read(p []byte) (int, error) {
	if len(r.data) > 0 {
		n := copy(p, r.data)
		r.data = r.data[n:]
		return n, nil
	}
	if r.err == nil {
		r.err = errors.New("read err")
	}
	return 0, r.err
}

type errWriter struct{}

func (errWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("write err")
}

type shortWriter struct {
	buf bytes.Buffer
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) < 2 {
		return w.buf.Write(p)
	}
	return w.buf.Write(p[:len(p)/2])
}

type failAfterWriter struct {
	count int
	fail  int
	buf   bytes.Buffer
}

func (w *failAfterWriter) Write(p []byte) (int, error) {
	w.count++
	if w.count > w.fail {
		return 0, errors.New("write err")
	}
	return w.buf.Write(p)
}

// chunkReader returns at most size bytes per Read.
type chunkReader struct {
	data []byte
	size int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := min(len(p), r.size, len(r.data))
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) {
	return len(p), nil
}
