package jsonxf

import (
	"errors"
	"io"
)

const readBufSize = 4096

// Writer reformats everything written to it and passes the result to an
// underlying writer. Output produced by a Write is handed on before Write
// returns; the only state kept between calls is the Formatter's.
//
// Close must be called once input is complete to flush trailing state. It
// does not close the underlying writer.
type Writer struct {
	f   Formatter
	w   io.Writer
	out []byte
	buf [readBufSize]byte
}

// NewWriter returns a Writer that writes reformatted JSON to w.
func NewWriter(w io.Writer, opts *Options) (*Writer, error) {
	fw := &Writer{w: w}
	if err := fw.f.init(opts); err != nil {
		return nil, err
	}
	return fw, nil
}

// Reset discards formatter state and switches output to dst, keeping the
// options.
func (w *Writer) Reset(dst io.Writer) {
	w.w = dst
	w.f.Reset()
	w.out = w.out[:0]
}

// Stats returns the formatter's anomaly counters.
func (w *Writer) Stats() Stats {
	return w.f.Stats()
}

// Write feeds p to the formatter. On a syntax error n is the number of bytes
// consumed before the offending byte.
func (w *Writer) Write(p []byte) (int, error) {
	before := w.f.stats.Bytes
	out, err := w.f.Append(w.out[:0], p)
	w.out = out
	if werr := w.flush(); werr != nil {
		return 0, werr
	}
	if err != nil {
		return consumed(err, before), err
	}
	return len(p), nil
}

// WriteString is Write for string input without a conversion copy.
func (w *Writer) WriteString(s string) (int, error) {
	before := w.f.stats.Bytes
	out, err := w.f.AppendString(w.out[:0], s)
	w.out = out
	if werr := w.flush(); werr != nil {
		return 0, werr
	}
	if err != nil {
		return consumed(err, before), err
	}
	return len(s), nil
}

// WriteByte feeds a single byte.
func (w *Writer) WriteByte(b byte) error {
	out, err := w.f.AppendByte(w.out[:0], b)
	w.out = out
	if werr := w.flush(); werr != nil {
		return werr
	}
	return err
}

// ReadFrom drains r through the formatter using a fixed read buffer. It does
// not call Close.
func (w *Writer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		n, rerr := r.Read(w.buf[:])
		if n > 0 {
			total += int64(n)
			out, err := w.f.Append(w.out[:0], w.buf[:n])
			w.out = out
			if werr := w.flush(); werr != nil {
				return total, werr
			}
			if err != nil {
				return total, err
			}
		}
		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, rerr
		}
	}
}

// Close finishes the stream, writing any trailing output.
func (w *Writer) Close() error {
	out, err := w.f.AppendFinish(w.out[:0])
	w.out = out
	if werr := w.flush(); werr != nil {
		return werr
	}
	return err
}

func (w *Writer) flush() error {
	if len(w.out) == 0 {
		return nil
	}
	n, err := w.w.Write(w.out)
	if err == nil && n < len(w.out) {
		err = io.ErrShortWrite
	}
	w.out = w.out[:0]
	return err
}

func consumed(err error, before int64) int {
	var se *SyntaxError
	if errors.As(err, &se) && se.Offset >= before {
		return int(se.Offset - before)
	}
	return 0
}
