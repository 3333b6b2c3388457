// Package check decides whether JSON input is already in the layout a set
// of formatter options would produce, without buffering either side.
package check

import (
	"bytes"
	"fmt"
	"hash"
	"io"

	"github.com/zeebo/blake3"

	"pkt.systems/jsonxf"
)

// Comparer hashes an input stream and an output stream with BLAKE3 so the
// two can be compared once both are drained.
type Comparer struct {
	in  hash.Hash
	out hash.Hash
}

// NewComparer returns a Comparer with fresh hashers.
func NewComparer() *Comparer {
	return &Comparer{in: blake3.New(), out: blake3.New()}
}

// Reader returns r with everything read from it hashed as input.
func (c *Comparer) Reader(r io.Reader) io.Reader {
	return io.TeeReader(r, c.in)
}

// Writer returns w with everything written to it hashed as output. A nil w
// only hashes.
func (c *Comparer) Writer(w io.Writer) io.Writer {
	if w == nil {
		return c.out
	}
	return io.MultiWriter(w, c.out)
}

// Equal reports whether the input and output seen so far are identical.
func (c *Comparer) Equal() bool {
	in, out := c.Sums()
	return bytes.Equal(in, out)
}

// Sums returns the input and output digests.
func (c *Comparer) Sums() (in, out []byte) {
	return c.in.Sum(nil), c.out.Sum(nil)
}

// Formatted streams r through a formatter configured by opts and reports
// whether the output equals the input byte for byte.
func Formatted(r io.Reader, opts *jsonxf.Options) (bool, error) {
	c := NewComparer()
	if err := jsonxf.Transform(c.Writer(nil), c.Reader(r), opts); err != nil {
		return false, fmt.Errorf("check: %w", err)
	}
	return c.Equal(), nil
}
