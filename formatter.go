package jsonxf

import (
	"errors"
	"fmt"

	"pkt.systems/jsonxf/internal/ansi"
)

const defaultStackDepth = 64

var (
	// ErrUnmatchedClose reports a closing bracket with no open container.
	ErrUnmatchedClose = errors.New("jsonxf: closing bracket without matching opener")
	// ErrMismatchedClose reports '}' closing an array or ']' closing an object.
	ErrMismatchedClose = errors.New("jsonxf: closing bracket does not match opener")
	// ErrTruncatedString reports input that ended inside a string.
	ErrTruncatedString = errors.New("jsonxf: input ended inside a string")
	// ErrUnclosedContainer reports input that ended with open containers.
	ErrUnclosedContainer = errors.New("jsonxf: input ended inside a container")
	// ErrTooDeep reports nesting beyond Options.MaxDepth.
	ErrTooDeep = errors.New("jsonxf: nesting exceeds max depth")
	// ErrFinished is returned when feeding a formatter after Finish.
	ErrFinished = errors.New("jsonxf: formatter already finished")
)

// SyntaxError carries the input offset at which a structural error was
// detected. Use errors.Is against the Err* sentinels to classify it.
type SyntaxError struct {
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Stats counts what a lenient formatter tolerated.
type Stats struct {
	// Bytes is the number of input bytes consumed.
	Bytes int64
	// UnmatchedCloses counts closers seen with an empty container stack.
	UnmatchedCloses int
	// MismatchedCloses counts closers whose kind differed from the open container.
	MismatchedCloses int
	// OpenContainers is the nesting depth (at Finish, the unclosed count).
	OpenContainers int
	// TruncatedString is set when Finish found the input inside a string.
	TruncatedString bool
}

// Clean reports whether no structural anomaly was seen.
func (s Stats) Clean() bool {
	return s.UnmatchedCloses == 0 && s.MismatchedCloses == 0 && s.OpenContainers == 0 && !s.TruncatedString
}

type containerKind uint8

const (
	kindObject containerKind = iota + 1
	kindArray
)

type frame struct {
	kind      containerKind
	expectKey bool
}

type scanMode uint8

const (
	modeNormal scanMode = iota
	modeString
	modeStringEscape
)

// Formatter is a resumable whitespace transcoder. It consumes JSON bytes in
// chunks of any size and appends the reformatted bytes to a caller supplied
// slice. Everything it remembers between calls is the container stack, the
// scan mode and a handful of flags, so memory is bounded by nesting depth.
//
// A Formatter is not safe for concurrent use.
type Formatter struct {
	opts  Options
	style styles

	stack    []frame
	stackBuf [defaultStackDepth]frame

	mode     scanMode
	inScalar bool // inside a bare token (number, literal, anything unquoted)
	styled   bool // the current string or scalar opened an SGR sequence
	opened   bool // an opener was written and its interior whitespace is deferred
	pending  bool // a top-level value completed and its separator is owed
	wrote    bool
	finished bool
	err      error

	stats   Stats
	byteBuf [1]byte
}

// NewFormatter validates opts and returns a ready formatter. A nil opts
// means PrettyOptions.
func NewFormatter(opts *Options) (*Formatter, error) {
	f := &Formatter{}
	if err := f.init(opts); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Formatter) init(opts *Options) error {
	o, err := resolveOptions(opts)
	if err != nil {
		return err
	}
	st, err := resolvePalette(o.Palette)
	if err != nil {
		return err
	}
	f.opts = o
	f.style = st
	f.Reset()
	return nil
}

// Reset returns the formatter to its initial state, keeping its options. It
// also re-arms a finished or failed formatter.
func (f *Formatter) Reset() {
	f.stack = f.stackBuf[:0]
	f.mode = modeNormal
	f.inScalar = false
	f.styled = false
	f.opened = false
	f.pending = false
	f.wrote = false
	f.finished = false
	f.err = nil
	f.stats = Stats{}
}

// Options returns the validated options the formatter runs with.
func (f *Formatter) Options() Options {
	return f.opts
}

// Depth returns the current container nesting depth.
func (f *Formatter) Depth() int {
	return len(f.stack)
}

// Stats returns the anomaly counters collected so far.
func (f *Formatter) Stats() Stats {
	s := f.stats
	if !f.finished {
		s.OpenContainers = len(f.stack)
	}
	return s
}

// Append feeds chunk and appends the resulting output to dst. The chunk may
// end anywhere, including mid-string or mid-escape; output is identical to
// feeding the same bytes in one call.
func (f *Formatter) Append(dst, chunk []byte) ([]byte, error) {
	return appendChunk(f, dst, chunk)
}

// AppendString is Append for string input.
func (f *Formatter) AppendString(dst []byte, s string) ([]byte, error) {
	return appendChunk(f, dst, s)
}

// AppendByte feeds a single byte.
func (f *Formatter) AppendByte(dst []byte, b byte) ([]byte, error) {
	f.byteBuf[0] = b
	return appendChunk(f, dst, f.byteBuf[:])
}

func appendChunk[T string | []byte](f *Formatter, dst []byte, chunk T) ([]byte, error) {
	if f.err != nil {
		return dst, f.err
	}
	if f.finished {
		return dst, ErrFinished
	}
	n := len(chunk)
	for i := 0; i < n; {
		switch f.mode {
		case modeStringEscape:
			dst = append(dst, chunk[i])
			f.mode = modeString
			i++
		case modeString:
			j := i
			for j < n && chunk[j] != '"' && chunk[j] != '\\' {
				j++
			}
			dst = append(dst, chunk[i:j]...)
			if j == n {
				i = n
				continue
			}
			if chunk[j] == '\\' {
				dst = append(dst, '\\')
				f.mode = modeStringEscape
			} else {
				dst = f.closeString(dst)
			}
			i = j + 1
		default:
			var err error
			dst, err = f.appendNormal(dst, chunk[i])
			if err != nil {
				f.stats.Bytes += int64(i)
				f.err = &SyntaxError{Offset: f.stats.Bytes, Err: err}
				return dst, f.err
			}
			i++
		}
	}
	f.stats.Bytes += int64(n)
	return dst, nil
}

func (f *Formatter) appendNormal(dst []byte, b byte) ([]byte, error) {
	switch b {
	case ' ', '\t', '\n', '\r':
		return f.endScalar(dst), nil
	case '"':
		dst = f.endScalar(dst)
		dst = f.beginValue(dst)
		style := f.style.str
		if top := f.top(); top != nil && top.kind == kindObject && top.expectKey {
			style = f.style.key
			top.expectKey = false
		}
		dst = f.openStyle(dst, style)
		f.mode = modeString
		return append(dst, '"'), nil
	case '{', '[':
		dst = f.endScalar(dst)
		if f.opts.MaxDepth > 0 && len(f.stack) >= f.opts.MaxDepth {
			return dst, ErrTooDeep
		}
		dst = f.beginValue(dst)
		dst = appendStyled(dst, f.style.brackets, b)
		if b == '{' {
			f.stack = append(f.stack, frame{kind: kindObject, expectKey: true})
		} else {
			f.stack = append(f.stack, frame{kind: kindArray})
		}
		f.opened = true
		return dst, nil
	case '}', ']':
		dst = f.endScalar(dst)
		return f.appendClose(dst, b)
	case ',':
		dst = f.endScalar(dst)
		dst = f.beginPunct(dst)
		dst = appendStyled(dst, f.style.punct, ',')
		if top := f.top(); top != nil && top.kind == kindObject {
			top.expectKey = true
		}
		if f.opts.Pretty {
			dst = f.appendNewline(dst, len(f.stack))
		}
		return dst, nil
	case ':':
		dst = f.endScalar(dst)
		dst = f.beginPunct(dst)
		dst = appendStyled(dst, f.style.punct, ':')
		if top := f.top(); top != nil && top.kind == kindObject {
			top.expectKey = false
		}
		if f.opts.Pretty {
			dst = append(dst, f.opts.AfterColon...)
		}
		return dst, nil
	default:
		if !f.inScalar {
			dst = f.beginValue(dst)
			dst = f.openStyle(dst, f.style.scalarStyle(b))
			f.inScalar = true
		}
		return append(dst, b), nil
	}
}

func (f *Formatter) appendClose(dst []byte, b byte) ([]byte, error) {
	want := kindArray
	if b == '}' {
		want = kindObject
	}
	n := len(f.stack)
	if n == 0 {
		// A stray closer is written as its own top-level token at depth 0.
		if f.opts.Strict {
			return dst, ErrUnmatchedClose
		}
		f.stats.UnmatchedCloses++
		dst = f.beginValue(dst)
		dst = appendStyled(dst, f.style.brackets, b)
		return f.completeRecord(dst), nil
	}
	if f.stack[n-1].kind != want {
		if f.opts.Strict {
			return dst, ErrMismatchedClose
		}
		f.stats.MismatchedCloses++
	}
	f.stack = f.stack[:n-1]
	if f.opened {
		f.opened = false
	} else if f.opts.Pretty {
		dst = f.appendNewline(dst, n-1)
	}
	dst = appendStyled(dst, f.style.brackets, b)
	if n == 1 {
		dst = f.completeRecord(dst)
	}
	return dst, nil
}

func (f *Formatter) closeString(dst []byte) []byte {
	dst = append(dst, '"')
	f.mode = modeNormal
	dst = f.closeStyle(dst)
	if len(f.stack) == 0 {
		dst = f.completeRecord(dst)
	}
	return dst
}

func (f *Formatter) endScalar(dst []byte) []byte {
	if !f.inScalar {
		return dst
	}
	f.inScalar = false
	dst = f.closeStyle(dst)
	if len(f.stack) == 0 {
		dst = f.completeRecord(dst)
	}
	return dst
}

// beginValue runs before the first byte of a string, container or bare
// token. At the top level it settles a pending record separator; inside a
// container it writes the whitespace deferred by the last opener.
func (f *Formatter) beginValue(dst []byte) []byte {
	if len(f.stack) == 0 {
		if f.pending {
			dst = append(dst, f.opts.RecordSeparator...)
			f.pending = false
		}
		f.wrote = true
		return dst
	}
	return f.flushOpened(dst)
}

// beginPunct is beginValue for ',' and ':'. Punctuation joins top-level
// tokens, so it cancels a pending record separator instead of writing it.
func (f *Formatter) beginPunct(dst []byte) []byte {
	if len(f.stack) == 0 {
		f.pending = false
		f.wrote = true
		return dst
	}
	return f.flushOpened(dst)
}

func (f *Formatter) flushOpened(dst []byte) []byte {
	if !f.opened {
		return dst
	}
	f.opened = false
	if f.opts.Pretty {
		dst = f.appendNewline(dst, len(f.stack))
	}
	return dst
}

func (f *Formatter) completeRecord(dst []byte) []byte {
	if f.opts.EagerRecordSeparators {
		return append(dst, f.opts.RecordSeparator...)
	}
	f.pending = true
	return dst
}

func (f *Formatter) top() *frame {
	if len(f.stack) == 0 {
		return nil
	}
	return &f.stack[len(f.stack)-1]
}

func (f *Formatter) openStyle(dst []byte, style string) []byte {
	if style == "" {
		return dst
	}
	f.styled = true
	return append(dst, style...)
}

func (f *Formatter) closeStyle(dst []byte) []byte {
	if !f.styled {
		return dst
	}
	f.styled = false
	return append(dst, ansi.Reset...)
}

func (f *Formatter) appendNewline(dst []byte, depth int) []byte {
	dst = append(dst, f.opts.LineSeparator...)
	return appendIndent(dst, f.opts.Indent, depth)
}

// AppendFinish flushes end-of-input state: it closes a pending bare token and
// writes TrailingOutput once if any value was written. In Strict mode input
// that ends inside a string or container is an error; otherwise the partial
// output already written stands as is and the anomaly is recorded in Stats.
// An open colour is reset either way.
// Feeding after AppendFinish returns ErrFinished until Reset.
func (f *Formatter) AppendFinish(dst []byte) ([]byte, error) {
	if f.err != nil {
		return dst, f.err
	}
	if f.finished {
		return dst, ErrFinished
	}
	f.finished = true
	f.stats.OpenContainers = len(f.stack)
	f.stats.TruncatedString = f.mode != modeNormal
	f.mode = modeNormal
	dst = f.closeStyle(dst)
	if f.opts.Strict {
		var err error
		switch {
		case f.stats.TruncatedString:
			err = ErrTruncatedString
		case f.stats.OpenContainers > 0:
			err = ErrUnclosedContainer
		}
		if err != nil {
			f.err = &SyntaxError{Offset: f.stats.Bytes, Err: err}
			return dst, f.err
		}
	}
	dst = f.endScalar(dst)
	if f.wrote {
		dst = append(dst, f.opts.TrailingOutput...)
	}
	return dst, nil
}

func appendStyled(dst []byte, style string, b byte) []byte {
	if style == "" {
		return append(dst, b)
	}
	dst = append(dst, style...)
	dst = append(dst, b)
	return append(dst, ansi.Reset...)
}

func appendIndent(dst []byte, indent string, depth int) []byte {
	if len(indent) == 2 && indent[0] == ' ' && indent[1] == ' ' {
		for range depth {
			dst = append(dst, ' ', ' ')
		}
		return dst
	}
	for range depth {
		dst = append(dst, indent...)
	}
	return dst
}
