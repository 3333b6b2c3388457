package jsonxf

import (
	"io"
	"sync"
)

const maxScratchCap = 64 * 1024

var writerPool = sync.Pool{
	New: func() any {
		return &Writer{}
	},
}

func acquireWriter(w io.Writer, opts *Options) (*Writer, error) {
	fw := writerPool.Get().(*Writer)
	if err := fw.f.init(opts); err != nil {
		writerPool.Put(fw)
		return nil, err
	}
	fw.w = w
	fw.out = fw.out[:0]
	return fw, nil
}

func releaseWriter(fw *Writer) {
	if fw == nil {
		return
	}
	fw.w = nil
	fw.f.Reset()
	if cap(fw.out) > maxScratchCap {
		fw.out = nil
	} else {
		fw.out = fw.out[:0]
	}
	writerPool.Put(fw)
}
