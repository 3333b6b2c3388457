package main

import (
	"fmt"
	"os"
	"path/filepath"

	"pkt.systems/jsonxf"
	"pkt.systems/jsonxf/internal/check"
	"pkt.systems/jsonxf/internal/codec"
)

func (j *job) rewriteAll(paths []string) error {
	for _, path := range paths {
		changed, err := j.rewrite(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		j.logger.Debug("rewrite", "file", path, "changed", changed)
	}
	return nil
}

// rewrite formats path into a temporary file next to it and renames that
// over the original. The original is never truncated while it is being
// read, keeps its permissions and compression, and is left untouched when
// formatting would not change it.
func (j *job) rewrite(path string) (changed bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if !info.Mode().IsRegular() {
		return false, fmt.Errorf("not a regular file")
	}

	in, kind, err := j.openFile(path)
	if err != nil {
		return false, err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".jsonxf-*")
	if err != nil {
		return false, err
	}
	renamed := false
	defer func() {
		if !renamed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	cw, err := codec.NewWriter(tmp, kind)
	if err != nil {
		return false, err
	}
	cmp := check.NewComparer()
	fw, err := jsonxf.NewWriter(cmp.Writer(cw), &j.opts)
	if err != nil {
		return false, err
	}
	if _, err := fw.ReadFrom(cmp.Reader(in)); err != nil {
		return false, err
	}
	if err := fw.Close(); err != nil {
		return false, err
	}
	if err := cw.Close(); err != nil {
		return false, err
	}
	j.report(path, fw.Stats())

	inSum, outSum := cmp.Sums()
	j.logger.Debug("digest", "file", path, "input", fmt.Sprintf("%x", inSum), "output", fmt.Sprintf("%x", outSum))
	if cmp.Equal() {
		return false, nil
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return false, err
	}
	if err := tmp.Sync(); err != nil {
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		renamed = true
		return false, err
	}
	renamed = true
	return true, nil
}
