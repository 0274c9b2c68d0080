package fileutil

import (
	"bytes"
	"io"
	"os"

	"github.com/thoreinstein/configuror/internal/errors"
)

// MaxFileSize bounds every configuration file and every script output that
// is read into memory (10 MiB).
const MaxFileSize = 10 << 20

// ErrFileTooLarge indicates that input exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// IsRegularFile reports whether path names an existing regular file.
// Directories, sockets and dangling symlinks are reported as absent.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ReadFileWithLimit reads a whole file, refusing files over MaxFileSize.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return ReadAll(f)
}

// ReadAll reads r to EOF, failing with ErrFileTooLarge past MaxFileSize.
func ReadAll(r io.Reader) ([]byte, error) {
	var b LimitedBuffer
	if _, err := io.Copy(&b, r); err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return nil, err
		}
		return nil, errors.Wrap(err, "reading file")
	}
	return b.Bytes(), nil
}

// LimitedBuffer collects writes up to MaxFileSize. A write that would pass
// the limit fails with ErrFileTooLarge and stores nothing. It suits
// subprocess output, where a runaway script must not exhaust memory.
type LimitedBuffer struct {
	buf bytes.Buffer
}

// Write appends p unless the buffer would exceed MaxFileSize.
func (b *LimitedBuffer) Write(p []byte) (int, error) {
	if b.buf.Len()+len(p) > MaxFileSize {
		return 0, ErrFileTooLarge
	}
	return b.buf.Write(p)
}

// Bytes returns the collected data.
func (b *LimitedBuffer) Bytes() []byte { return b.buf.Bytes() }

// Len returns the number of collected bytes.
func (b *LimitedBuffer) Len() int { return b.buf.Len() }
