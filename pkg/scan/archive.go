package scan

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

var (
	ErrUnsupportedArchive = errors.New("❌ unsupported archive")
	ErrTooManyEntries     = errors.New("❌ too many archive entries")
)

// Entry is a regular file inside an archive.
type Entry struct {
	Name string
	Size int64
	// Open returns the entry contents. Streaming formats only allow Open
	// from inside the Walk callback that produced the entry.
	Open func() (io.ReadCloser, error)
}

// ArchiveReader lists the entries of one archive format.
type ArchiveReader interface {
	// Name returns the format name, e.g. "zip" or "tar.gz".
	Name() string

	// Suffixes returns the lowercase file name suffixes for this format.
	Suffixes() []string

	// Walk calls fn for each regular file in the archive, in archive order.
	// Walk stops at the first error returned by fn.
	Walk(r io.ReaderAt, size int64, fn func(Entry) error) error
}

// registry maps format names to readers
var registry = make(map[string]ArchiveReader)

// Register adds an archive reader, replacing any reader with the same name.
func Register(ar ArchiveReader) {
	registry[ar.Name()] = ar
}

// Get retrieves a reader by format name.
func Get(name string) (ArchiveReader, error) {
	ar, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnsupportedArchive)
	}
	return ar, nil
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForName picks the reader whose suffix matches filename. The longest
// matching suffix wins, so "x.tar.gz" resolves to tar.gz rather than tar.
func ForName(filename string) (ArchiveReader, bool) {
	lower := strings.ToLower(filename)

	var (
		best    ArchiveReader
		bestLen int
	)
	for _, ar := range registry {
		for _, suffix := range ar.Suffixes() {
			if len(suffix) > bestLen && strings.HasSuffix(lower, suffix) {
				best, bestLen = ar, len(suffix)
			}
		}
	}
	return best, best != nil
}
