// Package scan finds files with recognized installer extensions in directory
// trees and inside archives. Files are matched by name only; contents are
// read solely to list the entries of archives.
package scan

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/flavor/go/pkgext/pkg/extensions"
	"github.com/provide-io/flavor/go/pkgext/pkg/logging"
)

const (
	DefaultMaxEntries = 100000

	maxNestedDepth = 2
	maxNestedSize  = 256 << 20
)

// Match is a file whose name carries a recognized extension.
type Match struct {
	Path      string               `json:"path"`
	Extension extensions.Extension `json:"extension"`
	Kind      extensions.Kind      `json:"kind"`
	Size      int64                `json:"size"`
	// Archive is the containing archive, empty for plain files. Nested
	// archives are joined with "!".
	Archive string `json:"archive,omitempty"`
}

// Options configures a Scanner.
type Options struct {
	Logger hclog.Logger
	// Kinds restricts matches to these kinds. Empty means all kinds.
	Kinds []extensions.Kind
	// Recurse opens archives found while walking, up to two levels deep.
	Recurse    bool
	MaxEntries int
}

// Scanner is safe for concurrent use.
type Scanner struct {
	logger     hclog.Logger
	kinds      map[extensions.Kind]bool
	recurse    bool
	maxEntries int
}

// New creates a Scanner. Zero-valued options fall back to defaults.
func New(opts Options) *Scanner {
	s := &Scanner{
		logger:     opts.Logger,
		recurse:    opts.Recurse,
		maxEntries: opts.MaxEntries,
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.maxEntries <= 0 {
		s.maxEntries = DefaultMaxEntries
	}
	if len(opts.Kinds) > 0 {
		s.kinds = make(map[extensions.Kind]bool, len(opts.Kinds))
		for _, k := range opts.Kinds {
			s.kinds[k] = true
		}
	}
	return s
}

// Scan matches files under root. A file root is matched on its own name, and
// when it is a supported archive its entries are listed as well, the same as
// an archive found while walking with Recurse set. An unreadable root archive
// is an error; unreadable archives inside a directory are logged and skipped.
func (s *Scanner) Scan(ctx context.Context, root string) ([]Match, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		var matches []Match
		s.consider(&matches, root, "", info.Size())
		if ar, ok := ForName(root); ok {
			entries, err := s.scanFile(ctx, ar, root)
			if err != nil {
				return nil, err
			}
			matches = append(matches, entries...)
		}
		sortMatches(matches)
		return matches, nil
	}

	s.logger.Debug("walking directory", "root", root, "recurse", s.recurse)

	var matches []Match
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		s.consider(&matches, p, "", info.Size())

		if !s.recurse {
			return nil
		}
		if ar, ok := ForName(p); ok {
			nested, err := s.scanFile(ctx, ar, p)
			if err != nil {
				if isFatal(err) {
					return err
				}
				s.logger.Warn("skipping unreadable archive", "archive", p, "error", err)
				return nil
			}
			matches = append(matches, nested...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sortMatches(matches)
	return matches, nil
}

// ScanArchive lists the entries of the archive at path without extracting it.
func (s *Scanner) ScanArchive(ctx context.Context, path string) ([]Match, error) {
	ar, ok := ForName(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedArchive)
	}
	matches, err := s.scanFile(ctx, ar, path)
	if err != nil {
		return nil, err
	}
	sortMatches(matches)
	return matches, nil
}

func (s *Scanner) scanFile(ctx context.Context, ar ArchiveReader, path string) ([]Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	var matches []Match
	if err := s.walkArchive(ctx, ar, f, info.Size(), path, 0, &matches); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return matches, nil
}

func (s *Scanner) walkArchive(ctx context.Context, ar ArchiveReader, r io.ReaderAt, size int64, archive string, depth int, matches *[]Match) error {
	s.logger.Debug("reading archive", "archive", archive, "format", ar.Name(), "depth", depth)

	count := 0
	return ar.Walk(r, size, func(e Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++
		if count > s.maxEntries {
			return fmt.Errorf("%s: %w (limit %d)", archive, ErrTooManyEntries, s.maxEntries)
		}
		s.consider(matches, e.Name, archive, e.Size)

		if !s.recurse || depth >= maxNestedDepth {
			return nil
		}
		nestedAr, ok := ForName(e.Name)
		if !ok {
			return nil
		}
		if e.Size > maxNestedSize {
			s.logger.Warn("nested archive too large, not opened", "archive", archive, "entry", e.Name, "size", e.Size)
			return nil
		}

		data, err := readEntry(e)
		if err != nil {
			s.logger.Warn("cannot read nested archive", "archive", archive, "entry", e.Name, "error", err)
			return nil
		}
		var nested []Match
		err = s.walkArchive(ctx, nestedAr, bytes.NewReader(data), int64(len(data)), archive+"!"+e.Name, depth+1, &nested)
		if err == nil {
			*matches = append(*matches, nested...)
			return nil
		}
		if isFatal(err) {
			return err
		}
		s.logger.Warn("skipping unreadable nested archive", "archive", archive, "entry", e.Name, "error", err)
		return nil
	})
}

func (s *Scanner) consider(matches *[]Match, name, archive string, size int64) {
	ext, err := extensions.FromFileName(name)
	if err != nil {
		s.logger.Trace("not recognized", "path", name, "archive", archive)
		return
	}
	if s.kinds != nil && !s.kinds[ext.Kind()] {
		return
	}
	s.logger.Debug("matched", "path", name, "extension", ext, "archive", archive)
	*matches = append(*matches, Match{
		Path:      name,
		Extension: ext,
		Kind:      ext.Kind(),
		Size:      size,
		Archive:   archive,
	})
}

func readEntry(e Entry) ([]byte, error) {
	rc, err := e.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxNestedSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxNestedSize {
		return nil, fmt.Errorf("entry exceeds %d bytes", maxNestedSize)
	}
	return data, nil
}

// isFatal reports errors that must stop the whole scan rather than only the
// nested archive that produced them.
func isFatal(err error) bool {
	return errors.Is(err, ErrTooManyEntries) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func sortMatches(matches []Match) {
	slices.SortFunc(matches, func(a, b Match) int {
		return cmp.Or(cmp.Compare(a.Archive, b.Archive), cmp.Compare(a.Path, b.Path))
	})
}
