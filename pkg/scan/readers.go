package scan

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
)

func init() {
	Register(zipReader{})
	Register(&tarReader{name: "tar", suffixes: []string{".tar"}})
	Register(&tarReader{
		name:     "tar.gz",
		suffixes: []string{".tar.gz", ".tgz"},
		decompress: func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		},
	})
	Register(&tarReader{
		name:     "tar.bz2",
		suffixes: []string{".tar.bz2", ".tbz2", ".tbz"},
		decompress: func(r io.Reader) (io.ReadCloser, error) {
			return bzip2.NewReader(r, &bzip2.ReaderConfig{})
		},
	})
}

type zipReader struct{}

func (zipReader) Name() string { return "zip" }

// Bundles and app packages are zip containers too, but they are matched as
// files and never opened.
func (zipReader) Suffixes() []string { return []string{".zip"} }

func (zipReader) Walk(r io.ReaderAt, size int64, fn func(Entry) error) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entry := Entry{
			Name: f.Name,
			Size: int64(f.UncompressedSize64),
			Open: func() (io.ReadCloser, error) {
				return f.Open()
			},
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	return nil
}

// tarReader handles plain and compressed tar streams.
type tarReader struct {
	name       string
	suffixes   []string
	decompress func(io.Reader) (io.ReadCloser, error)
}

func (t *tarReader) Name() string       { return t.name }
func (t *tarReader) Suffixes() []string { return t.suffixes }

func (t *tarReader) Walk(r io.ReaderAt, size int64, fn func(Entry) error) error {
	var stream io.Reader = io.NewSectionReader(r, 0, size)
	if t.decompress != nil {
		dr, err := t.decompress(stream)
		if err != nil {
			return fmt.Errorf("opening %s: %w", t.name, err)
		}
		defer dr.Close()
		stream = dr
	}

	tr := tar.NewReader(stream)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar header: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		entry := Entry{
			Name: header.Name,
			Size: header.Size,
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(tr), nil
			},
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
}
