// Package extensions defines the closed set of installer file extensions
// recognized by pkgext.
package extensions

import (
	"errors"
	"fmt"
	"strconv"
)

// Extension is one of the recognized file extensions. The zero value is Msix.
// Values order by declaration, so they sort deterministically.
type Extension uint8

const (
	Msix Extension = iota
	Msi
	Appx
	Exe
	Zip
	MsixBundle
	AppxBundle
	Otf
	Ttf
	Fnt
	Ttc
	Otc

	numExtensions = int(Otc) + 1
)

// canonical is the authoritative list. Index is the Extension value.
var canonical = [numExtensions]string{
	Msix:       "msix",
	Msi:        "msi",
	Appx:       "appx",
	Exe:        "exe",
	Zip:        "zip",
	MsixBundle: "msixbundle",
	AppxBundle: "appxbundle",
	Otf:        "otf",
	Ttf:        "ttf",
	Fnt:        "fnt",
	Ttc:        "ttc",
	Otc:        "otc",
}

var lookup = func() map[string]Extension {
	m := make(map[string]Extension, numExtensions)
	for i, s := range canonical {
		m[s] = Extension(i)
	}
	return m
}()

// ErrInvalidExtension matches every ValidFileExtensionsError via errors.Is.
var ErrInvalidExtension = errors.New("❌ invalid file extension")

// ValidFileExtensionsError is returned when a string is not one of the
// recognized extensions.
type ValidFileExtensionsError struct {
	Extension string
}

func (e *ValidFileExtensionsError) Error() string {
	return "Invalid file extension: " + e.Extension
}

func (e *ValidFileExtensionsError) Is(target error) bool {
	return target == ErrInvalidExtension
}

// All returns every recognized extension string in declaration order.
func All() [numExtensions]string {
	return canonical
}

// Values returns every Extension in declaration order.
func Values() []Extension {
	out := make([]Extension, numExtensions)
	for i := range out {
		out[i] = Extension(i)
	}
	return out
}

// Parse matches s exactly against the recognized extensions. No trimming or
// case folding is applied; see Normalize.
func Parse(s string) (Extension, error) {
	if e, ok := lookup[s]; ok {
		return e, nil
	}
	return 0, &ValidFileExtensionsError{Extension: s}
}

// IsValid reports whether e is one of the declared extensions.
func (e Extension) IsValid() bool {
	return int(e) < numExtensions
}

func (e Extension) String() string {
	if !e.IsValid() {
		return "Extension(" + strconv.Itoa(int(e)) + ")"
	}
	return canonical[e]
}

// MarshalText encodes e as its lowercase canonical string.
func (e Extension) MarshalText() ([]byte, error) {
	if !e.IsValid() {
		return nil, fmt.Errorf("marshal %s: %w", e, ErrInvalidExtension)
	}
	return []byte(canonical[e]), nil
}

// UnmarshalText decodes the canonical string form produced by MarshalText.
func (e *Extension) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
