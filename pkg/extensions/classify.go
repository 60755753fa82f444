package extensions

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind groups extensions by how an installer tool treats them.
type Kind uint8

const (
	KindInstaller  Kind = iota // msi, exe
	KindAppPackage             // msix, appx
	KindBundle                 // msixbundle, appxbundle
	KindArchive                // zip
	KindFont                   // otf, ttf, fnt, ttc, otc

	numKinds = int(KindFont) + 1
)

// kindUnknown is reported for out-of-range extensions. It is not a member of
// Kinds and renders as "Kind(5)".
const kindUnknown = Kind(numKinds)

var kindNames = [numKinds]string{
	KindInstaller:  "installer",
	KindAppPackage: "app-package",
	KindBundle:     "bundle",
	KindArchive:    "archive",
	KindFont:       "font",
}

var kinds = [numExtensions]Kind{
	Msix:       KindAppPackage,
	Msi:        KindInstaller,
	Appx:       KindAppPackage,
	Exe:        KindInstaller,
	Zip:        KindArchive,
	MsixBundle: KindBundle,
	AppxBundle: KindBundle,
	Otf:        KindFont,
	Ttf:        KindFont,
	Fnt:        KindFont,
	Ttc:        KindFont,
	Otc:        KindFont,
}

// Kinds returns every Kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind resolves a kind name as printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown kind %d", k)
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Kind returns the group e belongs to. Out-of-range values report a Kind
// outside Kinds.
func (e Extension) Kind() Kind {
	if !e.IsValid() {
		return kindUnknown
	}
	return kinds[e]
}

func (e Extension) IsFont() bool   { return e.IsValid() && kinds[e] == KindFont }
func (e Extension) IsBundle() bool { return e.IsValid() && kinds[e] == KindBundle }

// IsMSIX reports whether e belongs to the MSIX/APPX packaging family.
func (e Extension) IsMSIX() bool {
	switch e {
	case Msix, Appx, MsixBundle, AppxBundle:
		return true
	}
	return false
}

// Normalize turns a user-supplied token such as ".MSIX" into the form Parse
// expects. It strips one leading dot and lowercases. Tokens containing
// non-ASCII runes are returned without lowercasing, so look-alikes such as
// "mſi" never normalize onto a recognized extension.
func Normalize(token string) string {
	token = strings.TrimPrefix(token, ".")
	for i := 0; i < len(token); i++ {
		if token[i] >= utf8.RuneSelf {
			return token
		}
	}
	return cases.Lower(language.Und).String(token)
}

// FromFileName parses the final extension of name. Directory components are
// ignored and matching is case-insensitive.
func FromFileName(name string) (Extension, error) {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	return Parse(Normalize(path.Ext(base)))
}
