package extensions

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	tests := []struct {
		ext    Extension
		kind   Kind
		font   bool
		bundle bool
		msix   bool
	}{
		{ext: Msix, kind: KindAppPackage, msix: true},
		{ext: Msi, kind: KindInstaller},
		{ext: Appx, kind: KindAppPackage, msix: true},
		{ext: Exe, kind: KindInstaller},
		{ext: Zip, kind: KindArchive},
		{ext: MsixBundle, kind: KindBundle, bundle: true, msix: true},
		{ext: AppxBundle, kind: KindBundle, bundle: true, msix: true},
		{ext: Otf, kind: KindFont, font: true},
		{ext: Ttf, kind: KindFont, font: true},
		{ext: Fnt, kind: KindFont, font: true},
		{ext: Ttc, kind: KindFont, font: true},
		{ext: Otc, kind: KindFont, font: true},
	}

	require.Len(t, tests, numExtensions)
	for _, tt := range tests {
		t.Run(tt.ext.String(), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.ext.Kind())
			assert.Equal(t, tt.font, tt.ext.IsFont())
			assert.Equal(t, tt.bundle, tt.ext.IsBundle())
			assert.Equal(t, tt.msix, tt.ext.IsMSIX())
		})
	}
}

func TestKind_OutOfRange(t *testing.T) {
	k := Extension(200).Kind()
	assert.NotContains(t, Kinds(), k)
	assert.Equal(t, "Kind(5)", k.String())
	_, err := k.MarshalText()
	assert.Error(t, err)
}

func TestKind_Text(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	data, err := json.Marshal([]Kind{KindFont, KindBundle})
	require.NoError(t, err)
	assert.JSONEq(t, `["font","bundle"]`, string(data))

	_, err = ParseKind("driver")
	assert.Error(t, err)
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "msix", expected: "msix"},
		{input: ".MSIX", expected: "msix"},
		{input: "AppxBundle", expected: "appxbundle"},
		{input: "..exe", expected: ".exe"},
		{input: "", expected: ""},
		{input: ".MſI", expected: "MſI"},
		{input: "ＺＩＰ", expected: "ＺＩＰ"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestFromFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Extension
		badExt   string
		wantErr  bool
	}{
		{name: "plain", input: "setup.exe", expected: Exe},
		{name: "upper", input: "Installer.MSI", expected: Msi},
		{name: "unix path", input: "dist/x64/app.msixbundle", expected: MsixBundle},
		{name: "windows path", input: `C:\fonts\Cascadia.TTF`, expected: Ttf},
		{name: "multiple dots", input: "tool-1.2.3.zip", expected: Zip},
		{name: "dotfile", input: ".otc", expected: Otc},
		{name: "no extension", input: "README", wantErr: true, badExt: ""},
		{name: "empty", input: "", wantErr: true, badExt: ""},
		{name: "compressed tar", input: "tool.tar.gz", wantErr: true, badExt: "gz"},
		{name: "dot in directory", input: "v1.msi/readme", wantErr: true, badExt: ""},
		{name: "long s look-alike", input: "setup.mſi", wantErr: true, badExt: "mſi"},
		{name: "fullwidth look-alike", input: "setup.ｅｘｅ", wantErr: true, badExt: "ｅｘｅ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := FromFileName(tt.input)
			if tt.wantErr {
				var extErr *ValidFileExtensionsError
				require.True(t, errors.As(err, &extErr), "expected ValidFileExtensionsError, got %v", err)
				assert.Equal(t, tt.badExt, extErr.Extension)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ext)
		})
	}
}
