package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codec "github.com/05nelsonm/encoding-sub001"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	err := app.Run(append([]string{"codec"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		in      string
		encoded string
	}{
		{"Base64", nil, "Hello World!", "SGVsbG8gV29ybGQh"},
		{"Base64URL", []string{"--alphabet", "base64url"}, "\xfb\xff", "-_8="},
		{"Base64NoPad", []string{"--no-pad"}, "f", "Zg"},
		{"Base32", []string{"-a", "base32"}, "foobar", "MZXW6YTBOI======"},
		{"Base32Hex", []string{"-a", "base32hex", "--lowercase"}, "foobar", "cpnmuoj1e8======"},
		{"Crockford", []string{"-a", "crockford", "--check-symbol", "*"}, "foobar", "CSQPYRK1E8*"},
		{"Base16", []string{"-a", "base16"}, "hi", "6869"},
		{"Wrapped", []string{"--wrap", "4"}, "foobar", "Zm9v\nYmFy"},
		{"ConstantTime", []string{"--constant-time"}, "foobar", "Zm9vYmFy"},
	}
	for _, tt := range tests {
		for _, stream := range []bool{false, true} {
			name := tt.name
			var extra []string
			if stream {
				name += "/Stream"
				extra = []string{"--stream"}
			}
			t.Run(name, func(t *testing.T) {
				args := append(append(append([]string{}, tt.args...), "encode"), extra...)
				got, err := run(t, tt.in, args...)
				require.NoError(t, err)
				assert.Equal(t, tt.encoded+"\n", got)

				args = append(append(append([]string{}, tt.args...), "decode"), extra...)
				got, err = run(t, tt.encoded+"\n", args...)
				require.NoError(t, err)
				assert.Equal(t, tt.in, got)
			})
		}
	}
}

func TestDecodeFromFile(t *testing.T) {
	path := writeFile(t, "in.b64", "Zm9v\nYmFy\n")
	got, err := run(t, "", "decode", path)
	require.NoError(t, err)
	assert.Equal(t, "foobar", got)
}

func TestDecodeErrors(t *testing.T) {
	_, err := run(t, "Zm9v!", "decode")
	assert.ErrorIs(t, err, codec.ErrMalformedInput)

	_, err = run(t, "Zm9v\nYmFy", "--whitespace", "reject", "decode", "--stream")
	assert.ErrorIs(t, err, codec.ErrMalformedInput)

	_, err = run(t, "CSQPYRK1E8", "-a", "crockford", "--check-symbol", "*", "decode")
	assert.ErrorIs(t, err, codec.ErrMalformedInput)
}

func TestSize(t *testing.T) {
	got, err := run(t, "", "--wrap", "76", "size", "100")
	require.NoError(t, err)
	assert.Equal(t, "Base64\nencode: 137\ndecode: 75\n", got)

	got, err = run(t, "", "-a", "crockford", "--check-symbol", "~", "size", "5")
	require.NoError(t, err)
	assert.Equal(t, "Base32.Crockford\nencode: 9\ndecode: 3\n", got)

	_, err = run(t, "", "size", "--", "-1")
	assert.ErrorIs(t, err, codec.ErrSize)

	_, err = run(t, "", "size", "ten")
	assert.Error(t, err)
}

func TestProfile(t *testing.T) {
	path := writeFile(t, "codec.toml", `
alphabet = "base16"
lowercase = true
wrap = 4
`)

	got, err := run(t, "hi!", "--profile", path, "encode")
	require.NoError(t, err)
	assert.Equal(t, "6869\n21\n", got)

	got, err = run(t, "hi!", "--profile", path, "--alphabet", "base64", "--wrap", "0", "encode")
	require.NoError(t, err)
	assert.Equal(t, "aGkh\n", got, "flags override the profile")

	t.Run("UnknownKey", func(t *testing.T) {
		bad := writeFile(t, "bad.toml", `alphabet = "base64"
colour = "blue"
`)
		_, err := run(t, "", "--profile", bad, "encode")
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := run(t, "", "--profile", filepath.Join(t.TempDir(), "nope.toml"), "encode")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestInvalidSettings(t *testing.T) {
	for name, args := range map[string][]string{
		"UnknownAlphabet":     {"-a", "base58", "encode"},
		"UnknownWhitespace":   {"--whitespace", "maybe", "encode"},
		"WrapTooLarge":        {"--wrap", "300", "encode"},
		"BadCheckSymbol":      {"-a", "crockford", "--check-symbol", "#", "encode"},
		"CheckSymbolOnBase32": {"-a", "base32", "--check-symbol", "*", "encode"},
		"TooManyFiles":        {"decode", "a", "b"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, "", args...)
			assert.Error(t, err)
		})
	}
}
