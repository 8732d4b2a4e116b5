// Package encoding resolves text encodings for model files authored with
// legacy code pages and normalizes the file paths they reference.
package encoding

import (
	"errors"
	"fmt"
	"strings"

	textenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset is returned by Lookup for names no decoder is known for.
var ErrUnknownCharset = errors.New("unknown charset")

// aliases covers names commonly written in config files that the WHATWG
// index does not accept.
var aliases = map[string]textenc.Encoding{
	"cp949":  korean.EUCKR,
	"uhc":    korean.EUCKR,
	"cp437":  charmap.CodePage437,
	"cp850":  charmap.CodePage850,
	"latin1": charmap.ISO8859_1,
}

// Lookup returns the encoding registered under name. An empty name and any
// UTF-8 alias return nil, meaning input is used as-is.
func Lookup(name string) (textenc.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	if enc, ok := aliases[key]; ok {
		return enc, nil
	}
	enc, err := htmlindex.Get(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	if enc == textenc.Nop {
		return nil, nil
	}
	return enc, nil
}

// ToUTF8 decodes data with enc. A nil enc, or data that fails to decode,
// is returned unchanged.
func ToUTF8(enc textenc.Encoding, data []byte) string {
	if enc == nil {
		return string(data)
	}
	result, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// NormalizePath converts backslashes to forward slashes and removes "./"
// segments so the same texture referenced from different MTL files maps to
// one cache key.
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	for strings.Contains(path, "/./") {
		path = strings.ReplaceAll(path, "/./", "/")
	}
	return strings.TrimPrefix(path, "./")
}
