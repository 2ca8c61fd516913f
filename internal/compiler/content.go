package compiler

import (
	"bytes"
	"errors"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encodings reported in FileRecord.Encoding.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

// errEncoding marks content that neither decoding could turn into text.
var errEncoding = errors.New("encoding issue")

// readContent returns the file as UTF-8 text with line endings normalised
// to "\n". Content that is not valid UTF-8 is decoded as ISO-8859-1.
func readContent(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	enc := EncodingUTF8
	if !utf8.Valid(data) {
		data, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, "", errEncoding
		}
		enc = EncodingLatin1
	}
	return normalizeNewlines(data), enc, nil
}

func normalizeNewlines(b []byte) []byte {
	if bytes.IndexByte(b, '\r') < 0 {
		return b
	}
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
}
