package language

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode turns raw subtitle bytes into text. UTF-8 and BOM-marked UTF-16
// are recognized; anything else is tried as GB18030, the usual encoding of
// legacy Chinese subtitles. ok is false when the bytes cannot be decoded
// cleanly.
func Decode(data []byte) (text string, ok bool) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		data = data[len(bomUTF8):]
	case bytes.HasPrefix(data, bomUTF16LE):
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), evenLength(data))
	case bytes.HasPrefix(data, bomUTF16BE):
		return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), evenLength(data))
	}

	data = trimPartialRune(data)
	if utf8.Valid(data) {
		return string(data), true
	}
	return decodeWith(simplifiedchinese.GB18030, data)
}

func decodeWith(enc encoding.Encoding, data []byte) (string, bool) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

// trimPartialRune drops an incomplete UTF-8 sequence left at the end of a
// bounded read.
func trimPartialRune(data []byte) []byte {
	for i := len(data) - 1; i >= 0 && i >= len(data)-utf8.UTFMax; i-- {
		if utf8.RuneStart(data[i]) {
			if !utf8.FullRune(data[i:]) {
				return data[:i]
			}
			break
		}
	}
	return data
}

func evenLength(data []byte) []byte {
	return data[:len(data)&^1]
}
