package stego

import (
	"bytes"
	"compress/zlib"
	"io"
	"strings"
)

// Compression flag bytes are literal ASCII digits, not numeric 0/1 (resolved
// Open Question, spec section 9): a decoder reading the flag byte off the
// wire sees '0' (0x30) or '1' (0x31).
const (
	compressionFlagOff byte = '0'
	compressionFlagOn  byte = '1'
)

// normalizeCompression resolves a raw compression value to "zlib" or "none".
func normalizeCompression(raw string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	switch trimmed {
	case "", "none", "no", "false":
		return "none", nil
	case "zlib", "auto", "all", "true", "yes":
		return "zlib", nil
	default:
		return "", ErrCompressionNotImplemented
	}
}

// Compress is a no-op, emitting no flag byte, when mode is "none". When mode
// is "zlib" it prefixes the deflated payload with the ASCII flag '1', or, if
// deflating does not strictly shrink the data, keeps the original bytes
// behind the ASCII flag '0'.
func Compress(data []byte, mode string, strength int) ([]byte, error) {
	if mode == "none" {
		return data, nil
	}
	if mode != "zlib" {
		return nil, ErrCompressionNotImplemented
	}

	var buf bytes.Buffer
	buf.WriteByte(compressionFlagOn)

	level := strength
	if level < zlib.HuffmanOnly || level > zlib.BestCompression {
		level = zlib.DefaultCompression
	}

	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	if buf.Len()-1 >= len(data) {
		return append([]byte{compressionFlagOff}, data...), nil
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress. When mode is "none" there is no flag byte on
// the wire and data is returned unchanged; otherwise the leading ASCII flag
// byte is read and, if set, the remainder is inflated.
func Decompress(data []byte, mode string) ([]byte, error) {
	if mode == "none" {
		return data, nil
	}

	if len(data) == 0 {
		return nil, ErrCapacityExceeded
	}

	flag, body := data[0], data[1:]
	switch flag {
	case compressionFlagOff:
		return append([]byte{}, body...), nil
	case compressionFlagOn:
		r, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	default:
		return nil, ErrCompressionNotImplemented
	}
}
