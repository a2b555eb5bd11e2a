package plantuml

import (
	"bytes"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// The PlantUML server inflates the payload as raw deflate, so the zlib
// container around it has to go: a 2-byte CMF/FLG header in front and a
// 4-byte Adler-32 checksum behind. Nothing here can verify that the server
// still expects raw deflate; if it ever wants zlib framing, this is the only
// place to change.
const (
	zlibHeaderLen  = 2
	zlibTrailerLen = 4
)

// Level is a deflate compression level.
type Level int

// Supported compression levels.
const (
	DefaultCompression Level = zlib.DefaultCompression
	NoCompression      Level = zlib.NoCompression
	BestSpeed          Level = zlib.BestSpeed
	BestCompression    Level = zlib.BestCompression
)

// ParseLevel maps a configuration name to a compression level. An empty
// name selects DefaultCompression.
func ParseLevel(name string) (level Level, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		level = DefaultCompression
	case "none":
		level = NoCompression
	case "speed":
		level = BestSpeed
	case "best":
		level = BestCompression
	default:
		err = errors.Errorf("unknown compression level %q: must be default, none, speed, or best", name)
	}
	return level, err
}

// Compress deflates the UTF-8 bytes of text and returns the bare deflate
// stream, with zlib framing removed.
func Compress(text string, level Level) (block []byte, err error) {
	var buf bytes.Buffer

	var zw *zlib.Writer
	zw, err = zlib.NewWriterLevel(&buf, int(level))
	if err != nil {
		err = errors.Wrap(err, "failed to create zlib writer")
		return block, err
	}

	_, err = io.WriteString(zw, text)
	if err != nil {
		err = errors.Wrap(err, "failed to compress diagram source")
		return block, err
	}

	err = zw.Close()
	if err != nil {
		err = errors.Wrap(err, "failed to flush zlib stream")
		return block, err
	}

	block, err = stripZlibFraming(buf.Bytes())
	return block, err
}

// stripZlibFraming drops the zlib header and trailer, leaving raw deflate.
func stripZlibFraming(stream []byte) (block []byte, err error) {
	if len(stream) < zlibHeaderLen+zlibTrailerLen {
		err = &EncodingError{Reason: "zlib stream too short to strip framing"}
		return block, err
	}

	block = stream[zlibHeaderLen : len(stream)-zlibTrailerLen]
	return block, err
}

// Decompress inflates a raw deflate block back into text.
func Decompress(block []byte) (text string, err error) {
	fr := flate.NewReader(bytes.NewReader(block))
	defer fr.Close()

	var out []byte
	out, err = io.ReadAll(fr)
	if err != nil {
		err = errors.Wrap(err, "failed to inflate diagram payload")
		return text, err
	}

	text = string(out)
	return text, err
}
