package thumbcache

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

const (
	keyURI         = "Thumb::URI"
	keyMTime       = "Thumb::MTime"
	keySize        = "Thumb::Size"
	keyMimetype    = "Thumb::Mimetype"
	keyImageWidth  = "Thumb::Image::Width"
	keyImageHeight = "Thumb::Image::Height"
	keySoftware    = "Software"
)

const (
	pngSignature = "\x89PNG\r\n\x1a\n"

	// ihdrChunkLen is the full length of the IHDR chunk, which must be the
	// first chunk after the signature (length, type, 13 data bytes, crc).
	ihdrChunkLen = 4 + 4 + 13 + 4

	// maxTextChunkLen bounds the tEXt chunks read from cached thumbnails.
	maxTextChunkLen = 1 << 16
)

// textEntry is a single keyword/value pair of a PNG tEXt chunk.
type textEntry struct {
	key   string
	value string
}

// insertTextChunks returns a copy of an encoded PNG with tEXt chunks inserted
// directly after its IHDR chunk.
func insertTextChunks(encoded []byte, entries []textEntry) ([]byte, error) {
	headerLen := len(pngSignature) + ihdrChunkLen

	if len(encoded) < headerLen || string(encoded[:len(pngSignature)]) != pngSignature {
		return nil, fmt.Errorf("(thumbcache-pngtext) %w: no signature", ErrInvalidPNG)
	}

	if string(encoded[len(pngSignature)+4:len(pngSignature)+8]) != "IHDR" {
		return nil, fmt.Errorf("(thumbcache-pngtext) %w: no leading IHDR", ErrInvalidPNG)
	}

	var buf bytes.Buffer
	buf.Grow(len(encoded) + len(entries)*64) //nolint:mnd

	buf.Write(encoded[:headerLen])

	for _, e := range entries {
		writeChunk(&buf, "tEXt", []byte(e.key+"\x00"+e.value))
	}

	buf.Write(encoded[headerLen:])

	return buf.Bytes(), nil
}

func writeChunk(w *bytes.Buffer, chunkType string, data []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data))) //nolint:gosec
	w.Write(length[:])

	crc := crc32.NewIEEE()
	crc.Write([]byte(chunkType))
	crc.Write(data)

	w.WriteString(chunkType)
	w.Write(data)

	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	w.Write(sum[:])
}

// pngInfo is the header and text metadata of a PNG stream.
type pngInfo struct {
	width  int
	height int
	texts  map[string]string
}

// readPNGInfo reads the dimensions from the IHDR chunk and all tEXt chunks of
// a PNG stream. Image data is skipped, reading stops at the IEND chunk.
func readPNGInfo(r io.Reader) (*pngInfo, error) {
	sig := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(r, sig); err != nil {
		return nil, fmt.Errorf("(thumbcache-pngtext) failed to read signature: %w", err)
	}

	if string(sig) != pngSignature {
		return nil, fmt.Errorf("(thumbcache-pngtext) %w: no signature", ErrInvalidPNG)
	}

	info := &pngInfo{
		texts: make(map[string]string),
	}

	var header [8]byte
	for {
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("(thumbcache-pngtext) %w: no IEND", ErrInvalidPNG)
			}

			return nil, fmt.Errorf("(thumbcache-pngtext) failed to read chunk: %w", err)
		}

		length := int64(binary.BigEndian.Uint32(header[:4]))
		chunkType := string(header[4:])

		switch chunkType {
		case "IEND":
			return info, nil

		case "IHDR", "tEXt":
			if length > maxTextChunkLen {
				return nil, fmt.Errorf("(thumbcache-pngtext) %w: oversized %s", ErrInvalidPNG, chunkType)
			}

			data := make([]byte, length+4) //nolint:mnd
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, fmt.Errorf("(thumbcache-pngtext) failed to read %s: %w", chunkType, err)
			}
			data = data[:length]

			if chunkType == "IHDR" {
				if len(data) < 8 { //nolint:mnd
					return nil, fmt.Errorf("(thumbcache-pngtext) %w: short IHDR", ErrInvalidPNG)
				}
				info.width = int(binary.BigEndian.Uint32(data[0:4]))
				info.height = int(binary.BigEndian.Uint32(data[4:8]))

				continue
			}

			if key, value, found := bytes.Cut(data, []byte{0}); found {
				info.texts[string(key)] = string(value)
			}

		default:
			if _, err := io.CopyN(io.Discard, r, length+4); err != nil { //nolint:mnd
				return nil, fmt.Errorf("(thumbcache-pngtext) failed to skip %s: %w", chunkType, err)
			}
		}
	}
}
