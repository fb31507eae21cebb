package dict

import (
	"fmt"
	"os"
)

// Dictionary file framing: a fixed magic, a format version, the store-wide
// character width, then the raw node array. The trie payload itself carries
// no width information, so the header is what makes files self-describing.
var fileMagic = [4]byte{'S', 'G', 'D', 'T'}

const fileVersion = 1

const fileHeaderSize = 6

// WriteFile frames a built dictionary buffer and writes it to path.
func WriteFile(path string, data []byte, charWidth int) error {
	if charWidth != 1 && charWidth != 2 {
		return fmt.Errorf("dict: character width must be 1 or 2 bytes, got %d", charWidth)
	}
	out := make([]byte, 0, fileHeaderSize+len(data))
	out = append(out, fileMagic[:]...)
	out = append(out, fileVersion, byte(charWidth))
	out = append(out, data...)
	return os.WriteFile(path, out, 0644)
}

// ReadFile loads a dictionary file written by WriteFile and returns a
// ready Store over its payload.
func ReadFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < fileHeaderSize {
		return nil, fmt.Errorf("dict: file %s too short for header", path)
	}
	if [4]byte(raw[:4]) != fileMagic {
		return nil, fmt.Errorf("dict: file %s has wrong magic", path)
	}
	if raw[4] != fileVersion {
		return nil, fmt.Errorf("dict: file %s has unsupported version %d", path, raw[4])
	}
	return NewStore(raw[fileHeaderSize:], int(raw[5]))
}
