// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/strand-data/strand/lib/value"
)

// magic identifies a Strand snapshot file.
var magic = []byte("STSN")

// formatVersion is bumped on incompatible header or payload changes.
const formatVersion = 1

// compressionTag identifies the payload compression. One byte in the
// header; values are format constants.
type compressionTag byte

const (
	// compressionNone stores the payload uncompressed. Chosen when
	// compression does not shrink the payload (tiny values,
	// incompressible bytes).
	compressionNone compressionTag = 0

	// compressionZstd stores the payload zstd-compressed at the
	// default level.
	compressionZstd compressionTag = 1
)

// headerSize is magic + version byte + compression tag byte.
const headerSize = len("STSN") + 2

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil)
	if err != nil {
		panic("snapshot: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("snapshot: zstd decoder initialization failed: " + err.Error())
	}
}

// WriteFile encodes v and writes it to path as a snapshot file. The
// payload is zstd-compressed unless compression does not help.
func WriteFile(path string, v value.Value) error {
	encoded, err := Encode(v)
	if err != nil {
		return err
	}

	tag := compressionZstd
	payload := zstdEncoder.EncodeAll(encoded, nil)
	if len(payload) >= len(encoded) {
		tag = compressionNone
		payload = encoded
	}

	file := make([]byte, 0, headerSize+len(payload))
	file = append(file, magic...)
	file = append(file, formatVersion, byte(tag))
	file = append(file, payload...)

	if err := os.WriteFile(path, file, 0o644); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return nil
}

// IsSnapshot reports whether data begins with the snapshot magic.
func IsSnapshot(data []byte) bool {
	return len(data) >= len(magic) && bytes.Equal(data[:len(magic)], magic)
}

// Read parses the in-memory contents of a snapshot file (header plus
// payload) back into a value tree.
func Read(data []byte) (value.Value, error) {
	if len(data) < headerSize || !IsSnapshot(data) {
		return nil, fmt.Errorf("snapshot: not a snapshot file")
	}
	if version := data[len(magic)]; version != formatVersion {
		return nil, fmt.Errorf("snapshot: unsupported snapshot version %d", version)
	}

	payload := data[headerSize:]
	switch tag := compressionTag(data[len(magic)+1]); tag {
	case compressionNone:
		// Payload is the canonical encoding itself.
	case compressionZstd:
		decompressed, err := zstdDecoder.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("snapshot: decompressing payload: %w", err)
		}
		payload = decompressed
	default:
		return nil, fmt.Errorf("snapshot: unknown compression tag %d", tag)
	}

	return Decode(payload)
}

// ReadFile reads a snapshot file written by WriteFile.
func ReadFile(path string) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	parsed, err := Read(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}
