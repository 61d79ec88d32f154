// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot persists value trees as deterministic binary
// snapshots. The encoding is canonical CBOR (RFC 8949 §4.2 Core
// Deterministic Encoding: sorted map keys, smallest integer encoding,
// no indefinite-length items) over the same tagged shape as the JSON
// wire format, so structurally equal values always produce identical
// bytes. That determinism is what makes [Digest] usable as a cache
// key: equal values have equal digests.
//
// Snapshot files carry a small header (magic, format version,
// compression tag) ahead of a zstd-compressed payload. The tag byte
// leaves room for future algorithms without breaking the format.
package snapshot

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"

	"github.com/strand-data/strand/lib/value"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding. Same logical data always produces identical bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to decode maps as
// map[string]any — snapshot payloads never use non-string keys.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

// digestKey is the BLAKE3 keyed-hash domain for value digests. Domain
// separation keeps snapshot digests from colliding with any other
// BLAKE3 use of the same bytes. The key is the ASCII domain name,
// zero-padded to 32 bytes, so it is inspectable in hex dumps.
var digestKey = [32]byte{
	's', 't', 'r', 'a', 'n', 'd', '.', 's', 'n', 'a', 'p', 's', 'h', 'o', 't', '.',
	'v', 'a', 'l', 'u', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Digest is a 32-byte BLAKE3 digest of a value's canonical encoding.
type Digest [32]byte

// Encode serializes a value tree to canonical CBOR.
func Encode(v value.Value) ([]byte, error) {
	form, err := canonical(v)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(form)
}

// Decode parses a canonical CBOR snapshot back into a value tree.
func Decode(data []byte) (value.Value, error) {
	var raw any
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("snapshot: malformed CBOR: %w", err)
	}
	return fromCanonical(raw)
}

// DigestOf computes the keyed BLAKE3 digest of a value's canonical
// encoding. Structurally equal values have equal digests.
func DigestOf(v value.Value) (Digest, error) {
	encoded, err := Encode(v)
	if err != nil {
		return Digest{}, err
	}
	hasher, err := blake3.NewKeyed(digestKey[:])
	if err != nil {
		return Digest{}, fmt.Errorf("snapshot: BLAKE3 initialization failed: %w", err)
	}
	hasher.Write(encoded)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// canonical converts a value into the CBOR-ready tagged form. Unlike
// the JSON wire form, numbers and byte strings use native CBOR types
// (the major types already distinguish integers from floats), while
// the tagged variants keep the same "@" keys as the wire format.
func canonical(v value.Value) (any, error) {
	switch t := v.(type) {
	case value.Null:
		return nil, nil
	case value.Bool:
		return bool(t), nil
	case value.String:
		return string(t), nil
	case value.Int:
		return int64(t), nil
	case value.Double:
		return float64(t), nil
	case value.Array:
		form := make([]any, len(t))
		for i, element := range t {
			elementForm, err := canonical(element)
			if err != nil {
				return nil, err
			}
			form[i] = elementForm
		}
		return form, nil
	case value.Object:
		inner, err := canonicalEntries(t)
		if err != nil {
			return nil, err
		}
		return map[string]any{"object": inner}, nil
	case value.Bytes:
		return map[string]any{"@bytes": []byte(t)}, nil
	case value.Ref:
		return canonicalRef(t), nil
	case value.SetRef:
		params, err := canonicalEntries(t.Parameters)
		if err != nil {
			return nil, err
		}
		return map[string]any{"@set": params}, nil
	case value.Query:
		lambda, err := canonicalEntries(t.Lambda)
		if err != nil {
			return nil, err
		}
		return map[string]any{"@query": lambda}, nil
	case value.Time:
		return map[string]any{"@ts": t.String()}, nil
	case value.Date:
		return map[string]any{"@date": t.String()}, nil
	case nil:
		return nil, fmt.Errorf("snapshot: cannot encode a nil value")
	default:
		return nil, fmt.Errorf("snapshot: cannot encode %T", v)
	}
}

func canonicalEntries(obj value.Object) (map[string]any, error) {
	form := make(map[string]any, len(obj))
	for key, entry := range obj {
		entryForm, err := canonical(entry)
		if err != nil {
			return nil, err
		}
		form[key] = entryForm
	}
	return form, nil
}

func canonicalRef(r value.Ref) map[string]any {
	inner := map[string]any{"id": r.ID}
	if r.Parent != nil {
		key := "collection"
		if r.Parent.InDatabaseTree() {
			key = "database"
		}
		inner[key] = canonicalRef(*r.Parent)
	}
	return map[string]any{"@ref": inner}
}
