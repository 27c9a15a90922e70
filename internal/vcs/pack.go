package vcs

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// packObjType mirrors the type tag embedded in a pack entry's header,
// distinct from the loose-object ASCII kind string.
type packObjType int

const (
	packCommit   packObjType = 1
	packTree     packObjType = 2
	packBlob     packObjType = 3
	packTag      packObjType = 4
	packOfsDelta packObjType = 6
	packRefDelta packObjType = 7
)

// readPackedObject scans every .pack file under objects/pack looking for
// hash, decoding delta chains as it goes. There is no random-access use
// of the companion .idx files here — the editor core only ever needs a
// handful of objects per bridge call, and a repository's packs are small
// enough that a linear scan is adequate; this is a deliberate simplicity
// trade documented in DESIGN.md.
func (r *Repository) readPackedObject(hash string) (*Object, error) {
	packDir := filepath.Join(r.GitDir, "objects", "pack")
	entries, err := os.ReadDir(packDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	want, err := hex.DecodeString(hash)
	if err != nil || len(want) != 20 {
		return nil, ErrObjectNotFound
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".pack" {
			continue
		}
		obj, err := scanPack(filepath.Join(packDir, e.Name()), want)
		if err != nil {
			return nil, err
		}
		if obj != nil {
			return obj, nil
		}
	}
	return nil, nil
}

// scanPack decodes every object in path, resolving delta chains against
// whatever has already been decoded earlier in the file (the only valid
// reference direction for both OFS_DELTA and the REF_DELTA entries git
// actually produces), and returns the one matching want if found.
func scanPack(path string, want []byte) (*Object, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < 12 || string(raw[:4]) != "PACK" {
		return nil, fmt.Errorf("vcs: %w: bad pack signature", ErrCorruptObject)
	}
	count := binary.BigEndian.Uint32(raw[8:12])

	byOffset := make(map[int]*Object, count)
	bySHA := make(map[string]*Object, count)
	var found *Object

	offset := 12
	for i := uint32(0); i < count; i++ {
		start := offset
		typ, size, n := readPackHeader(raw[offset:])
		offset += n

		var obj *Object
		switch packObjType(typ) {
		case packOfsDelta:
			negOffset, n2 := readOffsetDelta(raw[offset:])
			offset += n2
			baseOffset := start - negOffset
			base, ok := byOffset[baseOffset]
			if !ok {
				return nil, fmt.Errorf("vcs: %w: ofs-delta base not yet seen", ErrCorruptObject)
			}
			payload, consumed, err := inflatePack(raw[offset:])
			if err != nil {
				return nil, err
			}
			offset += consumed
			data, err := applyDelta(base.Data, payload)
			if err != nil {
				return nil, err
			}
			obj = &Object{Kind: base.Kind, Data: data}
		case packRefDelta:
			baseHash := raw[offset : offset+20]
			offset += 20
			base, ok := bySHA[hex.EncodeToString(baseHash)]
			if !ok {
				return nil, fmt.Errorf("vcs: %w: ref-delta base not yet seen", ErrCorruptObject)
			}
			payload, consumed, err := inflatePack(raw[offset:])
			if err != nil {
				return nil, err
			}
			offset += consumed
			data, err := applyDelta(base.Data, payload)
			if err != nil {
				return nil, err
			}
			obj = &Object{Kind: base.Kind, Data: data}
		default:
			payload, consumed, err := inflatePack(raw[offset:])
			if err != nil {
				return nil, err
			}
			offset += consumed
			obj = &Object{Kind: packKindName(packObjType(typ)), Data: payload}
		}
		_ = size // informational only; inflatePack discovers the true length itself

		byOffset[start] = obj
		sha := HashObject(obj.Kind, obj.Data)
		bySHA[sha] = obj
		if sha == hex.EncodeToString(want) {
			found = obj
		}
	}
	return found, nil
}

func packKindName(t packObjType) ObjectKind {
	switch t {
	case packCommit:
		return KindCommit
	case packTree:
		return KindTree
	case packBlob:
		return KindBlob
	case packTag:
		return KindTag
	default:
		return ObjectKind("unknown")
	}
}

// readPackHeader decodes a pack entry's variable-length (type, size)
// header: the low 4 bits of the size live in the first byte alongside a
// 3-bit type tag, and each subsequent byte contributes 7 more size bits
// while its high bit signals continuation.
func readPackHeader(b []byte) (typ int, size int, n int) {
	c := b[0]
	typ = int((c >> 4) & 0x7)
	size = int(c & 0x0f)
	shift := 4
	n = 1
	for c&0x80 != 0 {
		c = b[n]
		size |= int(c&0x7f) << shift
		shift += 7
		n++
	}
	return typ, size, n
}

// readOffsetDelta decodes the OFS_DELTA negative-offset varint, whose
// encoding is unrelated to readPackHeader's (base-128, offset by 1 per
// continuation byte per the packfile format's quirky accumulator rule).
func readOffsetDelta(b []byte) (offset int, n int) {
	c := b[0]
	offset = int(c & 0x7f)
	n = 1
	for c&0x80 != 0 {
		c = b[n]
		n++
		offset = ((offset + 1) << 7) | int(c&0x7f)
	}
	return offset, n
}

// inflatePack zlib-decompresses one object payload starting at b[0],
// returning the number of compressed bytes consumed so the caller can
// advance past exactly this entry.
func inflatePack(b []byte) ([]byte, int, error) {
	br := bytes.NewReader(b)
	zr, err := zlib.NewReader(br)
	if err != nil {
		return nil, 0, fmt.Errorf("vcs: %w: %v", ErrCorruptObject, err)
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, 0, fmt.Errorf("vcs: %w: %v", ErrCorruptObject, err)
	}
	consumed := len(b) - br.Len()
	return data, consumed, nil
}

// applyDelta replays a git packfile delta (copy/insert instructions
// against base) to reconstruct the target object.
func applyDelta(base, delta []byte) ([]byte, error) {
	_, n1 := readDeltaSize(delta)
	rest := delta[n1:]
	targetSize, n2 := readDeltaSize(rest)
	rest = rest[n2:]

	out := make([]byte, 0, targetSize)
	for len(rest) > 0 {
		op := rest[0]
		rest = rest[1:]
		if op&0x80 != 0 {
			var cpOff, cpSize int
			for i := 0; i < 4; i++ {
				if op&(1<<i) != 0 {
					cpOff |= int(rest[0]) << (8 * i)
					rest = rest[1:]
				}
			}
			for i := 0; i < 3; i++ {
				if op&(1<<(4+i)) != 0 {
					cpSize |= int(rest[0]) << (8 * i)
					rest = rest[1:]
				}
			}
			if cpSize == 0 {
				cpSize = 0x10000
			}
			if cpOff+cpSize > len(base) {
				return nil, fmt.Errorf("vcs: %w: delta copy out of range", ErrCorruptObject)
			}
			out = append(out, base[cpOff:cpOff+cpSize]...)
		} else if op != 0 {
			size := int(op)
			out = append(out, rest[:size]...)
			rest = rest[size:]
		} else {
			return nil, fmt.Errorf("vcs: %w: reserved delta opcode 0", ErrCorruptObject)
		}
	}
	return out, nil
}

func readDeltaSize(b []byte) (size int, n int) {
	shift := 0
	for {
		c := b[n]
		size |= int(c&0x7f) << shift
		shift += 7
		n++
		if c&0x80 == 0 {
			break
		}
	}
	return size, n
}
