package vcs

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// IndexEntry is one staged path: its blob hash and enough stat metadata
// to detect an unmodified working-tree file without rehashing it.
type IndexEntry struct {
	CtimeSec, CtimeNsec uint32
	MtimeSec, MtimeNsec uint32
	Dev, Ino            uint32
	Mode                uint32
	UID, GID            uint32
	Size                uint32
	Hash                string
	Path                string
}

// Index is a decoded git index (v2 format, the only version this core
// writes or expects to read).
type Index struct {
	Entries []IndexEntry
}

const indexVersion = 2

// ReadIndex decodes .git/index. A repository with no index yet (a fresh
// `git init`) returns an empty Index, not an error.
func (r *Repository) ReadIndex() (*Index, error) {
	data, err := os.ReadFile(filepath.Join(r.GitDir, "index"))
	if os.IsNotExist(err) {
		return &Index{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) < 12+20 || string(data[:4]) != "DIRC" {
		return nil, fmt.Errorf("vcs: %w: bad index signature", ErrCorruptIndex)
	}
	version := binary.BigEndian.Uint32(data[4:8])
	if version != indexVersion && version != 3 {
		return nil, fmt.Errorf("vcs: %w: unsupported index version %d", ErrCorruptIndex, version)
	}
	count := binary.BigEndian.Uint32(data[8:12])

	idx := &Index{}
	off := 12
	body := data[:len(data)-20] // trailing sha1 checksum is not entry data
	for i := uint32(0); i < count; i++ {
		entry, n, err := decodeIndexEntry(body[off:])
		if err != nil {
			return nil, err
		}
		idx.Entries = append(idx.Entries, entry)
		off += n
	}
	return idx, nil
}

func decodeIndexEntry(b []byte) (IndexEntry, int, error) {
	if len(b) < 62 {
		return IndexEntry{}, 0, fmt.Errorf("vcs: %w: truncated entry", ErrCorruptIndex)
	}
	e := IndexEntry{
		CtimeSec:  binary.BigEndian.Uint32(b[0:4]),
		CtimeNsec: binary.BigEndian.Uint32(b[4:8]),
		MtimeSec:  binary.BigEndian.Uint32(b[8:12]),
		MtimeNsec: binary.BigEndian.Uint32(b[12:16]),
		Dev:       binary.BigEndian.Uint32(b[16:20]),
		Ino:       binary.BigEndian.Uint32(b[20:24]),
		Mode:      binary.BigEndian.Uint32(b[24:28]),
		UID:       binary.BigEndian.Uint32(b[28:32]),
		GID:       binary.BigEndian.Uint32(b[32:36]),
		Size:      binary.BigEndian.Uint32(b[36:40]),
		Hash:      hex.EncodeToString(b[40:60]),
	}
	flags := binary.BigEndian.Uint16(b[60:62])
	nameLen := int(flags & 0x0fff)
	nameStart := 62
	var name string
	if nameLen < 0xfff {
		if nameStart+nameLen > len(b) {
			return IndexEntry{}, 0, fmt.Errorf("vcs: %w: truncated name", ErrCorruptIndex)
		}
		name = string(b[nameStart : nameStart+nameLen])
	} else {
		nul := bytes.IndexByte(b[nameStart:], 0)
		if nul < 0 {
			return IndexEntry{}, 0, fmt.Errorf("vcs: %w: unterminated name", ErrCorruptIndex)
		}
		name = string(b[nameStart : nameStart+nul])
		nameLen = nul
	}
	e.Path = name

	entryLen := nameStart + nameLen
	padded := (entryLen + 8) &^ 7 // pad to an 8-byte boundary, counted from entry start
	return e, padded, nil
}

// WriteIndex serializes idx back to .git/index in the same v2 format,
// sorted by path as the format requires.
func (r *Repository) WriteIndex(idx *Index) error {
	sortIndexEntries(idx.Entries)

	var buf bytes.Buffer
	buf.WriteString("DIRC")
	writeU32(&buf, indexVersion)
	writeU32(&buf, uint32(len(idx.Entries)))

	for _, e := range idx.Entries {
		start := buf.Len()
		writeU32(&buf, e.CtimeSec)
		writeU32(&buf, e.CtimeNsec)
		writeU32(&buf, e.MtimeSec)
		writeU32(&buf, e.MtimeNsec)
		writeU32(&buf, e.Dev)
		writeU32(&buf, e.Ino)
		writeU32(&buf, e.Mode)
		writeU32(&buf, e.UID)
		writeU32(&buf, e.GID)
		writeU32(&buf, e.Size)
		hashBytes, err := decodeHex(e.Hash)
		if err != nil {
			return err
		}
		buf.Write(hashBytes)

		nameLen := len(e.Path)
		flags := uint16(nameLen)
		if nameLen > 0x0fff {
			flags = 0x0fff
		}
		writeU16(&buf, flags)
		buf.WriteString(e.Path)

		entryLen := buf.Len() - start
		padded := (entryLen + 8) &^ 7
		for buf.Len()-start < padded {
			buf.WriteByte(0)
		}
	}

	sum := sha1.Sum(buf.Bytes())
	buf.Write(sum[:])

	path := filepath.Join(r.GitDir, "index")
	tmp := path + ".lock"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func sortIndexEntries(entries []IndexEntry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j-1].Path > entries[j].Path; j-- {
			entries[j-1], entries[j] = entries[j], entries[j-1]
		}
	}
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func decodeHex(s string) ([]byte, error) {
	if len(s) != 40 {
		return nil, fmt.Errorf("vcs: %w: bad hash length", ErrCorruptIndex)
	}
	out, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("vcs: %w: %v", ErrCorruptIndex, err)
	}
	return out, nil
}

// Find returns the entry for path, if staged.
func (idx *Index) Find(path string) (IndexEntry, bool) {
	for _, e := range idx.Entries {
		if e.Path == path {
			return e, true
		}
	}
	return IndexEntry{}, false
}

// Upsert adds or replaces the entry for e.Path.
func (idx *Index) Upsert(e IndexEntry) {
	for i := range idx.Entries {
		if idx.Entries[i].Path == e.Path {
			idx.Entries[i] = e
			return
		}
	}
	idx.Entries = append(idx.Entries, e)
}

// Remove deletes the entry for path, if present.
func (idx *Index) Remove(path string) {
	for i, e := range idx.Entries {
		if e.Path == path {
			idx.Entries = append(idx.Entries[:i], idx.Entries[i+1:]...)
			return
		}
	}
}

// entryFromStat builds an IndexEntry for a freshly staged file.
func entryFromStat(path string, info os.FileInfo, hash string) IndexEntry {
	mtime := info.ModTime()
	return IndexEntry{
		MtimeSec:  uint32(mtime.Unix()),
		MtimeNsec: uint32(mtime.Nanosecond()),
		CtimeSec:  uint32(mtime.Unix()),
		CtimeNsec: uint32(mtime.Nanosecond()),
		Mode:      0o100644,
		Size:      uint32(info.Size()),
		Hash:      hash,
		Path:      path,
	}
}
