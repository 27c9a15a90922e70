package vcs

import (
	"bytes"
	"compress/zlib"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ObjectKind names a git object type.
type ObjectKind string

// Object kinds.
const (
	KindCommit ObjectKind = "commit"
	KindTree   ObjectKind = "tree"
	KindBlob   ObjectKind = "blob"
	KindTag    ObjectKind = "tag"
)

// Object is a decoded, loose-or-packed git object: a type tag and its
// uncompressed, header-stripped payload.
type Object struct {
	Kind ObjectKind
	Data []byte
}

// ReadObject resolves hash (a 40-character hex sha1) to its decoded
// Object, first checking the loose object store and falling back to any
// pack file under .git/objects/pack.
func (r *Repository) ReadObject(hash string) (*Object, error) {
	if obj, err := r.readLooseObject(hash); err == nil {
		return obj, nil
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	obj, err := r.readPackedObject(hash)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrObjectNotFound
	}
	return obj, nil
}

func (r *Repository) readLooseObject(hash string) (*Object, error) {
	if len(hash) != 40 {
		return nil, ErrObjectNotFound
	}
	path := filepath.Join(r.GitDir, "objects", hash[:2], hash[2:])
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := zlib.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("vcs: %w: %v", ErrCorruptObject, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("vcs: %w: %v", ErrCorruptObject, err)
	}
	return parseLooseObject(raw)
}

// parseLooseObject splits the "<kind> <size>\x00<payload>" header that
// every inflated loose object starts with.
func parseLooseObject(raw []byte) (*Object, error) {
	nul := bytes.IndexByte(raw, 0)
	if nul < 0 {
		return nil, ErrCorruptObject
	}
	header := string(raw[:nul])
	var kind string
	var size int
	if _, err := fmt.Sscanf(header, "%s %d", &kind, &size); err != nil {
		return nil, fmt.Errorf("vcs: %w: bad header %q", ErrCorruptObject, header)
	}
	payload := raw[nul+1:]
	if len(payload) != size {
		return nil, fmt.Errorf("vcs: %w: size mismatch", ErrCorruptObject)
	}
	return &Object{Kind: ObjectKind(kind), Data: payload}, nil
}

// HashObject computes the loose-object sha1 for a given kind and payload
// without writing anything, per the "<kind> <size>\x00<payload>" framing.
func HashObject(kind ObjectKind, payload []byte) string {
	header := fmt.Sprintf("%s %d\x00", kind, len(payload))
	h := sha1.New()
	h.Write([]byte(header))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// WriteObject deflates and writes payload as a loose object, returning its
// hash. Used by Stage/StageHunk to materialize new blob content.
func (r *Repository) WriteObject(kind ObjectKind, payload []byte) (string, error) {
	hash := HashObject(kind, payload)
	path := filepath.Join(r.GitDir, "objects", hash[:2], hash[2:])
	if _, err := os.Stat(path); err == nil {
		return hash, nil // already present
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	zw := zlib.NewWriter(f)
	header := fmt.Sprintf("%s %d\x00", kind, len(payload))
	if _, err := zw.Write([]byte(header)); err != nil {
		return "", err
	}
	if _, err := zw.Write(payload); err != nil {
		return "", err
	}
	return hash, zw.Close()
}
