package bridge

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Lifetime tags how long a Result's buffer is valid for, per spec.md
// §4.7's cross-boundary serialization contract. A native plugin must
// free an Owned result through the same ABI that produced it; a Static
// result lives for the bridge's own lifetime and is never freed by the
// caller.
type Lifetime int

const (
	// Owned marks a result as a freshly allocated buffer the caller is
	// responsible for disposing.
	Owned Lifetime = iota
	// Static marks a result that lives as long as the Bridge itself —
	// typically a fixed capability-table constant.
	Static
)

func (l Lifetime) String() string {
	if l == Static {
		return "static"
	}
	return "owned"
}

// Result is one capability's cross-boundary return value: a compact
// JSON-like textual form (lists as `[ ... ]`, objects as `{ "key":
// value }`, strings double-quoted) plus its Lifetime tag.
type Result struct {
	JSON     string
	Lifetime Lifetime
}

// quoteJSON double-quotes and escapes s for embedding as a JSON string
// literal, going through sjson's own escaping rather than hand-rolling
// one, since sjson always operates on a full document and gjson reads
// the raw (still-quoted) value back out.
func quoteJSON(s string) string {
	doc, _ := sjson.Set("", "v", s)
	return gjson.Get(doc, "v").Raw
}

// jsonString builds an Owned Result wrapping a single JSON string value.
func jsonString(s string) Result {
	return Result{JSON: quoteJSON(s), Lifetime: Owned}
}

// jsonList builds an Owned Result from a list of already-quoted JSON
// fragments (strings, objects, or nested lists).
func jsonList(items ...string) Result {
	buf := "["
	for i, it := range items {
		if i > 0 {
			buf += ","
		}
		buf += it
	}
	buf += "]"
	return Result{JSON: compact(buf), Lifetime: Owned}
}

// jsonObject builds an Owned Result from alternating key/value pairs,
// where each value is already a valid JSON fragment.
func jsonObject(kv ...string) Result {
	buf := "{"
	for i := 0; i+1 < len(kv); i += 2 {
		if i > 0 {
			buf += ","
		}
		buf += quoteJSON(kv[i]) + ":" + kv[i+1]
	}
	buf += "}"
	return Result{JSON: compact(buf), Lifetime: Owned}
}

// staticResult wraps a constant JSON fragment as a Static Result.
func staticResult(json string) Result {
	return Result{JSON: compact(json), Lifetime: Static}
}

func compact(json string) string {
	return string(pretty.Ugly([]byte(json)))
}
