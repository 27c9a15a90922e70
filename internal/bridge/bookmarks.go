package bridge

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// bookmarkPin records arg's "name" at arg's "offset" (or the engine's
// current primary cursor if offset is omitted).
func (b *Bridge) bookmarkPin(arg string) (Result, error) {
	name := gjson.Get(arg, "name").String()
	if name == "" {
		return Result{}, ErrInvalidArgument
	}
	offsetResult := gjson.Get(arg, "offset")
	var offset = b.engine.PrimaryCursor()
	if offsetResult.Exists() {
		offset = offsetResult.Int()
	}
	b.bookmarks[name] = offset
	return staticResult(`true`), nil
}

// bookmarkJump returns the byte offset pinned under arg's "name" and
// moves the engine's primary cursor there.
func (b *Bridge) bookmarkJump(arg string) (Result, error) {
	name := gjson.Get(arg, "name").String()
	offset, ok := b.bookmarks[name]
	if !ok {
		return Result{}, ErrBookmarkNotFound
	}
	b.engine.SetPrimaryCursor(offset)
	return jsonObject("offset", strconv.FormatInt(int64(offset), 10)), nil
}

// bookmarkUnpin removes arg's "name" from the bookmark table.
func (b *Bridge) bookmarkUnpin(arg string) (Result, error) {
	name := gjson.Get(arg, "name").String()
	if _, ok := b.bookmarks[name]; !ok {
		return Result{}, ErrBookmarkNotFound
	}
	delete(b.bookmarks, name)
	return staticResult(`true`), nil
}
