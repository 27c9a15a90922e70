package highlight

import "errors"

// Failure modes for the highlight cache, mapping onto the editor-wide
// NotFound / Transient error kinds.
var (
	// ErrUnsupportedLanguage names the case where no grammar is
	// registered for a language tag. Neither SetLanguage nor Highlight
	// returns it: the cache falls back to a scanner producing only
	// ClassIdentifier and ClassPunctuation and the call succeeds.
	ErrUnsupportedLanguage = errors.New("highlight: unsupported language")

	// ErrParserInternal is returned when the backing parser fails on
	// otherwise-valid input. Highlight returns it together with the last
	// known good span set (or, with nothing cached, a single ClassNone
	// span covering the text) and marks the cache dirty.
	ErrParserInternal = errors.New("highlight: parser internal error")
)
