package bilingual

import "errors"

var (
	// ErrCopyNotAllowed is returned when a cross-language copy targets a
	// field that was not detected as missing or is no longer empty.
	ErrCopyNotAllowed = errors.New("bilingual: copy not allowed")
	// ErrCopySourceEmpty is returned when the field is also empty in the
	// language being copied from.
	ErrCopySourceEmpty   = errors.New("bilingual: nothing to copy")
	ErrItemNotFound      = errors.New("bilingual: list item not found")
	ErrItemNotMissing    = errors.New("bilingual: list item already present in target language")
	ErrPathNotAssignable = errors.New("bilingual: path not assignable")
	ErrUnknownList       = errors.New("bilingual: unknown list")
)
