package rankingdb

import "errors"

var (
	// ErrCorruptDocument is returned when the stored document cannot be decoded.
	ErrCorruptDocument = errors.New("ranking document is corrupt")
)
