package kbp

import (
	"fmt"
	"strings"
)

// malformed field or structure where the format requires a specific shape
type FormatError struct {
	Line int // 1-based line number in the source file, 0 if unknown
	Msg  string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("kbp: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("kbp: %s", e.Msg)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// raised once at end of parse naming every required section that is absent
type MissingSectionError struct {
	Sections []string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf(
		"kbp: invalid file, missing sections: %s",
		strings.Join(e.Sections, ", "),
	)
}

// tracks must be synced before they can be converted
type UnsupportedTrackStateError struct {
	Status string
}

func (e *UnsupportedTrackStateError) Error() string {
	return fmt.Sprintf(
		"kbp: track status %q is not synced; unsynced tracks are not supported",
		e.Status,
	)
}

// style key outside [-26,-1] or [1,26]
type KeyRangeError struct {
	Key int
}

func (e *KeyRangeError) Error() string {
	return fmt.Sprintf("kbp: style key %d outside [-26,-1] and [1,26]", e.Key)
}

// a style's four color fields mix raw palette indexes with resolved codes
type TypeMismatchError struct {
	Style string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf(
		"kbp: style %q mixes raw palette indexes and resolved colors",
		e.Style,
	)
}
