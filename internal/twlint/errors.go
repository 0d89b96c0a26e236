package twlint

import (
	"errors"
	"fmt"
)

// ErrMalformedConfig is wrapped by every structural load failure.
var ErrMalformedConfig = errors.New("malformed config")

// MalformedConfigError reports a source that cannot be read into the expected
// shape. It aborts the build; nothing downstream runs on a malformed config.
type MalformedConfigError struct {
	File string
	Pos  Pos
	Path string // dotted key path, "" for syntax errors
	Msg  string
}

func (e *MalformedConfigError) Error() string {
	loc := e.File
	if e.Pos.IsValid() {
		loc = fmt.Sprintf("%s:%d:%d", e.File, e.Pos.Line, e.Pos.Column)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", loc, e.Path, e.Msg)
	}
	return fmt.Sprintf("%s: %s", loc, e.Msg)
}

func (e *MalformedConfigError) Unwrap() error {
	return ErrMalformedConfig
}

func malformed(file string, pos Pos, path, format string, args ...any) *MalformedConfigError {
	return &MalformedConfigError{
		File: file,
		Pos:  pos,
		Path: path,
		Msg:  fmt.Sprintf(format, args...),
	}
}
