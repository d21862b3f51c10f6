package field

import "errors"

var (
	ErrMissingVariable = errors.New("missing variable")
	ErrRead            = errors.New("read error")
	ErrEmptyAxis       = errors.New("empty coordinate axis")
)
