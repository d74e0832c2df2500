package listing

import (
	"errors"

	"github.com/ezrec/mepa/translate"
)

var f = translate.From

var (
	ErrFilenameMissing = errors.New(f("file name not specified"))
	ErrRangeInvalid    = errors.New(f("invalid range (first line > last line)"))
)

// ErrLineMissing is a line number with no line in the buffer.
type ErrLineMissing int

func (err ErrLineMissing) Error() string {
	return f("line %d does not exist", int(err))
}
