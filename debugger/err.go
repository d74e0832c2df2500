package debugger

import (
	"errors"

	"github.com/ezrec/mepa/translate"
)

var f = translate.From

var (
	ErrNotDebugging = errors.New(f("not in debug mode"))
)
