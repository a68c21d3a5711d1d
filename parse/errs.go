package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse   = errors.New("parse error")
	ErrTag     = fmt.Errorf("%w: bad tag", ErrParse)
	ErrKeyTag  = fmt.Errorf("%w: key cannot be tagged", ErrParse)
	ErrDocs    = fmt.Errorf("%w: wrong number of documents", ErrParse)
	ErrUnknown = fmt.Errorf("%w: unsupported node", ErrParse)
)
