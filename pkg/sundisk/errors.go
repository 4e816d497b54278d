package sundisk

import "github.com/pkg/errors"

var(
	ErrUnparseableFilename = errors.New("unparseable filename")
	ErrDateNotFound        = errors.New("date not in margin table")
	ErrInvalidMaskGeometry = errors.New("invalid mask geometry")
	ErrImageRead           = errors.New("image read failed")
	ErrImageWrite          = errors.New("image write failed")
	ErrDuplicateOutput     = errors.New("output name already taken")
)
