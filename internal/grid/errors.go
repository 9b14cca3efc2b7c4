package grid

import "errors"

// Edit rejections. All of them leave the model untouched.
var (
	ErrOutOfBounds  = errors.New("out of bounds")
	ErrCellConflict = errors.New("cell conflict")
	ErrSelfControl  = errors.New("control row equals target row")
)
