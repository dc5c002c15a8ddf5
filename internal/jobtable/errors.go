package jobtable

import "errors"

var (
	ErrJobNotFound = errors.New("job not found")
	ErrInvalidPID  = errors.New("pid must be a positive integer")
	ErrTableFull   = errors.New("job table is full")
)
