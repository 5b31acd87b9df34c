package usecase

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidPeriod = errors.New("invalid period")
	ErrInternal      = errors.New("internal error")
)
