package fundraiser

import (
	"errors"

	"github.com/vitaliksokil/ch-7-tutorial/meta"
)

var (
	ErrAlreadyInitialized = errors.New("the contract has already been initialized")
	ErrNotFound           = errors.New("fundraiser doesn't exist")
	ErrEmptyField         = errors.New("field is empty")
	ErrInvalidAmount      = meta.ErrInvalidAmount
	ErrZeroGoal           = errors.New("fundraiser amount cannot be zero")
	ErrIDSpaceExhausted   = errors.New("no fundraiser ids left")
	ErrOverflow           = errors.New("total donated overflows")
	ErrInvalidPurpose     = meta.ErrInvalidPurpose
)

// EmptyFieldError 标明哪个字段为空，可用 errors.Is(err, ErrEmptyField) 判断
type EmptyFieldError struct {
	Field string
}

func (e *EmptyFieldError) Error() string {
	return e.Field + " is empty"
}

func (e *EmptyFieldError) Is(target error) bool {
	return target == ErrEmptyField
}
