package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ValidationError carries the first failing field rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func ErrValidation(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

// ConflictError names the field whose unique constraint was violated.
type ConflictError struct {
	Field string
}

func (e ConflictError) Error() string {
	return e.Field + " already exists"
}

func ErrConflict(field string) error {
	return ConflictError{Field: field}
}
