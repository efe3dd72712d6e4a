package httperr

import "errors"

// Business error codes raised by the booking domain.
const (
	CodeNotFound         = "not_found"
	CodeForbidden        = "forbidden"
	CodeNoOwnerAssigned  = "no_owner_assigned"
	CodeInvalidReference = "invalid_reference"
	CodeCapExceeded      = "cap_exceeded"
	CodeInvalidStatus    = "invalid_status"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessf(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code from a business error, or "" when err is
// not one.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
