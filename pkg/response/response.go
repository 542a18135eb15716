package response

import "errors"

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

//Error Codes
type ErrCode string

var (
	FAILED_REQUEST     ErrCode = "REQUEST_FAILED"
	BAD_REQUEST        ErrCode = "FAILED_TO_DECODE"
	NOT_FOUND          ErrCode = "NOT_FOUND"
	LOCKED             ErrCode = "LOCKED"
	CONFLICT           ErrCode = "CONFLICT"
	VALIDATION_FAILED  ErrCode = "VALIDATION_FAILED"
	DUPLICATE_BOOKING  ErrCode = "DUPLICATE_BOOKING"
	RECURRING_CONFLICT ErrCode = "RECURRING_CONFLICT"
)

var (
	ErrBadRequest        = errors.New("bad request")
	ErrNotFound          = errors.New("resource not found")
	ErrLocked            = errors.New("resource is locked")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateBooking  = errors.New("client already has a booking at this slot")
	ErrRecurringConflict = errors.New("recurring booking collides with an existing series")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}
