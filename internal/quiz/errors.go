package quiz

import "errors"

type ErrorCode string

const (
	ErrorInvalid    ErrorCode = "invalid"     // validation failure, state unchanged
	ErrorConflict   ErrorCode = "conflict"    // record id collision
	ErrorStorage    ErrorCode = "storage"     // write failure, in-memory state stays authoritative
	ErrorBadGateway ErrorCode = "bad_gateway" // external delivery failure
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error  { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewConflictError(msg string) error { return &ServiceError{Code: ErrorConflict, Message: msg} }
func NewStorageError(msg string) error  { return &ServiceError{Code: ErrorStorage, Message: msg} }

func NewBadGatewayError(msg string) error {
	return &ServiceError{Code: ErrorBadGateway, Message: msg}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
