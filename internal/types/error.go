package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types rendered in the response envelope
const (
	TypeValidation = "data.validation.input"
	TypeUser       = "data.authorization.user"
	TypeAdmin      = "data.authorization.admin"
	TypePermission = "data.authorization.permission"
	TypeTerms      = "terms.required"
	TypeNotFound   = "data.notfound"
	TypeConflict   = "data.conflict"
	TypeInternal   = "data.internal"
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Validation returns a 400 error with a message fit for display
func Validation(message string) *CustomError {
	return &CustomError{Code: http.StatusBadRequest, Message: message, Type: TypeValidation}
}

// SignInRequired returns a 403 error for operations needing an authenticated reader
func SignInRequired(message string) *CustomError {
	return &CustomError{Code: http.StatusForbidden, Message: message, Type: TypeUser}
}

// Forbidden returns a 403 error for an authenticated reader lacking permission
func Forbidden(message string) *CustomError {
	return &CustomError{Code: http.StatusForbidden, Message: message, Type: TypePermission}
}

// NotFound returns a 404 error
func NotFound(message string) *CustomError {
	return &CustomError{Code: http.StatusNotFound, Message: message, Type: TypeNotFound}
}

// Conflict returns a 409 error
func Conflict(message string) *CustomError {
	return &CustomError{Code: http.StatusConflict, Message: message, Type: TypeConflict}
}

// AsCustomError unwraps err into a CustomError when it carries one
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
