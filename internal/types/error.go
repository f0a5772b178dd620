package types

import "fmt"

// CustomError is the error shape surfaced by services and mapped to an HTTP
// response by the global error handler. Type is a dotted category used for
// logging and test assertions, e.g. "auth.token", "catalog.validation".
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewValidationError reports the first violated field of a payload.
func NewValidationError(message string) *CustomError {
	return &CustomError{Code: 400, Message: message, Type: "catalog.validation"}
}

// NewAuthenticationError is deliberately vague so callers cannot probe
// which of name or password was wrong.
func NewAuthenticationError() *CustomError {
	return &CustomError{Code: 400, Message: "Wrong name or password!", Type: "auth.credentials"}
}

// NewDuplicateNameError maps a unique-constraint violation on the user name.
func NewDuplicateNameError() *CustomError {
	return &CustomError{Code: 400, Message: "Sorry, a user with the same name already exists!", Type: "auth.duplicate"}
}

// NewInvalidTokenError covers missing, expired and malformed tokens.
func NewInvalidTokenError() *CustomError {
	return &CustomError{Code: 401, Message: "Invalid token was sent", Type: "auth.token"}
}

// NewUnauthorizedError means the token was valid but the caller is neither
// the resource owner nor an admin.
func NewUnauthorizedError() *CustomError {
	return &CustomError{Code: 401, Message: "User unauthorized", Type: "auth.ownership"}
}

// NewNotFoundError reports an absent entity, distinct from Unauthorized.
func NewNotFoundError(message string) *CustomError {
	return &CustomError{Code: 404, Message: message, Type: "catalog.notfound"}
}
