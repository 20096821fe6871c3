package errors

import stderrors "errors"

// Extension codes surfaced to GraphQL clients. They match the codes Apollo
// Server uses, which the web client keys on.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeBadUserInput    = "BAD_USER_INPUT"
)

// AuthenticationError signals a request without a valid session.
type AuthenticationError struct {
	Message string
}

// NewAuthentication creates an AuthenticationError.
func NewAuthentication(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

func (e *AuthenticationError) Error() string { return e.Message }

// Extensions implements gqlerrors.ExtendedError.
func (e *AuthenticationError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": CodeUnauthenticated}
}

// ForbiddenError signals a valid session with an insufficient role.
type ForbiddenError struct {
	Message string
}

// NewForbidden creates a ForbiddenError.
func NewForbidden(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func (e *ForbiddenError) Error() string { return e.Message }

// Extensions implements gqlerrors.ExtendedError.
func (e *ForbiddenError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": CodeForbidden}
}

// UserInputError signals a semantically invalid request: duplicate email,
// missing target, validation failure.
type UserInputError struct {
	Message string
}

// NewUserInput creates a UserInputError.
func NewUserInput(message string) *UserInputError {
	return &UserInputError{Message: message}
}

func (e *UserInputError) Error() string { return e.Message }

// Extensions implements gqlerrors.ExtendedError.
func (e *UserInputError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": CodeBadUserInput}
}

// IsAuthentication reports whether err is an AuthenticationError.
func IsAuthentication(err error) bool {
	var target *AuthenticationError
	return stderrors.As(err, &target)
}

// IsForbidden reports whether err is a ForbiddenError.
func IsForbidden(err error) bool {
	var target *ForbiddenError
	return stderrors.As(err, &target)
}

// IsUserInput reports whether err is a UserInputError.
func IsUserInput(err error) bool {
	var target *UserInputError
	return stderrors.As(err, &target)
}
