package models

import "github.com/gofiber/fiber/v2"

// ErrorCode classifies a domain failure independently of transport.
type ErrorCode string

const (
	CodeInvalidArgument ErrorCode = "invalid_argument"
	CodeConflict        ErrorCode = "conflict"
	CodeNotFound        ErrorCode = "not_found"
	CodeForbidden       ErrorCode = "forbidden"
	CodeUnauthorized    ErrorCode = "unauthorized"
	CodeUnexpected      ErrorCode = "unexpected"
)

// DomainError carries a code for HTTP mapping and a client-safe message.
type DomainError struct {
	Code    ErrorCode
	Message string
}

func (e *DomainError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// HTTPStatus maps the error code to its response status. Duplicate
// requests map to 400 rather than 409, matching the API contract the
// frontend was built against.
func (e *DomainError) HTTPStatus() int {
	switch e.Code {
	case CodeInvalidArgument, CodeConflict:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func NewError(code ErrorCode, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func InvalidArgument(message string) *DomainError {
	return NewError(CodeInvalidArgument, message)
}

func Conflict(message string) *DomainError {
	return NewError(CodeConflict, message)
}

func Forbidden(message string) *DomainError {
	return NewError(CodeForbidden, message)
}

func NotFound(message string) *DomainError {
	return NewError(CodeNotFound, message)
}

func Unauthorized(message string) *DomainError {
	return NewError(CodeUnauthorized, message)
}

// Shared sentinels for records that repositories fail to locate.
var (
	ErrUserNotFound         = NotFound("User not found")
	ErrRequestNotFound      = NotFound("Connection request not found")
	ErrPostNotFound         = NotFound("Post not found")
	ErrNotificationNotFound = NotFound("Notification not found")
)
