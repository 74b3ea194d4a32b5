// Package errutil defines the error taxonomy shared by the account and task flows
// and maps it onto HTTP responses.
package errutil

import (
	"net/http"

	"github.com/samber/oops"

	"github.com/taskmanager/pkg/constant"
)

// Error codes carried by oops errors.
const (
	CodeValidation   = "VALIDATION"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeCredentials  = "INVALID_CREDENTIALS"
	CodeConflict     = "CONFLICT"
	CodeDelivery     = "DELIVERY"
	CodeInternal     = "INTERNAL"
)

// Validation reports a missing or malformed field.
func Validation(format string, args ...any) error {
	return oops.Code(CodeValidation).Errorf(format, args...)
}

// NotFound reports an absent resource, or one not owned by the caller.
func NotFound(msg string) error {
	return oops.Code(CodeNotFound).Errorf("%s", msg)
}

// Unauthorized reports a credential failure.
func Unauthorized(msg string) error {
	return oops.Code(CodeUnauthorized).Errorf("%s", msg)
}

// Credentials reports a failed login. Unlike Unauthorized it is answered with 400.
func Credentials(msg string) error {
	return oops.Code(CodeCredentials).Errorf("%s", msg)
}

// Conflict reports a uniqueness violation.
func Conflict(msg string) error {
	return oops.Code(CodeConflict).Errorf("%s", msg)
}

// DeliveryWrap reports a failed email dispatch. The transport failure is kept as log context.
func DeliveryWrap(msg string, cause error) error {
	return oops.Code(CodeDelivery).With("cause", cause.Error()).Errorf("%s", msg)
}

// Internal wraps a store or crypto failure. Its message never reaches the client.
func Internal(operation string, err error) error {
	return oops.Code(CodeInternal).With("operation", operation).Wrap(err)
}

// HTTPStatus returns the status code a failure envelope is sent with.
func HTTPStatus(err error) int {
	if oopsErr, ok := oops.AsOops(err); ok {
		switch oopsErr.Code() {
		case CodeUnauthorized:
			return http.StatusUnauthorized
		}
	}
	return http.StatusBadRequest
}

// Message returns the client-facing text for err.
func Message(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return constant.SOMETHING_WENT_WRONG
	}
	switch oopsErr.Code() {
	case CodeValidation, CodeNotFound, CodeUnauthorized, CodeCredentials, CodeConflict, CodeDelivery:
		return oopsErr.Error()
	}
	return constant.SOMETHING_WENT_WRONG
}

// IsKnown reports whether err carries one of the codes defined here.
func IsKnown(err error) bool {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}
	switch oopsErr.Code() {
	case CodeValidation, CodeNotFound, CodeUnauthorized, CodeCredentials, CodeConflict, CodeDelivery, CodeInternal:
		return true
	}
	return false
}

// IsCode reports whether err is an oops error carrying code.
func IsCode(err error, code string) bool {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return false
	}
	return oopsErr.Code() == code
}
