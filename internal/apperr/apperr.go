package apperr

import (
	"errors"
	"net/http"
)

// Stable machine-readable reason codes. UI layers branch on these, so
// they must never change once shipped.
const (
	CodeNotFound                = "NOT_FOUND"
	CodeMealNotFound            = "MEAL_NOT_FOUND"
	CodeMealAlreadyCooked       = "MEAL_ALREADY_COOKED"
	CodeNoRecipeAssigned        = "NO_RECIPE_ASSIGNED"
	CodeInsufficientIngredients = "INSUFFICIENT_INGREDIENTS"
	CodeValidation              = "VALIDATION"
	CodeInternal                = "INTERNAL"
)

// Error carries a stable code alongside the human message. Details is
// optional structured payload (e.g. the full insufficient-ingredient list).
type Error struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func WithDetails(code, message string, details any) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// CodeOf extracts the reason code, defaulting to INTERNAL for plain errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}

// HTTPStatus maps a reason code to the response status used by handlers.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeNotFound, CodeMealNotFound:
		return http.StatusNotFound
	case CodeMealAlreadyCooked, CodeNoRecipeAssigned:
		return http.StatusConflict
	case CodeInsufficientIngredients:
		return http.StatusConflict
	case CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
