package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	goerrors "github.com/go-errors/errors"
)

type Kind string

const (
	KindValidation      Kind = "VALIDATION"
	KindAuth            Kind = "AUTH"
	KindNotFound        Kind = "NOT_FOUND"
	KindExternalService Kind = "EXTERNAL_SERVICE"
	KindStorage         Kind = "STORAGE"
)

type Code string

const (
	CodeEmptyInput       Code = "EMPTY_INPUT"
	CodeTooShort         Code = "TOO_SHORT"
	CodeMissingField     Code = "MISSING_FIELD"
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeParsingFailed    Code = "PARSING_FAILED"
	CodeEmptyQuery       Code = "EMPTY_QUERY"
	CodeSummaryFailed    Code = "SUMMARY_FAILED"
	CodeTimeout          Code = "EXTERNAL_SERVICE_TIMEOUT"
	CodeNotConfigured    Code = "NOT_CONFIGURED"
	CodeUnauthenticated  Code = "UNAUTHENTICATED"
	CodeJobNotFound      Code = "JOB_NOT_FOUND"
	CodeStorage          Code = "STORAGE_ERROR"
	CodeUpstream         Code = "UPSTREAM_ERROR"
)

// AppError carries a classification that handlers translate into an HTTP
// status and a user-facing message. Err holds operator-only detail.
type AppError struct {
	Kind    Kind
	Code    Code
	Message string
	Err     error
	Stack   []byte
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s/%s: %s: %v", e.Kind, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s/%s: %s", e.Kind, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StackTrace() []byte {
	return e.Stack
}

func New(kind Kind, code Code, message string, err error) *AppError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Validation(code Code, message string) *AppError {
	return New(KindValidation, code, message, nil)
}

func Unauthenticated(message string) *AppError {
	return New(KindAuth, CodeUnauthenticated, message, nil)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, CodeJobNotFound, message, nil)
}

func External(code Code, message string, err error) *AppError {
	return New(KindExternalService, code, message, err)
}

func Storage(message string, err error) *AppError {
	return New(KindStorage, CodeStorage, message, err)
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

func IsCode(err error, code Code) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

func HTTPStatus(err error) int {
	appErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is safe to show end users. Upstream and storage causes are
// never included.
func PublicMessage(err error) string {
	appErr, ok := As(err)
	if !ok {
		return "An unexpected error occurred"
	}
	return appErr.Message
}
