package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeDecode       Code = "DECODE_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"
	CodeStorage      Code = "STORAGE_ERROR"
	CodeInternal     Code = "INTERNAL_ERROR"
)

// Metadata describes how a code should be surfaced to the person at the
// terminal. Every failure is reported once and is recoverable by retrying
// the action manually, so nothing here drives automatic retries.
type Metadata struct {
	Retryable     bool
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeValidation:   {Retryable: false, PublicMessage: "some fields are invalid"},
	CodeUnauthorized: {Retryable: false, PublicMessage: "please log in again"},
	CodeForbidden:    {Retryable: false, PublicMessage: "access denied"},
	CodeNotFound:     {Retryable: false, PublicMessage: "not found"},
	CodeConflict:     {Retryable: false, PublicMessage: "conflict detected"},
	CodeDecode:       {Retryable: false, PublicMessage: "unexpected response from the coffee shop service"},
	CodeDependency:   {Retryable: true, PublicMessage: "the coffee shop service is unreachable"},
	CodeStorage:      {Retryable: true, PublicMessage: "local storage failed"},
	CodeInternal:     {Retryable: true, PublicMessage: "something went wrong"},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// FromStatus maps a remote HTTP status onto the client error taxonomy.
func FromStatus(status int) Code {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	default:
		return CodeDependency
	}
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf returns the taxonomy code for any error, defaulting to internal.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}
