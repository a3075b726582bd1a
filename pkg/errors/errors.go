package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	// Constraint-violation family.
	CodeValueOutOfRange Code = "VALUE_OUT_OF_RANGE"
	CodeDuplicateKey    Code = "DUPLICATE_KEY"

	// Referential-integrity family.
	CodeInvalidReference Code = "INVALID_REFERENCE"
	CodeDeleteBlocked    Code = "DELETE_BLOCKED"

	CodeNotFound Code = "NOT_FOUND"
	CodeInternal Code = "INTERNAL_ERROR"
)

// IsConstraintViolation reports whether the code belongs to the
// value/uniqueness constraint family.
func (c Code) IsConstraintViolation() bool {
	return c == CodeValueOutOfRange || c == CodeDuplicateKey
}

// IsReferentialViolation reports whether the code belongs to the
// referential-integrity family (dangling reference or blocked delete).
func (c Code) IsReferentialViolation() bool {
	return c == CodeInvalidReference || c == CodeDeleteBlocked
}

type Metadata struct {
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValueOutOfRange: {
		Retryable:      false,
		PublicMessage:  "value out of range",
		DetailsAllowed: true,
	},
	CodeDuplicateKey: {
		Retryable:      false,
		PublicMessage:  "duplicate key",
		DetailsAllowed: true,
	},
	CodeInvalidReference: {
		Retryable:      false,
		PublicMessage:  "referenced row does not exist",
		DetailsAllowed: true,
	},
	CodeDeleteBlocked: {
		Retryable:      false,
		PublicMessage:  "delete blocked by dependent rows",
		DetailsAllowed: true,
	},
	CodeNotFound: {
		Retryable:      false,
		PublicMessage:  "resource not found",
		DetailsAllowed: false,
	},
	CodeInternal: {
		Retryable:      true,
		PublicMessage:  "internal error",
		DetailsAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// FieldViolation identifies the entity and field an enforcement failure
// refers to, plus the rule that failed (e.g. "rating between 1 and 5").
type FieldViolation struct {
	Entity string `json:"entity"`
	Field  string `json:"field,omitempty"`
	Rule   string `json:"rule,omitempty"`
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

// NewFieldViolation builds a coded error carrying entity/field detail.
func NewFieldViolation(code Code, violation FieldViolation) *Error {
	msg := violation.Entity
	if violation.Field != "" {
		msg += "." + violation.Field
	}
	if violation.Rule != "" {
		msg += ": " + violation.Rule
	}
	return New(code, msg).WithDetails(violation)
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

// CodeOf extracts the code from err, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}
