package apperrors

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies an application error. The set is closed; every kind maps to
// exactly one HTTP status code.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindForbidden
	KindUnauthorized
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the request conflicts with existing state.
var ErrConflict = errors.New("resource conflict")

// ErrForbidden indicates the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal is the catch-all for unexpected failures.
var ErrInternal = errors.New("internal error")

var kindSentinels = map[Kind]error{
	KindInternal:     ErrInternal,
	KindValidation:   ErrValidation,
	KindNotFound:     ErrNotFound,
	KindConflict:     ErrConflict,
	KindForbidden:    ErrForbidden,
	KindUnauthorized: ErrUnauthorized,
}

var kindStatus = map[Kind]int{
	KindInternal:     http.StatusInternalServerError,
	KindValidation:   http.StatusBadRequest,
	KindNotFound:     http.StatusNotFound,
	KindConflict:     http.StatusConflict,
	KindForbidden:    http.StatusForbidden,
	KindUnauthorized: http.StatusUnauthorized,
}

// AppError carries a Kind, a client-safe message and an optional cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Kind == KindInternal {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) and friends match on the kind.
func (e *AppError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// StatusCode returns the HTTP status for the error kind.
func (e *AppError) StatusCode() int {
	return kindStatus[e.Kind]
}

// NewAppError creates an error whose kind is derived from an HTTP status code.
func NewAppError(code int, message string, err error) *AppError {
	kind := KindInternal
	for k, status := range kindStatus {
		if status == code {
			kind = k
			break
		}
	}
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// KindOf reports the kind of err. Plain sentinels are recognised too.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	for kind, sentinel := range kindSentinels {
		if kind != KindInternal && errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindInternal
}

// StatusCode maps any error to its HTTP status.
func StatusCode(err error) int {
	return kindStatus[KindOf(err)]
}

// PublicMessage returns the message safe to show to a client.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Kind == KindInternal {
			return "Internal server error"
		}
		return appErr.Message
	}
	if KindOf(err) != KindInternal {
		return err.Error()
	}
	return "Internal server error"
}

// FromPg translates Postgres constraint violations into typed errors. Other
// errors are wrapped as internal with the given message.
func FromPg(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return &AppError{Kind: KindConflict, Message: conflictMessage(pgErr.ConstraintName), Err: err}
		case "23503": // foreign_key_violation
			return &AppError{Kind: KindValidation, Message: "referenced record does not exist", Err: err}
		case "23514": // check_violation
			return &AppError{Kind: KindValidation, Message: "value violates constraint " + pgErr.ConstraintName, Err: err}
		}
	}
	return NewAppError(http.StatusInternalServerError, message, err)
}

var constraintMessages = map[string]string{
	"uq_currencies_company_code":         "Currency code already exists",
	"uq_currencies_company_base":         "Another base currency already exists for this company",
	"uq_currencies_company_default":      "Another default expense currency already exists for this company",
	"uq_exchange_rates_open_window":      "An open exchange rate already exists for this currency pair",
	"uq_currency_policies_company":       "Currency policy already exists for this company",
	"uq_master_records_company_code":     "Code already exists",
	"uq_expense_categories_company_code": "Category code already exists",
	"uq_location_groups_company_name":    "Location group name already exists",
	"uq_location_groups_company_code":    "Location group code already exists",
}

func conflictMessage(constraint string) string {
	if msg, ok := constraintMessages[constraint]; ok {
		return msg
	}
	return "resource already exists"
}
