package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound marks lookups for ids that do not exist.
var ErrNotFound = errors.New("registro não encontrado")

// ValidationError carries every failed field rule at once, so the caller can
// render all of them instead of only the first.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add registers a failed rule for a field. The first message per field wins.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = message
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// ErrOrNil returns the error value only when at least one field failed,
// avoiding the typed-nil-in-interface trap.
func (e *ValidationError) ErrOrNil() error {
	if e == nil || e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validação falhou: " + strings.Join(parts, "; ")
}

// ConflictError reports a uniqueness violation surfaced by the storage layer
// (duplicate numero_ordem, placa or cpf).
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return "registro duplicado"
	}
	return fmt.Sprintf("%s já cadastrado", e.Field)
}

// Conflict builds a ConflictError for the given field.
func Conflict(field string) error {
	return &ConflictError{Field: field}
}

// AsValidation unwraps err into a *ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// AsConflict unwraps err into a *ConflictError when possible.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}
